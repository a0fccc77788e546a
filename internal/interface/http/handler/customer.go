package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcustomer "github.com/xiebiao/library-console/internal/application/customer"
	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
	"github.com/xiebiao/library-console/pkg/listview"
	"github.com/xiebiao/library-console/pkg/response"
)

// CustomerHandler 读者HTTP处理器
type CustomerHandler struct {
	listUseCase      *appcustomer.ListCustomersUseCase
	searchUseCase    *appcustomer.SearchCustomersUseCase
	saveUseCase      *appcustomer.SaveCustomerUseCase
	deleteUseCase    *appcustomer.DeleteCustomerUseCase
	sendEmailUseCase *appcustomer.SendEmailUseCase
}

// NewCustomerHandler 创建读者处理器
func NewCustomerHandler(
	listUseCase *appcustomer.ListCustomersUseCase,
	searchUseCase *appcustomer.SearchCustomersUseCase,
	saveUseCase *appcustomer.SaveCustomerUseCase,
	deleteUseCase *appcustomer.DeleteCustomerUseCase,
	sendEmailUseCase *appcustomer.SendEmailUseCase,
) *CustomerHandler {
	return &CustomerHandler{
		listUseCase:      listUseCase,
		searchUseCase:    searchUseCase,
		saveUseCase:      saveUseCase,
		deleteUseCase:    deleteUseCase,
		sendEmailUseCase: sendEmailUseCase,
	}
}

// List 分页查询读者列表
// @Summary      读者列表
// @Description  带email或lastName时，搜索结果整体替换分页数据（Paginated=false）
// @Tags         读者
// @Produce      json
// @Param        page query int false "页码(从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Param        email query string false "读者邮箱（精确匹配）"
// @Param        lastName query string false "姓氏关键词"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := h.listUseCase.Execute(c.Request.Context(), customer.ListParams{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 搜索关键词和分页数据的合成规则收敛在listview里：
	// 搜索命中时整页替换并禁用分页，没命中或没搜索时走正常分页
	var searchResults []customer.Customer
	switch {
	case c.Query("email") != "":
		searchResults, err = h.searchUseCase.ByEmail(c.Request.Context(), c.Query("email"))
	case c.Query("lastName") != "":
		searchResults, err = h.searchUseCase.ByLastName(c.Request.Context(), c.Query("lastName"))
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	view := listview.Compose(result.Items, result.Total, page, pageSize, searchResults)
	response.SuccessWithPage(c, &response.PageData{
		List:      dto.NewCustomerResponses(view.Items),
		Total:     view.Total,
		Page:      view.Page,
		PageSize:  view.PageSize,
		Paginated: view.Paginated,
	})
}

// Search 搜索读者
// @Summary      搜索读者
// @Description  按邮箱精确查询或姓氏关键词搜索，返回完整结果集（不分页）
// @Tags         读者
// @Produce      json
// @Param        email query string false "读者邮箱（精确匹配）"
// @Param        lastName query string false "姓氏关键词"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/customers/search [get]
func (h *CustomerHandler) Search(c *gin.Context) {
	email := c.Query("email")
	lastName := c.Query("lastName")

	var (
		items []customer.Customer
		err   error
	)
	switch {
	case email != "":
		items, err = h.searchUseCase.ByEmail(c.Request.Context(), email)
	case lastName != "":
		items, err = h.searchUseCase.ByLastName(c.Request.Context(), lastName)
	default:
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "email和lastName至少传一个")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	// 搜索结果整体替换默认分页数据，Paginated=false让前端禁用分页控件
	response.SuccessWithPage(c, response.NewSearchData(dto.NewCustomerResponses(items)))
}

// Add 新建读者档案
// @Summary      新建读者
// @Tags         读者
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveCustomerRequest true "读者信息"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) Add(c *gin.Context) {
	var req dto.SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	created, err := h.saveUseCase.Add(c.Request.Context(), req.ToDomain())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewCustomerResponse(created))
}

// Update 修改读者档案
// @Summary      修改读者
// @Tags         读者
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveCustomerRequest true "读者信息（含id）"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/customers [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	var req dto.SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	updated, err := h.saveUseCase.Update(c.Request.Context(), req.ToDomain())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewCustomerResponse(updated))
}

// Delete 删除读者档案
// @Summary      删除读者
// @Description  有在借记录的读者不能删除
// @Tags         读者
// @Produce      json
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "存在在借记录"
// @Router       /api/v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "无效的读者ID")
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// SendEmail 给读者发邮件
// @Summary      发送邮件
// @Description  借阅到期提醒等，由后端邮件服务投递
// @Tags         读者
// @Accept       json
// @Produce      json
// @Param        request body dto.SendEmailRequest true "邮件内容"
// @Success      200 {object} response.Response
// @Router       /api/v1/customers/email [post]
func (h *CustomerHandler) SendEmail(c *gin.Context) {
	var req dto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	err := h.sendEmailUseCase.Execute(c.Request.Context(), req.CustomerID, customer.EmailMessage{
		Subject: req.Subject,
		Content: req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
