package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/library-console/internal/application/category"
	apploan "github.com/xiebiao/library-console/internal/application/loan"
	"github.com/xiebiao/library-console/internal/domain/category"
	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/internal/interface/http/dto"
	"github.com/xiebiao/library-console/pkg/dateutil"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
	"github.com/xiebiao/library-console/pkg/listview"
	"github.com/xiebiao/library-console/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	listUseCase       *apploan.ListLoansUseCase
	createUseCase     *apploan.CreateLoanUseCase
	closeUseCase      *apploan.CloseLoanUseCase
	eligibleUseCase   *apploan.EligibleBooksUseCase
	categoriesUseCase *appcategory.ListCategoriesUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	listUseCase *apploan.ListLoansUseCase,
	createUseCase *apploan.CreateLoanUseCase,
	closeUseCase *apploan.CloseLoanUseCase,
	eligibleUseCase *apploan.EligibleBooksUseCase,
	categoriesUseCase *appcategory.ListCategoriesUseCase,
) *LoanHandler {
	return &LoanHandler{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		closeUseCase:      closeUseCase,
		eligibleUseCase:   eligibleUseCase,
		categoriesUseCase: categoriesUseCase,
	}
}

// List 借阅列表
// @Summary      借阅列表
// @Description  不传maxEndDate时返回全部在借记录；带email时按读者邮箱搜索，结果整体替换分页数据（Paginated=false）
// @Tags         借阅
// @Produce      json
// @Param        page query int false "页码(从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Param        maxEndDate query string false "应还日期上限(yyyy-MM-dd)"
// @Param        email query string false "读者邮箱"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/loans [get]
func (h *LoanHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var maxEndDate dateutil.Date
	if dateStr := c.Query("maxEndDate"); dateStr != "" {
		var parseErr error
		maxEndDate, parseErr = dateutil.Parse(dateStr)
		if parseErr != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeValidation, "无效的日期格式，应为yyyy-MM-dd")
			return
		}
	}

	loans, err := h.listUseCase.ByMaxEndDate(c.Request.Context(), maxEndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 搜索结果和默认列表的合成规则收敛在listview里，三个实体共用
	var searchResults []loan.Loan
	if email := c.Query("email"); email != "" {
		searchResults, err = h.listUseCase.ByCustomer(c.Request.Context(), email)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	labels := h.categoryLabels(c)
	view := listview.Compose(loans, int64(len(loans)), page, pageSize, searchResults)
	response.SuccessWithPage(c, &response.PageData{
		List:      dto.NewLoanResponses(view.Items, labels),
		Total:     view.Total,
		Page:      view.Page,
		PageSize:  view.PageSize,
		Paginated: view.Paginated,
	})
}

// Create 创建借阅
// @Summary      创建借阅
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLoanRequest true "借阅信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "不满足借阅条件"
// @Failure      409 {object} response.Response "借阅记录已存在"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) Create(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	beginDate, err := dateutil.Parse(req.BeginDate)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "无效的借出日期")
		return
	}
	endDate, err := dateutil.Parse(req.EndDate)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "无效的应还日期")
		return
	}

	err = h.createUseCase.Execute(c.Request.Context(), apploan.CreateLoanRequest{
		BookID:     req.BookID,
		CustomerID: req.CustomerID,
		BeginDate:  beginDate,
		EndDate:    endDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Close 归还
// @Summary      归还图书
// @Description  只有在借状态的记录可以归还
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.CloseLoanRequest true "借阅标识"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "记录不在在借状态"
// @Router       /api/v1/loans/close [post]
func (h *LoanHandler) Close(c *gin.Context) {
	var req dto.CloseLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	err := h.closeUseCase.Execute(c.Request.Context(), loan.Key{
		BookID:     req.BookID,
		CustomerID: req.CustomerID,
	}, req.CustomerEmail)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// EligibleBooks 可借图书
// @Summary      查询读者可借的图书
// @Description  有剩余副本且该读者没有在借的同一本书
// @Tags         借阅
// @Produce      json
// @Param        customerId query int true "读者ID"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/loans/eligible-books [get]
func (h *LoanHandler) EligibleBooks(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Query("customerId"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "无效的读者ID")
		return
	}

	books, err := h.eligibleUseCase.Execute(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponses(books, h.categoryLabels(c)))
}

func (h *LoanHandler) categoryLabels(c *gin.Context) []category.Category {
	categories, err := h.categoriesUseCase.Execute(c.Request.Context())
	if err != nil {
		return nil
	}
	return categories
}
