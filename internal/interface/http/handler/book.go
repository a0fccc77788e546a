package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library-console/internal/application/book"
	appcategory "github.com/xiebiao/library-console/internal/application/category"
	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/category"
	"github.com/xiebiao/library-console/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
	"github.com/xiebiao/library-console/pkg/listview"
	"github.com/xiebiao/library-console/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	searchUseCase     *appbook.SearchBooksUseCase
	saveUseCase       *appbook.SaveBookUseCase
	deleteUseCase     *appbook.DeleteBookUseCase
	categoriesUseCase *appcategory.ListCategoriesUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	searchUseCase *appbook.SearchBooksUseCase,
	saveUseCase *appbook.SaveBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	categoriesUseCase *appcategory.ListCategoriesUseCase,
) *BookHandler {
	return &BookHandler{
		searchUseCase:     searchUseCase,
		saveUseCase:       saveUseCase,
		deleteUseCase:     deleteUseCase,
		categoriesUseCase: categoriesUseCase,
	}
}

// List 图书列表
// @Summary      图书列表
// @Description  带title时模糊搜索书名，搜索结果整体替换分页数据（Paginated=false）
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码(从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Param        title query string false "书名关键词"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	// 默认列表就是空关键词的书名搜索（后端没有单独的列表接口）
	books, err := h.searchUseCase.ByTitle(c.Request.Context(), "")
	if err != nil {
		response.Error(c, err)
		return
	}

	// 搜索结果和默认列表的合成规则收敛在listview里，三个实体共用
	var searchResults []book.Book
	if keyword := c.Query("title"); keyword != "" {
		searchResults, err = h.searchUseCase.ByTitle(c.Request.Context(), keyword)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	labels := h.categoryLabels(c)
	view := listview.Compose(books, int64(len(books)), page, pageSize, searchResults)
	response.SuccessWithPage(c, &response.PageData{
		List:      dto.NewBookResponses(view.Items, labels),
		Total:     view.Total,
		Page:      view.Page,
		PageSize:  view.PageSize,
		Paginated: view.Paginated,
	})
}

// SearchByISBN 按ISBN精确查找
// @Summary      按ISBN查找图书
// @Tags         图书
// @Produce      json
// @Param        isbn query string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/by-isbn [get]
func (h *BookHandler) SearchByISBN(c *gin.Context) {
	isbn := c.Query("isbn")
	if isbn == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "isbn参数不能为空")
		return
	}

	b, err := h.searchUseCase.ByISBN(c.Request.Context(), isbn)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(b))
}

// Add 新增图书
// @Summary      新增图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Add(c *gin.Context) {
	var req dto.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	b, err := req.ToDomain()
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.saveUseCase.Add(c.Request.Context(), b)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(created))
}

// Update 修改图书
// @Summary      修改图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveBookRequest true "图书信息（含id）"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books [put]
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	b, err := req.ToDomain()
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.saveUseCase.Update(c.Request.Context(), b)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(updated))
}

// Delete 删除图书
// @Summary      删除图书
// @Description  有在借记录的图书不能删除
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "存在在借记录"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "无效的图书ID")
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// categoryLabels 取分类列表用于翻译展示名称
// 分类拉取失败不阻塞图书列表，只是没有展示名称
func (h *BookHandler) categoryLabels(c *gin.Context) []category.Category {
	categories, err := h.categoriesUseCase.Execute(c.Request.Context())
	if err != nil {
		return nil
	}
	return categories
}
