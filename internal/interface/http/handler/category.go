package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/library-console/internal/application/category"
	"github.com/xiebiao/library-console/internal/interface/http/dto"
	"github.com/xiebiao/library-console/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	listUseCase *appcategory.ListCategoriesUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(listUseCase *appcategory.ListCategoriesUseCase) *CategoryHandler {
	return &CategoryHandler{listUseCase: listUseCase}
}

// List 全部分类
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewCategoryResponses(categories))
}
