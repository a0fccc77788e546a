package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library-console/internal/application/dashboard"
	"github.com/xiebiao/library-console/pkg/response"
)

// DashboardHandler 首页概览HTTP处理器
type DashboardHandler struct {
	overviewUseCase *dashboard.OverviewUseCase
}

// NewDashboardHandler 创建概览处理器
func NewDashboardHandler(overviewUseCase *dashboard.OverviewUseCase) *DashboardHandler {
	return &DashboardHandler{overviewUseCase: overviewUseCase}
}

// Overview 概览统计
// @Summary      首页概览
// @Description  馆藏、读者、分类、在借四项统计，并发拉取后端
// @Tags         概览
// @Produce      json
// @Success      200 {object} response.Response{data=dashboard.Overview}
// @Failure      503 {object} response.Response
// @Router       /api/v1/dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.overviewUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, overview)
}
