package handler

import (
	"github.com/gin-gonic/gin"

	"connected/backend/internal/service"
	"connected/backend/pkg/response"
)

// DashboardHandler 仪表盘模块 Handler
type DashboardHandler struct {
	svc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler 实例
func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetDashboard 获取管理员仪表盘统计
// GET /api/v1/admin/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	resp, err := h.svc.GetDashboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}
