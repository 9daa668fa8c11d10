package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
)

// DashboardHandler 看板处理器
type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetStats 看板统计
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		Fail(c, err, "failed to fetch dashboard stats")
		return
	}
	Success(c, stats)
}
