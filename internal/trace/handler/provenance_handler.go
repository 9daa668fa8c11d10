package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
)

// ProvenanceHandler 溯源处理器
type ProvenanceHandler struct {
	svc *service.ProvenanceService
}

func NewProvenanceHandler(svc *service.ProvenanceService) *ProvenanceHandler {
	return &ProvenanceHandler{svc: svc}
}

func scanMetaFrom(c *gin.Context) service.ScanMeta {
	return service.ScanMeta{
		ScannedBy:    GetUserID(c),
		ScanLocation: c.Query("location"),
		UserAgent:    c.Request.UserAgent(),
		IPAddress:    c.ClientIP(),
	}
}

// GetProvenance 按溯源码查询溯源视图（面向消费者的公开接口）
// GET /api/v1/qr/:code/provenance
func (h *ProvenanceHandler) GetProvenance(c *gin.Context) {
	view, err := h.svc.GetProvenance(c.Request.Context(), c.Param("code"), scanMetaFrom(c))
	if err != nil {
		Fail(c, err, "failed to fetch provenance")
		return
	}
	Success(c, view)
}

// GetTimeline 按溯源码查询时间线叙事（公开接口）。
// 时间线与溯源视图各自记一次扫码：消费者页面两个接口都请求时会落两条日志。
// GET /api/v1/qr/:code/timeline
func (h *ProvenanceHandler) GetTimeline(c *gin.Context) {
	view, err := h.svc.GetProvenance(c.Request.Context(), c.Param("code"), scanMetaFrom(c))
	if err != nil {
		Fail(c, err, "failed to fetch provenance")
		return
	}
	Success(c, gin.H{"items": service.ProjectTimeline(view)})
}

// ListScanLogs 批次扫码历史及累计次数
// GET /api/v1/batches/:id/qr-scans
func (h *ProvenanceHandler) ListScanLogs(c *gin.Context) {
	batchID := c.Param("id")
	logs, err := h.svc.ListScanLogs(c.Request.Context(), batchID)
	if err != nil {
		Fail(c, err, "failed to fetch scan logs")
		return
	}
	total, err := h.svc.CountScans(c.Request.Context(), batchID)
	if err != nil {
		Fail(c, err, "failed to count scans")
		return
	}
	Success(c, gin.H{"items": logs, "total": total})
}
