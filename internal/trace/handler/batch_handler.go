package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
)

// BatchHandler 批次处理器
type BatchHandler struct {
	svc *service.BatchService
}

func NewBatchHandler(svc *service.BatchService) *BatchHandler {
	return &BatchHandler{svc: svc}
}

// ListBatches 批次列表
// GET /api/v1/batches
func (h *BatchHandler) ListBatches(c *gin.Context) {
	batches, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, err, "failed to fetch batches")
		return
	}
	Success(c, gin.H{"items": batches})
}

// GetBatch 批次详情
// GET /api/v1/batches/:id
func (h *BatchHandler) GetBatch(c *gin.Context) {
	batch, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "failed to fetch batch")
		return
	}
	Success(c, batch)
}

// CreateBatch 创建批次（落库后立即分配溯源码）
// POST /api/v1/batches
func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var req service.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	batch, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "failed to create batch")
		return
	}
	Created(c, batch)
}

// UpdateBatchStatus 更新批次状态
// PATCH /api/v1/batches/:id/status
func (h *BatchHandler) UpdateBatchStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	batch, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		Fail(c, err, "failed to update batch status")
		return
	}
	Success(c, batch)
}

// CreateCollectionEvent 创建采集事件
// POST /api/v1/collection-events
func (h *BatchHandler) CreateCollectionEvent(c *gin.Context) {
	var req service.CreateCollectionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	event, err := h.svc.AddCollectionEvent(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		Fail(c, err, "failed to create collection event")
		return
	}
	Created(c, event)
}

// ListCollectionEvents 批次采集事件列表
// GET /api/v1/batches/:id/collection-events
func (h *BatchHandler) ListCollectionEvents(c *gin.Context) {
	events, err := h.svc.ListCollectionEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "failed to fetch collection events")
		return
	}
	Success(c, gin.H{"items": events})
}

// CreateProcessingEvent 创建加工事件
// POST /api/v1/processing-events
func (h *BatchHandler) CreateProcessingEvent(c *gin.Context) {
	var req service.CreateProcessingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	event, err := h.svc.AddProcessingEvent(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		Fail(c, err, "failed to create processing event")
		return
	}
	Created(c, event)
}

// ListProcessingEvents 批次加工事件列表
// GET /api/v1/batches/:id/processing-events
func (h *BatchHandler) ListProcessingEvents(c *gin.Context) {
	events, err := h.svc.ListProcessingEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "failed to fetch processing events")
		return
	}
	Success(c, gin.H{"items": events})
}
