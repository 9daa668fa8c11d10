package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
)

// FarmHandler 农场处理器
type FarmHandler struct {
	svc *service.FarmService
}

func NewFarmHandler(svc *service.FarmService) *FarmHandler {
	return &FarmHandler{svc: svc}
}

// ListFarms 当前用户名下农场列表
// GET /api/v1/farms
func (h *FarmHandler) ListFarms(c *gin.Context) {
	farms, err := h.svc.ListByFarmer(c.Request.Context(), GetUserID(c))
	if err != nil {
		Fail(c, err, "failed to fetch farms")
		return
	}
	Success(c, gin.H{"items": farms})
}

// GetFarm 农场详情
// GET /api/v1/farms/:id
func (h *FarmHandler) GetFarm(c *gin.Context) {
	farm, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "failed to fetch farm")
		return
	}
	Success(c, farm)
}

// CreateFarm 创建农场
// POST /api/v1/farms
func (h *FarmHandler) CreateFarm(c *gin.Context) {
	var req service.CreateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	farm, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		Fail(c, err, "failed to create farm")
		return
	}
	Created(c, farm)
}

// DeleteFarm 删除农场
// DELETE /api/v1/farms/:id
func (h *FarmHandler) DeleteFarm(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "failed to delete farm")
		return
	}
	Success(c, nil)
}
