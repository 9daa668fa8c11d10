package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
)

// SensorHandler 传感器处理器
type SensorHandler struct {
	svc *service.SensorService
}

func NewSensorHandler(svc *service.SensorService) *SensorHandler {
	return &SensorHandler{svc: svc}
}

// IngestSensorData 写入读数
// POST /api/v1/sensor-data
func (h *SensorHandler) IngestSensorData(c *gin.Context) {
	var req service.IngestSensorDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	data, err := h.svc.Ingest(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "failed to ingest sensor data")
		return
	}
	Created(c, data)
}

// LatestSensorData 最新读数
// GET /api/v1/sensor-data/latest?facility_id=xxx
func (h *SensorHandler) LatestSensorData(c *gin.Context) {
	data, err := h.svc.Latest(c.Request.Context(), c.Query("facility_id"))
	if err != nil {
		Fail(c, err, "failed to fetch sensor data")
		return
	}
	Success(c, gin.H{"items": data})
}

// ListBatchSensorData 批次读数历史
// GET /api/v1/batches/:id/sensor-data
func (h *SensorHandler) ListBatchSensorData(c *gin.Context) {
	data, err := h.svc.ListByBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "failed to fetch sensor data")
		return
	}
	Success(c, gin.H{"items": data})
}

// SimulateSensorData 生成一条模拟读数（演示环境）
// POST /api/v1/simulate/sensor-data
func (h *SensorHandler) SimulateSensorData(c *gin.Context) {
	data, err := h.svc.Simulate(c.Request.Context())
	if err != nil {
		Fail(c, err, "failed to simulate sensor data")
		return
	}
	Created(c, data)
}
