package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
)

// 演示用仓储设施池
var simulatedFacilities = []string{"A-12", "B-03", "C-07", "D-15"}

// SensorService 传感器读数服务
type SensorService struct {
	sensors *repository.SensorRepository
	now     func() time.Time
	rand    *rand.Rand
}

func NewSensorService(sensors *repository.SensorRepository) *SensorService {
	return &SensorService{
		sensors: sensors,
		now:     time.Now,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// IngestSensorDataRequest 写入读数请求
type IngestSensorDataRequest struct {
	BatchID    string  `json:"batch_id"`
	FacilityID string  `json:"facility_id"`
	SensorType string  `json:"sensor_type" binding:"required"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit" binding:"required"`
	Status     string  `json:"status"`
}

// Ingest 写入一条读数
func (s *SensorService) Ingest(ctx context.Context, req *IngestSensorDataRequest) (*entity.SensorData, error) {
	if !entity.ValidSensorTypes[req.SensorType] {
		return nil, &ValidationError{Field: "sensor_type", Reason: "unknown sensor type"}
	}
	if err := required("unit", req.Unit); err != nil {
		return nil, err
	}
	if req.Status != "" && !entity.ValidSensorStatuses[req.Status] {
		return nil, &ValidationError{Field: "status", Reason: "unknown status"}
	}

	data := &entity.SensorData{
		ID:         uuid.New().String(),
		BatchID:    req.BatchID,
		FacilityID: req.FacilityID,
		SensorType: req.SensorType,
		Value:      req.Value,
		Unit:       req.Unit,
		Status:     req.Status,
		Timestamp:  s.now(),
	}
	if data.Status == "" {
		data.Status = entity.SensorStatusNormal
	}

	if err := s.sensors.Create(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Simulate 生成一条模拟读数。没有真实IoT接入，仅用于演示环境填充数据。
func (s *SensorService) Simulate(ctx context.Context) (*entity.SensorData, error) {
	facilityID := simulatedFacilities[s.rand.Intn(len(simulatedFacilities))]

	var (
		sensorType string
		value      float64
		unit       string
		status     string
	)
	if s.rand.Intn(2) == 0 {
		sensorType = entity.SensorTypeTemperature
		value = 20 + s.rand.Float64()*10 // 20-30°C
		unit = "°C"
		switch {
		case value > 30:
			status = entity.SensorStatusCritical
		case value > 28:
			status = entity.SensorStatusWarning
		default:
			status = entity.SensorStatusNormal
		}
	} else {
		sensorType = entity.SensorTypeHumidity
		value = 40 + s.rand.Float64()*20 // 40-60%
		unit = "%"
		switch {
		case value > 80:
			status = entity.SensorStatusCritical
		case value > 70:
			status = entity.SensorStatusWarning
		default:
			status = entity.SensorStatusNormal
		}
	}

	data := &entity.SensorData{
		ID:         uuid.New().String(),
		FacilityID: facilityID,
		SensorType: sensorType,
		Value:      value,
		Unit:       unit,
		Status:     status,
		Timestamp:  s.now(),
	}
	if err := s.sensors.Create(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Latest 最新读数，可按设施过滤
func (s *SensorService) Latest(ctx context.Context, facilityID string) ([]entity.SensorData, error) {
	return s.sensors.FindLatest(ctx, facilityID, 20)
}

// ListByBatch 批次读数历史
func (s *SensorService) ListByBatch(ctx context.Context, batchID string) ([]entity.SensorData, error) {
	return s.sensors.FindByBatch(ctx, batchID)
}
