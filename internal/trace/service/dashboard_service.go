package service

import (
	"context"
	"time"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
)

// DashboardService 看板服务
type DashboardService struct {
	batches  *repository.BatchRepository
	sensors  *repository.SensorRepository
	scanLogs *repository.ScanLogRepository
	now      func() time.Time
}

func NewDashboardService(batches *repository.BatchRepository, sensors *repository.SensorRepository, scanLogs *repository.ScanLogRepository) *DashboardService {
	return &DashboardService{
		batches:  batches,
		sensors:  sensors,
		scanLogs: scanLogs,
		now:      time.Now,
	}
}

// DashboardStats 看板统计
type DashboardStats struct {
	ActiveBatches    int64   `json:"active_batches"`
	ConnectedSensors int64   `json:"connected_sensors"`
	QRScansToday     int64   `json:"qr_scans_today"`
	QualityScore     float64 `json:"quality_score"`
}

// GetStats 实时计算四项看板指标，不做缓存，每次调用直查存储。
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hourAgo := now.Add(-time.Hour)

	activeBatches, err := s.batches.CountActive(ctx, entity.InactiveBatchStatuses)
	if err != nil {
		return nil, err
	}

	connectedSensors, err := s.sensors.CountSince(ctx, hourAgo)
	if err != nil {
		return nil, err
	}

	scansToday, err := s.scanLogs.CountSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	qualityScore, err := s.batches.AverageQualityScore(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		ActiveBatches:    activeBatches,
		ConnectedSensors: connectedSensors,
		QRScansToday:     scansToday,
		QualityScore:     qualityScore,
	}, nil
}
