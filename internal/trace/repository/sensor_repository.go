package repository

import (
	"context"
	"time"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"gorm.io/gorm"
)

// SensorRepository 传感器读数仓库
type SensorRepository struct {
	db *gorm.DB
}

func NewSensorRepository(db *gorm.DB) *SensorRepository {
	return &SensorRepository{db: db}
}

// Create 写入读数
func (r *SensorRepository) Create(ctx context.Context, data *entity.SensorData) error {
	return r.db.WithContext(ctx).Create(data).Error
}

// FindByBatch 查询批次读数，按时间倒序
func (r *SensorRepository) FindByBatch(ctx context.Context, batchID string) ([]entity.SensorData, error) {
	var data []entity.SensorData
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("timestamp DESC").
		Find(&data).Error
	return data, err
}

// FindLatest 查询最新读数，可按设施过滤
func (r *SensorRepository) FindLatest(ctx context.Context, facilityID string, limit int) ([]entity.SensorData, error) {
	query := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit)
	if facilityID != "" {
		query = query.Where("facility_id = ?", facilityID)
	}

	var data []entity.SensorData
	err := query.Find(&data).Error
	return data, err
}

// CountSince 统计某时刻之后的读数条数（看板"在线传感器"口径：
// 统计的是窗口内读数条数，不是去重后的设备数）
func (r *SensorRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.SensorData{}).
		Where("timestamp > ?", since).
		Count(&count).Error
	return count, err
}
