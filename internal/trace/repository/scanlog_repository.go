package repository

import (
	"context"
	"time"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"gorm.io/gorm"
)

// ScanLogRepository 扫码日志仓库
type ScanLogRepository struct {
	db *gorm.DB
}

func NewScanLogRepository(db *gorm.DB) *ScanLogRepository {
	return &ScanLogRepository{db: db}
}

// Create 追加扫码日志
func (r *ScanLogRepository) Create(ctx context.Context, log *entity.QrScanLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByBatch 查询批次扫码历史，按时间倒序
func (r *ScanLogRepository) FindByBatch(ctx context.Context, batchID string) ([]entity.QrScanLog, error) {
	var logs []entity.QrScanLog
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("timestamp DESC").
		Find(&logs).Error
	return logs, err
}

// CountByBatch 统计批次扫码次数
func (r *ScanLogRepository) CountByBatch(ctx context.Context, batchID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.QrScanLog{}).
		Where("batch_id = ?", batchID).
		Count(&count).Error
	return count, err
}

// CountSince 统计某时刻及之后的扫码条数
func (r *ScanLogRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.QrScanLog{}).
		Where("timestamp >= ?", since).
		Count(&count).Error
	return count, err
}
