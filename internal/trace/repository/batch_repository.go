package repository

import (
	"context"
	"errors"
	"time"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"gorm.io/gorm"
)

// BatchRepository 批次仓库
type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Create 创建批次
func (r *BatchRepository) Create(ctx context.Context, batch *entity.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

// FindByID 根据ID查找批次
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*entity.Batch, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByNumber 根据批次号查找批次
func (r *BatchRepository) FindByNumber(ctx context.Context, batchNumber string) (*entity.Batch, error) {
	return r.findOne(ctx, "batch_number = ?", batchNumber)
}

// FindByQRCode 根据溯源码查找批次
func (r *BatchRepository) FindByQRCode(ctx context.Context, qrCode string) (*entity.Batch, error) {
	return r.findOne(ctx, "qr_code = ?", qrCode)
}

func (r *BatchRepository) findOne(ctx context.Context, query string, arg interface{}) (*entity.Batch, error) {
	var batch entity.Batch
	err := r.db.WithContext(ctx).Where(query, arg).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAll 查询批次列表
func (r *BatchRepository) FindAll(ctx context.Context) ([]entity.Batch, error) {
	var batches []entity.Batch
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&batches).Error
	return batches, err
}

// UpdateStatus 更新批次状态，同时刷新 updated_at
func (r *BatchRepository) UpdateStatus(ctx context.Context, id, status string, now time.Time) (*entity.Batch, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdateQRCode 写入批次溯源码。溯源码一经分配不再变更。
func (r *BatchRepository) UpdateQRCode(ctx context.Context, id, qrCode string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("id = ?", id).
		Update("qr_code", qrCode)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActive 统计活跃批次（状态不在排除集合内）
func (r *BatchRepository) CountActive(ctx context.Context, excluded []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("status NOT IN ?", excluded).
		Count(&count).Error
	return count, err
}

// AverageQualityScore 全部批次质量分均值（忽略无分批次，无数据返回0）
func (r *BatchRepository) AverageQualityScore(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("quality_score IS NOT NULL").
		Select("AVG(quality_score)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
