package repository

import (
	"context"
	"errors"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"gorm.io/gorm"
)

// FarmRepository 农场仓库
type FarmRepository struct {
	db *gorm.DB
}

func NewFarmRepository(db *gorm.DB) *FarmRepository {
	return &FarmRepository{db: db}
}

// Create 创建农场
func (r *FarmRepository) Create(ctx context.Context, farm *entity.Farm) error {
	return r.db.WithContext(ctx).Create(farm).Error
}

// FindByID 根据ID查找农场
func (r *FarmRepository) FindByID(ctx context.Context, id string) (*entity.Farm, error) {
	var farm entity.Farm
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&farm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &farm, nil
}

// FindByFarmer 查询某个农户名下的农场
func (r *FarmRepository) FindByFarmer(ctx context.Context, farmerID string) ([]entity.Farm, error) {
	var farms []entity.Farm
	err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&farms).Error
	return farms, err
}

// Delete 删除农场。仍被批次引用时拒绝删除。
func (r *FarmRepository) Delete(ctx context.Context, id string) error {
	var refs int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("farm_id = ?", id).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Farm{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
