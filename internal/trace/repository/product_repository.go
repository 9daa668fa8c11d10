package repository

import (
	"context"
	"errors"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"gorm.io/gorm"
)

// ProductRepository 品类仓库
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create 创建品类
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID 根据ID查找品类
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll 查询品类目录
func (r *ProductRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

// Delete 删除品类。仍被批次引用时拒绝删除。
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	var refs int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("product_id = ?", id).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
