package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
)

// ProductService 品类目录服务
type ProductService struct {
	products *repository.ProductRepository
	now      func() time.Time
}

func NewProductService(products *repository.ProductRepository) *ProductService {
	return &ProductService{products: products, now: time.Now}
}

// CreateProductRequest 创建品类请求
type CreateProductRequest struct {
	Name           string `json:"name" binding:"required"`
	ScientificName string `json:"scientific_name"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
}

// Create 创建品类
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*entity.Product, error) {
	if err := required("name", req.Name); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           req.Name,
		ScientificName: req.ScientificName,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		CreatedAt:      s.now(),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get 品类详情
func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	return s.products.FindByID(ctx, id)
}

// List 品类目录
func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	return s.products.FindAll(ctx)
}

// Delete 删除品类，仍被批次引用时返回冲突
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}
