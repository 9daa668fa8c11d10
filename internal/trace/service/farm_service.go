package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
)

// FarmService 农场服务
type FarmService struct {
	farms *repository.FarmRepository
	now   func() time.Time
}

func NewFarmService(farms *repository.FarmRepository) *FarmService {
	return &FarmService{farms: farms, now: time.Now}
}

// CreateFarmRequest 创建农场请求
type CreateFarmRequest struct {
	Name      string   `json:"name" binding:"required"`
	Location  string   `json:"location" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Create 创建农场，归属当前农户
func (s *FarmService) Create(ctx context.Context, farmerID string, req *CreateFarmRequest) (*entity.Farm, error) {
	if err := required("name", req.Name); err != nil {
		return nil, err
	}
	if err := required("location", req.Location); err != nil {
		return nil, err
	}

	farm := &entity.Farm{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		FarmerID:  farmerID,
		CreatedAt: s.now(),
	}
	if err := s.farms.Create(ctx, farm); err != nil {
		return nil, err
	}
	return farm, nil
}

// Get 农场详情
func (s *FarmService) Get(ctx context.Context, id string) (*entity.Farm, error) {
	return s.farms.FindByID(ctx, id)
}

// ListByFarmer 农户名下农场列表
func (s *FarmService) ListByFarmer(ctx context.Context, farmerID string) ([]entity.Farm, error) {
	return s.farms.FindByFarmer(ctx, farmerID)
}

// Delete 删除农场，仍被批次引用时返回冲突
func (s *FarmService) Delete(ctx context.Context, id string) error {
	return s.farms.Delete(ctx, id)
}
