package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
)

// BatchService 批次生命周期服务
type BatchService struct {
	batches *repository.BatchRepository
	events  *repository.EventRepository
	now     func() time.Time
}

func NewBatchService(batches *repository.BatchRepository, events *repository.EventRepository) *BatchService {
	return &BatchService{
		batches: batches,
		events:  events,
		now:     time.Now,
	}
}

// CreateBatchRequest 创建批次请求
type CreateBatchRequest struct {
	BatchNumber  string     `json:"batch_number" binding:"required"`
	ProductID    string     `json:"product_id" binding:"required"`
	FarmID       string     `json:"farm_id" binding:"required"`
	CollectorID  string     `json:"collector_id"`
	Quantity     float64    `json:"quantity" binding:"required"`
	Unit         string     `json:"unit"`
	HarvestDate  *time.Time `json:"harvest_date"`
	Status       string     `json:"status"`
	QualityScore *float64   `json:"quality_score"`
}

// Create 创建批次并分配溯源码
func (s *BatchService) Create(ctx context.Context, req *CreateBatchRequest) (*entity.Batch, error) {
	if err := required("batch_number", req.BatchNumber); err != nil {
		return nil, err
	}
	if err := required("product_id", req.ProductID); err != nil {
		return nil, err
	}
	if err := required("farm_id", req.FarmID); err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if req.Status != "" && !entity.ValidBatchStatuses[req.Status] {
		return nil, ErrInvalidStatus
	}

	// 批次号全局唯一
	if _, err := s.batches.FindByNumber(ctx, req.BatchNumber); err == nil {
		return nil, ErrBatchNumberTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	batch := &entity.Batch{
		ID:           uuid.New().String(),
		BatchNumber:  req.BatchNumber,
		ProductID:    req.ProductID,
		FarmID:       req.FarmID,
		CollectorID:  req.CollectorID,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		HarvestDate:  req.HarvestDate,
		Status:       req.Status,
		QualityScore: req.QualityScore,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	if batch.Unit == "" {
		batch.Unit = "kg"
	}
	if batch.Status == "" {
		batch.Status = entity.BatchStatusHarvested
	}

	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	if err := s.AssignQRCode(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// QRCodeForBatch 由批次ID推导溯源码：AYU- + ID末8位大写。
// 对同一ID可重复推导，结果恒定。
func QRCodeForBatch(batchID string) string {
	suffix := batchID
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return "AYU-" + strings.ToUpper(suffix)
}

// AssignQRCode 为批次分配溯源码并落库
func (s *BatchService) AssignQRCode(ctx context.Context, batch *entity.Batch) error {
	code := QRCodeForBatch(batch.ID)
	if err := s.batches.UpdateQRCode(ctx, batch.ID, code); err != nil {
		return err
	}
	batch.QRCode = &code
	return nil
}

// Get 获取批次详情
func (s *BatchService) Get(ctx context.Context, id string) (*entity.Batch, error) {
	return s.batches.FindByID(ctx, id)
}

// List 批次列表
func (s *BatchService) List(ctx context.Context) ([]entity.Batch, error) {
	return s.batches.FindAll(ctx)
}

// UpdateStatus 更新批次状态。状态间允许任意迁移，但目标状态必须在枚举集合内。
func (s *BatchService) UpdateStatus(ctx context.Context, id, status string) (*entity.Batch, error) {
	if !entity.ValidBatchStatuses[status] {
		return nil, ErrInvalidStatus
	}
	return s.batches.UpdateStatus(ctx, id, status, s.now())
}

// CreateCollectionEventRequest 创建采集事件请求
type CreateCollectionEventRequest struct {
	BatchID        string     `json:"batch_id" binding:"required"`
	CollectionDate *time.Time `json:"collection_date"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	QualityNotes   string     `json:"quality_notes"`
	MoistureLevel  *float64   `json:"moisture_level"`
}

// AddCollectionEvent 追加采集事件
func (s *BatchService) AddCollectionEvent(ctx context.Context, collectorID string, req *CreateCollectionEventRequest) (*entity.CollectionEvent, error) {
	if err := required("batch_id", req.BatchID); err != nil {
		return nil, err
	}
	if _, err := s.batches.FindByID(ctx, req.BatchID); err != nil {
		return nil, err
	}

	event := &entity.CollectionEvent{
		ID:             uuid.New().String(),
		BatchID:        req.BatchID,
		CollectorID:    collectorID,
		CollectionDate: req.CollectionDate,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		QualityNotes:   req.QualityNotes,
		MoistureLevel:  req.MoistureLevel,
		CreatedAt:      s.now(),
	}
	if event.CollectionDate == nil {
		now := s.now()
		event.CollectionDate = &now
	}

	if err := s.events.CreateCollection(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListCollectionEvents 批次采集事件列表
func (s *BatchService) ListCollectionEvents(ctx context.Context, batchID string) ([]entity.CollectionEvent, error) {
	return s.events.FindCollectionsByBatch(ctx, batchID)
}

// CreateProcessingEventRequest 创建加工事件请求
type CreateProcessingEventRequest struct {
	BatchID      string       `json:"batch_id" binding:"required"`
	ProcessType  string       `json:"process_type" binding:"required"`
	ProcessDate  *time.Time   `json:"process_date"`
	FacilityName string       `json:"facility_name"`
	Parameters   entity.JSONB `json:"parameters"`
	QualityScore *float64     `json:"quality_score"`
	Notes        string       `json:"notes"`
}

// AddProcessingEvent 追加加工事件
func (s *BatchService) AddProcessingEvent(ctx context.Context, processedBy string, req *CreateProcessingEventRequest) (*entity.ProcessingEvent, error) {
	if err := required("batch_id", req.BatchID); err != nil {
		return nil, err
	}
	if !entity.ValidProcessTypes[req.ProcessType] {
		return nil, &ValidationError{Field: "process_type", Reason: "unknown process type"}
	}
	if _, err := s.batches.FindByID(ctx, req.BatchID); err != nil {
		return nil, err
	}

	event := &entity.ProcessingEvent{
		ID:           uuid.New().String(),
		BatchID:      req.BatchID,
		ProcessType:  req.ProcessType,
		ProcessDate:  req.ProcessDate,
		FacilityName: req.FacilityName,
		ProcessedBy:  processedBy,
		Parameters:   req.Parameters,
		QualityScore: req.QualityScore,
		Notes:        req.Notes,
		CreatedAt:    s.now(),
	}
	if event.ProcessDate == nil {
		now := s.now()
		event.ProcessDate = &now
	}

	if err := s.events.CreateProcessing(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListProcessingEvents 批次加工事件列表
func (s *BatchService) ListProcessingEvents(ctx context.Context, batchID string) ([]entity.ProcessingEvent, error) {
	return s.events.FindProcessingByBatch(ctx, batchID)
}
