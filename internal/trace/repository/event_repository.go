package repository

import (
	"context"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"gorm.io/gorm"
)

// EventRepository 采集/加工事件仓库
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateCollection 创建采集事件
func (r *EventRepository) CreateCollection(ctx context.Context, event *entity.CollectionEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindCollectionsByBatch 查询批次采集事件，按采集时间倒序
func (r *EventRepository) FindCollectionsByBatch(ctx context.Context, batchID string) ([]entity.CollectionEvent, error) {
	var events []entity.CollectionEvent
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("collection_date DESC").
		Find(&events).Error
	return events, err
}

// CreateProcessing 创建加工事件
func (r *EventRepository) CreateProcessing(ctx context.Context, event *entity.ProcessingEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindProcessingByBatch 查询批次加工事件，按加工时间倒序
func (r *EventRepository) FindProcessingByBatch(ctx context.Context, batchID string) ([]entity.ProcessingEvent, error) {
	var events []entity.ProcessingEvent
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("process_date DESC").
		Find(&events).Error
	return events, err
}
