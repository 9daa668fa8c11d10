package entity

import (
	"time"
)

// 批次状态
const (
	BatchStatusHarvested  = "harvested"
	BatchStatusCollected  = "collected"
	BatchStatusProcessing = "processing"
	BatchStatusDrying     = "drying"
	BatchStatusGrinding   = "grinding"
	BatchStatusPackaging  = "packaging"
	BatchStatusReady      = "ready"
	BatchStatusShipped    = "shipped"
)

// ValidBatchStatuses 合法批次状态集合。状态之间允许任意迁移（无状态机约束），
// 这是对外承诺的契约，不是遗漏。
var ValidBatchStatuses = map[string]bool{
	BatchStatusHarvested:  true,
	BatchStatusCollected:  true,
	BatchStatusProcessing: true,
	BatchStatusDrying:     true,
	BatchStatusGrinding:   true,
	BatchStatusPackaging:  true,
	BatchStatusReady:      true,
	BatchStatusShipped:    true,
}

// InactiveBatchStatuses 看板"活跃批次"排除的状态。
// 沿用线上口径：delivered 不在枚举内但仍参与排除。
var InactiveBatchStatuses = []string{BatchStatusShipped, "delivered"}

// Batch 批次实体
type Batch struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	BatchNumber  string     `json:"batch_number" gorm:"size:64;not null;uniqueIndex"`
	ProductID    string     `json:"product_id" gorm:"size:36;index"`
	FarmID       string     `json:"farm_id" gorm:"size:36;index"`
	CollectorID  string     `json:"collector_id" gorm:"size:36"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit" gorm:"size:16;default:kg"`
	HarvestDate  *time.Time `json:"harvest_date"`
	Status       string     `json:"status" gorm:"size:20;not null;default:harvested"`
	QualityScore *float64   `json:"quality_score"`
	QRCode       *string    `json:"qr_code" gorm:"size:32;uniqueIndex"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// 关联
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Farm    *Farm    `json:"farm,omitempty" gorm:"foreignKey:FarmID"`
}

func (Batch) TableName() string {
	return "batches"
}
