package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONB JSONB类型
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("failed to scan JSONB: %v", value)
		}
	}
	return json.Unmarshal(bytes, j)
}

// CollectionEvent 采集事件（追加写入，每次实际收货一条）
type CollectionEvent struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	BatchID        string     `json:"batch_id" gorm:"size:36;index;not null"`
	CollectorID    string     `json:"collector_id" gorm:"size:36"`
	CollectionDate *time.Time `json:"collection_date"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	QualityNotes   string     `json:"quality_notes" gorm:"type:text"`
	MoistureLevel  *float64   `json:"moisture_level"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (CollectionEvent) TableName() string {
	return "collection_events"
}

// 加工类型
const (
	ProcessTypeDrying       = "drying"
	ProcessTypeGrinding     = "grinding"
	ProcessTypeExtraction   = "extraction"
	ProcessTypePackaging    = "packaging"
	ProcessTypeQualityCheck = "quality_check"
)

// ValidProcessTypes 合法加工类型集合
var ValidProcessTypes = map[string]bool{
	ProcessTypeDrying:       true,
	ProcessTypeGrinding:     true,
	ProcessTypeExtraction:   true,
	ProcessTypePackaging:    true,
	ProcessTypeQualityCheck: true,
}

// ProcessingEvent 加工事件（追加写入，每个加工步骤一条）
type ProcessingEvent struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	BatchID      string     `json:"batch_id" gorm:"size:36;index;not null"`
	ProcessType  string     `json:"process_type" gorm:"size:32;not null"`
	ProcessDate  *time.Time `json:"process_date"`
	FacilityName string     `json:"facility_name" gorm:"size:128"`
	ProcessedBy  string     `json:"processed_by" gorm:"size:36"`
	Parameters   JSONB      `json:"parameters" gorm:"type:jsonb"`
	QualityScore *float64   `json:"quality_score"`
	Notes        string     `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (ProcessingEvent) TableName() string {
	return "processing_events"
}
