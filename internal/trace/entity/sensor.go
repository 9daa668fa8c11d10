package entity

import (
	"time"
)

// 传感器类型
const (
	SensorTypeTemperature = "temperature"
	SensorTypeHumidity    = "humidity"
	SensorTypeLight       = "light"
	SensorTypeAirQuality  = "air_quality"
)

// ValidSensorTypes 合法传感器类型集合
var ValidSensorTypes = map[string]bool{
	SensorTypeTemperature: true,
	SensorTypeHumidity:    true,
	SensorTypeLight:       true,
	SensorTypeAirQuality:  true,
}

// 读数状态
const (
	SensorStatusNormal   = "normal"
	SensorStatusWarning  = "warning"
	SensorStatusCritical = "critical"
)

// ValidSensorStatuses 合法读数状态集合
var ValidSensorStatuses = map[string]bool{
	SensorStatusNormal:   true,
	SensorStatusWarning:  true,
	SensorStatusCritical: true,
}

// SensorData 仓储环境读数。BatchID 为空时挂在仓储设施上。
type SensorData struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	BatchID    string    `json:"batch_id" gorm:"size:36;index"`
	FacilityID string    `json:"facility_id" gorm:"size:64;index"`
	SensorType string    `json:"sensor_type" gorm:"size:32;not null"`
	Value      float64   `json:"value" gorm:"not null"`
	Unit       string    `json:"unit" gorm:"size:16;not null"`
	Status     string    `json:"status" gorm:"size:16;default:normal"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
}

func (SensorData) TableName() string {
	return "sensor_data"
}
