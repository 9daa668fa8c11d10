package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record is referenced or already exists")
)

// Repositories 溯源仓库集合
type Repositories struct {
	User    *UserRepository
	Farm    *FarmRepository
	Product *ProductRepository
	Batch   *BatchRepository
	Event   *EventRepository
	Sensor  *SensorRepository
	ScanLog *ScanLogRepository
}

// NewRepositories 创建溯源仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Farm:    NewFarmRepository(db),
		Product: NewProductRepository(db),
		Batch:   NewBatchRepository(db),
		Event:   NewEventRepository(db),
		Sensor:  NewSensorRepository(db),
		ScanLog: NewScanLogRepository(db),
	}
}
