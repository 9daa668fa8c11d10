package entity

import (
	"time"
)

// Farm 农场实体
type Farm struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Location  string    `json:"location" gorm:"size:256;not null"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	FarmerID  string    `json:"farmer_id" gorm:"size:36;index"`
	CreatedAt time.Time `json:"created_at"`

	// 关联
	Farmer *User `json:"farmer,omitempty" gorm:"foreignKey:FarmerID"`
}

func (Farm) TableName() string {
	return "farms"
}

// Product 药材品类实体（静态目录）
type Product struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	Name           string    `json:"name" gorm:"size:128;not null"`
	ScientificName string    `json:"scientific_name" gorm:"size:128"`
	Description    string    `json:"description" gorm:"type:text"`
	ImageURL       string    `json:"image_url" gorm:"size:512"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
