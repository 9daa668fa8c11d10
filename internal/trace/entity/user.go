package entity

import (
	"time"
)

// 用户角色
const (
	RoleFarmer    = "farmer"
	RoleCollector = "collector"
	RoleAdmin     = "admin"
	RoleConsumer  = "consumer"
)

// ValidUserRoles 合法用户角色集合
var ValidUserRoles = map[string]bool{
	RoleFarmer:    true,
	RoleCollector: true,
	RoleAdmin:     true,
	RoleConsumer:  true,
}

// User 用户实体
type User struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	Email           string    `json:"email" gorm:"size:128;not null;uniqueIndex"`
	FirstName       string    `json:"first_name" gorm:"size:64"`
	LastName        string    `json:"last_name" gorm:"size:64"`
	ProfileImageURL string    `json:"profile_image_url" gorm:"size:512"`
	Role            string    `json:"role" gorm:"size:16;not null;default:consumer"`
	PasswordHash    string    `json:"-" gorm:"size:128"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
