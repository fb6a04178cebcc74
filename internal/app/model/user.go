package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStaff   UserRole = "staff"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

// User is a staff account that signs in from a shared tablet.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	RestaurantID uint           `gorm:"index;not null" json:"restaurant_id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	Role         UserRole       `gorm:"type:varchar(20);default:'staff'" json:"role"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
