package model

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant is the tenant boundary: every SOP row is scoped to one location.
type Restaurant struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Timezone  string         `gorm:"type:varchar(50);default:'America/Toronto'" json:"timezone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
