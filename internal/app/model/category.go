package model

import (
	"time"

	"gorm.io/gorm"
)

// SOPCategory groups SOP documents for tablet browsing. Names are bilingual;
// sort_order drives the display order within a restaurant.
type SOPCategory struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	RestaurantID  uint           `gorm:"index;not null" json:"restaurant_id"`
	Name          string         `gorm:"type:varchar(100);index;not null" json:"name"`
	NameFr        string         `gorm:"type:varchar(100);index;not null" json:"name_fr"`
	Description   *string        `gorm:"type:text" json:"description"`
	DescriptionFr *string        `gorm:"type:text" json:"description_fr"`
	Icon          *string        `gorm:"type:varchar(50)" json:"icon"`
	Color         *string        `gorm:"type:varchar(7)" json:"color"`
	SortOrder     int            `gorm:"index;not null" json:"sort_order"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Derived statistics, populated only when includeStats is requested.
	DocumentCount  int64 `gorm:"-" json:"document_count"`
	CompletedCount int64 `gorm:"-" json:"completed_count"`
	PendingReviews int64 `gorm:"-" json:"pending_reviews"`
}

func (SOPCategory) TableName() string {
	return "sop_categories"
}
