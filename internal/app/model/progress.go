package model

import (
	"time"

	"gorm.io/gorm"
)

type ProgressStatus string

const (
	ProgressInProgress    ProgressStatus = "in_progress"
	ProgressCompleted     ProgressStatus = "completed"
	ProgressPendingReview ProgressStatus = "pending_review"
)

// UserProgress tracks one staff member's execution of one SOP document.
// Category statistics (completed/pending counts) aggregate over these rows.
type UserProgress struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	RestaurantID    uint           `gorm:"index;not null" json:"restaurant_id"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	DocumentID      uint           `gorm:"index;not null" json:"document_id"`
	CategoryID      uint           `gorm:"index;not null" json:"category_id"`
	Status          ProgressStatus `gorm:"type:varchar(20);index;default:'in_progress'" json:"status"`
	ProgressPercent int            `gorm:"default:0" json:"progress_percent"`
	CompletedAt     *time.Time     `json:"completed_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Document SOPDocument `gorm:"foreignKey:DocumentID" json:"-"`
	User     User        `gorm:"foreignKey:UserID" json:"-"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
