package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "draft"
	StatusReview   DocumentStatus = "review"
	StatusApproved DocumentStatus = "approved"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// SOPDocument is one bilingual step-by-step procedure. Content is stored as
// structured text rendered by the tablet app.
type SOPDocument struct {
	ID                uint            `gorm:"primarykey" json:"id"`
	RestaurantID      uint            `gorm:"index;not null" json:"restaurant_id"`
	CategoryID        uint            `gorm:"index;not null" json:"category_id"`
	Title             string          `gorm:"type:varchar(200);not null" json:"title"`
	TitleFr           string          `gorm:"type:varchar(200);not null" json:"title_fr"`
	Content           string          `gorm:"type:text;not null" json:"content"`
	ContentFr         string          `gorm:"type:text;not null" json:"content_fr"`
	Version           string          `gorm:"type:varchar(20);default:'1.0.0'" json:"version"`
	Status            DocumentStatus  `gorm:"type:varchar(20);index;default:'draft'" json:"status"`
	Tags              pq.StringArray  `gorm:"type:text[]" json:"tags"`
	DifficultyLevel   DifficultyLevel `gorm:"type:varchar(20)" json:"difficulty_level"`
	EstimatedReadTime int             `gorm:"default:0" json:"estimated_read_time"`
	ReviewDueDate     *time.Time      `json:"review_due_date"`
	CreatedBy         uint            `gorm:"index" json:"created_by"`
	UpdatedBy         uint            `json:"updated_by"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	// Denormalized joins for display names on listings
	Category SOPCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Author   User        `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
}

func (SOPDocument) TableName() string {
	return "sop_documents"
}
