package repository

import (
	"errors"
	"time"

	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/pkg/logger"
	"gorm.io/gorm"
)

// CategoryProgressSummary is one row of the training dashboard aggregate.
type CategoryProgressSummary struct {
	CategoryID    uint  `json:"category_id"`
	InProgress    int64 `json:"in_progress"`
	Completed     int64 `json:"completed"`
	PendingReview int64 `json:"pending_review"`
}

type ProgressRepository interface {
	Upsert(progress *model.UserProgress) error
	FindByUserAndDocument(userID, documentID uint) (*model.UserProgress, error)
	SummaryByCategory(restaurantID uint) ([]CategoryProgressSummary, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// Upsert writes the user's progress row for a document, updating the
// existing row when one exists. One row per (user, document).
func (r *progressRepository) Upsert(progress *model.UserProgress) error {
	var existing model.UserProgress
	err := r.db.Where("user_id = ? AND document_id = ?", progress.UserID, progress.DocumentID).
		First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to look up existing progress", err, map[string]interface{}{
				"user_id":     progress.UserID,
				"document_id": progress.DocumentID,
			})
			return err
		}
		if progress.Status == model.ProgressCompleted && progress.CompletedAt == nil {
			now := time.Now()
			progress.CompletedAt = &now
		}
		return r.db.Create(progress).Error
	}

	existing.Status = progress.Status
	existing.ProgressPercent = progress.ProgressPercent
	if progress.Status == model.ProgressCompleted && existing.CompletedAt == nil {
		now := time.Now()
		existing.CompletedAt = &now
	}
	if err := r.db.Save(&existing).Error; err != nil {
		logger.Error("Failed to update progress", err, map[string]interface{}{
			"progress_id": existing.ID,
		})
		return err
	}

	*progress = existing
	return nil
}

func (r *progressRepository) FindByUserAndDocument(userID, documentID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.db.Where("user_id = ? AND document_id = ?", userID, documentID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// SummaryByCategory aggregates progress rows per category and status for the
// restaurant's training dashboard.
func (r *progressRepository) SummaryByCategory(restaurantID uint) ([]CategoryProgressSummary, error) {
	type row struct {
		CategoryID uint
		Status     model.ProgressStatus
		Count      int64
	}

	var rows []row
	err := r.db.Model(&model.UserProgress{}).
		Select("category_id, status, COUNT(*) AS count").
		Where("restaurant_id = ?", restaurantID).
		Group("category_id, status").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate progress summary", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}

	byCategory := make(map[uint]*CategoryProgressSummary)
	order := make([]uint, 0)
	for _, row := range rows {
		summary, ok := byCategory[row.CategoryID]
		if !ok {
			summary = &CategoryProgressSummary{CategoryID: row.CategoryID}
			byCategory[row.CategoryID] = summary
			order = append(order, row.CategoryID)
		}
		switch row.Status {
		case model.ProgressInProgress:
			summary.InProgress = row.Count
		case model.ProgressCompleted:
			summary.Completed = row.Count
		case model.ProgressPendingReview:
			summary.PendingReview = row.Count
		}
	}

	result := make([]CategoryProgressSummary, 0, len(order))
	for _, id := range order {
		result = append(result, *byCategory[id])
	}
	return result, nil
}
