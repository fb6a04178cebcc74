package repository

import (
	"time"

	"github.com/lib/pq"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/pkg/logger"
	"gorm.io/gorm"
)

var documentSortColumns = map[string]string{
	"updated_at":      "updated_at",
	"created_at":      "created_at",
	"title":           "title",
	"title_fr":        "title_fr",
	"status":          "status",
	"review_due_date": "review_due_date",
}

type DocumentFilter struct {
	RestaurantID    uint
	CategoryID      *uint
	Status          *model.DocumentStatus
	Difficulty      *model.DifficultyLevel
	Tags            []string
	UpdatedAfter    *time.Time
	ReviewDueBefore *time.Time
	ActiveOnly      bool
	SortBy          string
	SortAscending   bool
	Limit           int
	Offset          int
}

type DocumentRepository interface {
	Create(document *model.SOPDocument) error
	FindWithFilter(filter DocumentFilter) ([]model.SOPDocument, int64, error)
	FindByID(id uint) (*model.SOPDocument, error)
	MarkOverdueForReview(now time.Time) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(document *model.SOPDocument) error {
	logger.Debug("Creating SOP document in database", map[string]interface{}{
		"restaurant_id": document.RestaurantID,
		"category_id":   document.CategoryID,
		"title":         document.Title,
	})

	if err := r.db.Create(document).Error; err != nil {
		logger.Error("Failed to create SOP document in database", err, map[string]interface{}{
			"restaurant_id": document.RestaurantID,
			"category_id":   document.CategoryID,
			"title":         document.Title,
		})
		return err
	}

	logger.Debug("SOP document created in database", map[string]interface{}{
		"document_id": document.ID,
		"title":       document.Title,
	})
	return nil
}

func (r *documentRepository) FindWithFilter(filter DocumentFilter) ([]model.SOPDocument, int64, error) {
	logger.Debug("Finding SOP documents with filter", map[string]interface{}{
		"restaurant_id": filter.RestaurantID,
		"category_id":   filter.CategoryID,
		"status":        filter.Status,
		"tags":          filter.Tags,
		"limit":         filter.Limit,
		"offset":        filter.Offset,
	})

	query := r.db.Model(&model.SOPDocument{}).
		Where("restaurant_id = ?", filter.RestaurantID)

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Difficulty != nil {
		query = query.Where("difficulty_level = ?", *filter.Difficulty)
	}
	if len(filter.Tags) > 0 {
		// Array overlap: match documents sharing at least one requested tag
		query = query.Where("tags && ?", pq.Array(filter.Tags))
	}
	if filter.UpdatedAfter != nil {
		query = query.Where("updated_at >= ?", *filter.UpdatedAfter)
	}
	if filter.ReviewDueBefore != nil {
		query = query.Where("review_due_date IS NOT NULL AND review_due_date <= ?", *filter.ReviewDueBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count SOP documents", err, map[string]interface{}{
			"restaurant_id": filter.RestaurantID,
		})
		return nil, 0, err
	}

	column, ok := documentSortColumns[filter.SortBy]
	if !ok {
		column = "updated_at"
	}
	direction := "ASC"
	if !filter.SortAscending {
		direction = "DESC"
	}
	query = query.Order(column + " " + direction).
		Preload("Category").
		Preload("Author")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var documents []model.SOPDocument
	if err := query.Find(&documents).Error; err != nil {
		logger.Error("Failed to find SOP documents with filter", err, map[string]interface{}{
			"restaurant_id": filter.RestaurantID,
		})
		return nil, 0, err
	}

	logger.Debug("SOP documents found with filter", map[string]interface{}{
		"count": len(documents),
		"total": total,
	})
	return documents, total, nil
}

func (r *documentRepository) FindByID(id uint) (*model.SOPDocument, error) {
	var document model.SOPDocument
	err := r.db.Preload("Category").Preload("Author").First(&document, id).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// MarkOverdueForReview flips approved documents whose review date has passed
// into review status. Called by the daily scheduler sweep.
func (r *documentRepository) MarkOverdueForReview(now time.Time) (int64, error) {
	result := r.db.Model(&model.SOPDocument{}).
		Where("status = ? AND review_due_date IS NOT NULL AND review_due_date <= ?", model.StatusApproved, now).
		Update("status", model.StatusReview)
	if result.Error != nil {
		logger.Error("Failed to mark overdue documents for review", result.Error, nil)
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		logger.Info("Documents flagged for review", map[string]interface{}{
			"count": result.RowsAffected,
		})
	}
	return result.RowsAffected, nil
}
