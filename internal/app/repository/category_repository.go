package repository

import (
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/pkg/logger"
	"gorm.io/gorm"
)

// Whitelisted sort columns for category listings. Unknown values fall back
// to sort_order so client input never reaches the ORDER BY clause raw.
var categorySortColumns = map[string]string{
	"sort_order": "sort_order",
	"name":       "name",
	"name_fr":    "name_fr",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type CategoryFilter struct {
	RestaurantID  uint
	ActiveOnly    bool
	SortBy        string
	SortAscending bool
	Limit         int
	Offset        int
}

// CategoryStats holds the derived per-category counts for includeStats.
type CategoryStats struct {
	DocumentCount  int64
	CompletedCount int64
	PendingReviews int64
}

type CategoryRepository interface {
	Create(category *model.SOPCategory) error
	FindWithFilter(filter CategoryFilter) ([]model.SOPCategory, int64, error)
	FindByID(id uint) (*model.SOPCategory, error)
	ExistsByName(restaurantID uint, name, nameFr string) (bool, error)
	ExistsBySortOrder(restaurantID uint, sortOrder int) (bool, error)
	Stats(categoryID uint) (CategoryStats, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.SOPCategory) error {
	logger.Debug("Creating SOP category in database", map[string]interface{}{
		"restaurant_id": category.RestaurantID,
		"name":          category.Name,
		"sort_order":    category.SortOrder,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create SOP category in database", err, map[string]interface{}{
			"restaurant_id": category.RestaurantID,
			"name":          category.Name,
		})
		return err
	}

	logger.Debug("SOP category created in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}

// FindWithFilter returns one page of categories plus the total row count for
// the pagination envelope.
func (r *categoryRepository) FindWithFilter(filter CategoryFilter) ([]model.SOPCategory, int64, error) {
	logger.Debug("Finding SOP categories with filter", map[string]interface{}{
		"restaurant_id": filter.RestaurantID,
		"active_only":   filter.ActiveOnly,
		"sort_by":       filter.SortBy,
		"ascending":     filter.SortAscending,
		"limit":         filter.Limit,
		"offset":        filter.Offset,
	})

	query := r.db.Model(&model.SOPCategory{}).
		Where("restaurant_id = ?", filter.RestaurantID)

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count SOP categories", err, map[string]interface{}{
			"restaurant_id": filter.RestaurantID,
		})
		return nil, 0, err
	}

	column, ok := categorySortColumns[filter.SortBy]
	if !ok {
		column = "sort_order"
	}
	direction := "ASC"
	if !filter.SortAscending {
		direction = "DESC"
	}
	query = query.Order(column + " " + direction)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var categories []model.SOPCategory
	if err := query.Find(&categories).Error; err != nil {
		logger.Error("Failed to find SOP categories with filter", err, map[string]interface{}{
			"restaurant_id": filter.RestaurantID,
		})
		return nil, 0, err
	}

	logger.Debug("SOP categories found with filter", map[string]interface{}{
		"count": len(categories),
		"total": total,
	})
	return categories, total, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.SOPCategory, error) {
	var category model.SOPCategory
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByName reports whether an active category of the restaurant already
// uses either bilingual name.
func (r *categoryRepository) ExistsByName(restaurantID uint, name, nameFr string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SOPCategory{}).
		Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Where("name = ? OR name_fr = ?", name, nameFr).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check category name uniqueness", err, map[string]interface{}{
			"restaurant_id": restaurantID,
			"name":          name,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) ExistsBySortOrder(restaurantID uint, sortOrder int) (bool, error) {
	var count int64
	err := r.db.Model(&model.SOPCategory{}).
		Where("restaurant_id = ? AND is_active = ? AND sort_order = ?", restaurantID, true, sortOrder).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check category sort order uniqueness", err, map[string]interface{}{
			"restaurant_id": restaurantID,
			"sort_order":    sortOrder,
		})
		return false, err
	}
	return count > 0, nil
}

// Stats issues the secondary statistics queries for one category.
func (r *categoryRepository) Stats(categoryID uint) (CategoryStats, error) {
	stats := CategoryStats{}

	if err := r.db.Model(&model.SOPDocument{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&stats.DocumentCount).Error; err != nil {
		return CategoryStats{}, err
	}

	if err := r.db.Model(&model.UserProgress{}).
		Where("category_id = ? AND status = ?", categoryID, model.ProgressCompleted).
		Count(&stats.CompletedCount).Error; err != nil {
		return CategoryStats{}, err
	}

	if err := r.db.Model(&model.UserProgress{}).
		Where("category_id = ? AND status = ?", categoryID, model.ProgressPendingReview).
		Count(&stats.PendingReviews).Error; err != nil {
		return CategoryStats{}, err
	}

	return stats, nil
}
