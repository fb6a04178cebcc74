package service

import (
	"encoding/json"
	"errors"

	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/pkg/logger"
	"github.com/tablehost/sop-backend/pkg/pagination"
)

var (
	ErrCategoryNameExists = errors.New("category name already exists")
	ErrSortOrderExists    = errors.New("category sort order already exists")
)

// Actor identifies the authenticated caller for scoping and audit trails.
type Actor struct {
	UserID       uint
	RestaurantID uint
}

type CategoryListOptions struct {
	RestaurantID  uint
	ActiveOnly    bool
	IncludeStats  bool
	SortBy        string
	SortAscending bool
	Page          pagination.Params
}

type CreateCategoryInput struct {
	Name          string
	NameFr        string
	Description   *string
	DescriptionFr *string
	Icon          *string
	Color         *string
	SortOrder     int
}

type CategoryService interface {
	ListCategories(opts CategoryListOptions) ([]model.SOPCategory, pagination.Meta, error)
	CreateCategory(actor Actor, input CreateCategoryInput) (*model.SOPCategory, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	auditRepo    repository.AuditRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, auditRepo repository.AuditRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
	}
}

func (s *categoryService) ListCategories(opts CategoryListOptions) ([]model.SOPCategory, pagination.Meta, error) {
	logger.Debug("Listing SOP categories", map[string]interface{}{
		"restaurant_id": opts.RestaurantID,
		"active_only":   opts.ActiveOnly,
		"include_stats": opts.IncludeStats,
		"sort_by":       opts.SortBy,
		"page":          opts.Page.Page,
		"limit":         opts.Page.Limit,
	})

	filter := repository.CategoryFilter{
		RestaurantID:  opts.RestaurantID,
		ActiveOnly:    opts.ActiveOnly,
		SortBy:        opts.SortBy,
		SortAscending: opts.SortAscending,
		Limit:         opts.Page.Limit,
		Offset:        opts.Page.Offset(),
	}

	categories, total, err := s.categoryRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list SOP categories", err)
		return nil, pagination.Meta{}, err
	}

	if opts.IncludeStats {
		s.attachStats(categories)
	}

	logger.Info("SOP categories listed", map[string]interface{}{
		"count": len(categories),
		"total": total,
	})
	return categories, pagination.NewMeta(opts.Page, total), nil
}

// attachStats merges per-category counts into the listing. A failed
// statistics query leaves that category's counts at zero; the listing itself
// never fails because of statistics.
func (s *categoryService) attachStats(categories []model.SOPCategory) {
	for i := range categories {
		stats, err := s.categoryRepo.Stats(categories[i].ID)
		if err != nil {
			logger.Warn("Failed to compute category statistics, defaulting to zero", map[string]interface{}{
				"category_id": categories[i].ID,
				"error":       err.Error(),
			})
			continue
		}
		categories[i].DocumentCount = stats.DocumentCount
		categories[i].CompletedCount = stats.CompletedCount
		categories[i].PendingReviews = stats.PendingReviews
	}
}

func (s *categoryService) CreateCategory(actor Actor, input CreateCategoryInput) (*model.SOPCategory, error) {
	logger.Info("Creating SOP category", map[string]interface{}{
		"restaurant_id": actor.RestaurantID,
		"name":          input.Name,
		"sort_order":    input.SortOrder,
	})

	nameTaken, err := s.categoryRepo.ExistsByName(actor.RestaurantID, input.Name, input.NameFr)
	if err != nil {
		return nil, err
	}
	if nameTaken {
		logger.Warn("Category name already in use", map[string]interface{}{
			"restaurant_id": actor.RestaurantID,
			"name":          input.Name,
			"name_fr":       input.NameFr,
		})
		return nil, ErrCategoryNameExists
	}

	orderTaken, err := s.categoryRepo.ExistsBySortOrder(actor.RestaurantID, input.SortOrder)
	if err != nil {
		return nil, err
	}
	if orderTaken {
		logger.Warn("Category sort order already in use", map[string]interface{}{
			"restaurant_id": actor.RestaurantID,
			"sort_order":    input.SortOrder,
		})
		return nil, ErrSortOrderExists
	}

	category := &model.SOPCategory{
		RestaurantID:  actor.RestaurantID,
		Name:          input.Name,
		NameFr:        input.NameFr,
		Description:   input.Description,
		DescriptionFr: input.DescriptionFr,
		Icon:          input.Icon,
		Color:         input.Color,
		SortOrder:     input.SortOrder,
		IsActive:      true,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create SOP category", err, map[string]interface{}{
			"restaurant_id": actor.RestaurantID,
			"name":          input.Name,
		})
		return nil, err
	}

	recordCreateAudit(s.auditRepo, actor, "sop_category", category.ID, map[string]interface{}{
		"name":       category.Name,
		"name_fr":    category.NameFr,
		"sort_order": category.SortOrder,
	})

	logger.Info("SOP category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

// recordCreateAudit fires the post-create audit entry. Audit failures are
// logged and swallowed: the mutation already committed.
func recordCreateAudit(auditRepo repository.AuditRepository, actor Actor, resourceType string, resourceID uint, snapshot map[string]interface{}) {
	newValues, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("Failed to marshal audit snapshot", err, map[string]interface{}{
			"resource_type": resourceType,
			"resource_id":   resourceID,
		})
		return
	}

	entry := &model.AuditLog{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "CREATE",
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldValues:    nil,
		NewValues:    string(newValues),
	}
	if err := auditRepo.Create(entry); err != nil {
		logger.Warn("Audit log write failed after create", map[string]interface{}{
			"resource_type": resourceType,
			"resource_id":   resourceID,
		})
	}
}
