package service

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/pkg/logger"
	"github.com/tablehost/sop-backend/pkg/pagination"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDocumentNotFound = errors.New("document not found")
)

type DocumentListOptions struct {
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
	Page            pagination.Params
}

type CreateDocumentInput struct {
	CategoryID        uint
	Title             string
	TitleFr           string
	Content           string
	ContentFr         string
	Tags              []string
	DifficultyLevel   string
	EstimatedReadTime int
	ReviewDueDate     *time.Time
}

type DocumentService interface {
	ListDocuments(opts DocumentListOptions) ([]model.SOPDocument, pagination.Meta, error)
	CreateDocument(actor Actor, input CreateDocumentInput) (*model.SOPDocument, error)
	GetDocument(restaurantID, id uint) (*model.SOPDocument, error)
}

type documentService struct {
	documentRepo repository.DocumentRepository
	categoryRepo repository.CategoryRepository
	auditRepo    repository.AuditRepository
}

func NewDocumentService(
	documentRepo repository.DocumentRepository,
	categoryRepo repository.CategoryRepository,
	auditRepo repository.AuditRepository,
) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
	}
}

func (s *documentService) ListDocuments(opts DocumentListOptions) ([]model.SOPDocument, pagination.Meta, error) {
	logger.Debug("Listing SOP documents", map[string]interface{}{
		"restaurant_id": opts.RestaurantID,
		"category_id":   opts.CategoryID,
		"status":        opts.Status,
		"page":          opts.Page.Page,
		"limit":         opts.Page.Limit,
	})

	filter := repository.DocumentFilter{
		RestaurantID:    opts.RestaurantID,
		CategoryID:      opts.CategoryID,
		Status:          opts.Status,
		Difficulty:      opts.Difficulty,
		Tags:            opts.Tags,
		UpdatedAfter:    opts.UpdatedAfter,
		ReviewDueBefore: opts.ReviewDueBefore,
		ActiveOnly:      opts.ActiveOnly,
		SortBy:          opts.SortBy,
		SortAscending:   opts.SortAscending,
		Limit:           opts.Page.Limit,
		Offset:          opts.Page.Offset(),
	}

	documents, total, err := s.documentRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list SOP documents", err)
		return nil, pagination.Meta{}, err
	}

	return documents, pagination.NewMeta(opts.Page, total), nil
}

func (s *documentService) CreateDocument(actor Actor, input CreateDocumentInput) (*model.SOPDocument, error) {
	logger.Info("Creating SOP document", map[string]interface{}{
		"restaurant_id": actor.RestaurantID,
		"category_id":   input.CategoryID,
		"title":         input.Title,
	})

	// The target category must exist, be active, and belong to the caller's
	// restaurant. A soft-deleted or foreign category looks identical to a
	// missing one from the caller's side.
	category, err := s.categoryRepo.FindByID(input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to load category for document creation", err, map[string]interface{}{
			"category_id": input.CategoryID,
		})
		return nil, err
	}
	if !category.IsActive || category.RestaurantID != actor.RestaurantID {
		logger.Warn("Document creation rejected, category unavailable", map[string]interface{}{
			"category_id":   input.CategoryID,
			"restaurant_id": actor.RestaurantID,
		})
		return nil, ErrCategoryNotFound
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	document := &model.SOPDocument{
		RestaurantID:      actor.RestaurantID,
		CategoryID:        input.CategoryID,
		Title:             input.Title,
		TitleFr:           input.TitleFr,
		Content:           input.Content,
		ContentFr:         input.ContentFr,
		Version:           "1.0.0",
		Status:            model.StatusDraft,
		Tags:              pq.StringArray(tags),
		DifficultyLevel:   model.DifficultyLevel(input.DifficultyLevel),
		EstimatedReadTime: input.EstimatedReadTime,
		ReviewDueDate:     input.ReviewDueDate,
		CreatedBy:         actor.UserID,
		UpdatedBy:         actor.UserID,
		IsActive:          true,
	}

	if err := s.documentRepo.Create(document); err != nil {
		return nil, err
	}

	s.recordDocumentAudit(actor, document)

	logger.Info("SOP document created successfully", map[string]interface{}{
		"document_id": document.ID,
		"category_id": document.CategoryID,
		"title":       document.Title,
	})
	return document, nil
}

func (s *documentService) GetDocument(restaurantID, id uint) (*model.SOPDocument, error) {
	document, err := s.documentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if document.RestaurantID != restaurantID || !document.IsActive {
		return nil, ErrDocumentNotFound
	}
	return document, nil
}

func (s *documentService) recordDocumentAudit(actor Actor, document *model.SOPDocument) {
	snapshot := map[string]interface{}{
		"title":       document.Title,
		"title_fr":    document.TitleFr,
		"category_id": document.CategoryID,
		"version":     document.Version,
		"status":      document.Status,
	}

	recordCreateAudit(s.auditRepo, actor, "sop_document", document.ID, snapshot)
}
