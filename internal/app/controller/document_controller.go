package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/service"
	apperrors "github.com/tablehost/sop-backend/internal/errors"
	"github.com/tablehost/sop-backend/internal/sanitize"
	"github.com/tablehost/sop-backend/internal/validation"
	"github.com/tablehost/sop-backend/pkg/logger"
	"github.com/tablehost/sop-backend/pkg/pagination"
)

type DocumentController struct {
	documentService service.DocumentService
}

func NewDocumentController(documentService service.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

type createDocumentRequest struct {
	CategoryID        uint     `json:"category_id"`
	Title             string   `json:"title"`
	TitleFr           string   `json:"title_fr"`
	Content           string   `json:"content"`
	ContentFr         string   `json:"content_fr"`
	Tags              []string `json:"tags"`
	DifficultyLevel   string   `json:"difficulty_level"`
	EstimatedReadTime int      `json:"estimated_read_time"`
	ReviewDueDate     *string  `json:"review_due_date"`
}

// ListDocuments handles GET /api/sop/documents
// Query: page, limit, category_id, status, difficulty_level, tags
// (comma-separated), updated_after, review_due, activeOnly, sortBy, sortOrder
func (ctrl *DocumentController) ListDocuments(c *gin.Context) {
	params, details := pagination.Parse(c.Query("page"), c.Query("limit"))
	if len(details) > 0 {
		apperrors.RespondWithDetails(c, http.StatusBadRequest,
			"Invalid pagination parameters", apperrors.ValidationError, details)
		return
	}

	sortBy := c.Query("sortBy")
	sortOrder := c.Query("sortOrder")

	actor := actorFromContext(c)
	opts := service.DocumentListOptions{
		RestaurantID: actor.RestaurantID,
		ActiveOnly:   c.DefaultQuery("activeOnly", "true") != "false",
		SortBy:       sortBy,
		// An explicit sortBy defaults to ascending; the bare list keeps
		// most-recently-updated first.
		SortAscending: sortOrder == "asc" || (sortOrder == "" && sortBy != ""),
		Page:          params,
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, "category_id must be a positive integer", apperrors.ValidationError)
			return
		}
		categoryID := uint(id)
		opts.CategoryID = &categoryID
	}
	if raw := c.Query("status"); raw != "" {
		status := model.DocumentStatus(raw)
		opts.Status = &status
	}
	if raw := c.Query("difficulty_level"); raw != "" {
		difficulty := model.DifficultyLevel(raw)
		opts.Difficulty = &difficulty
	}
	if raw := c.Query("tags"); raw != "" {
		opts.Tags = sanitize.Slice(strings.Split(raw, ","))
	}
	if raw := c.Query("updated_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apperrors.BadRequest(c, "updated_after must be an ISO-8601 timestamp", apperrors.ValidationError)
			return
		}
		opts.UpdatedAfter = &t
	}
	// review_due=true means due or overdue now; a timestamp bounds the
	// review date from above.
	if raw := c.Query("review_due"); raw != "" {
		if raw == "true" {
			now := time.Now()
			opts.ReviewDueBefore = &now
		} else {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				apperrors.BadRequest(c, "review_due must be true or an ISO-8601 timestamp", apperrors.ValidationError)
				return
			}
			opts.ReviewDueBefore = &t
		}
	}

	documents, meta, err := ctrl.documentService.ListDocuments(opts)
	if err != nil {
		apperrors.Database(c, "Failed to fetch documents")
		return
	}

	respond(c, http.StatusOK, documents, &meta, "")
}

// CreateDocument handles POST /api/sop/documents
func (ctrl *DocumentController) CreateDocument(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.Internal(c, "")
		return
	}

	var req createDocumentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("Failed to parse document creation body", err)
		apperrors.Internal(c, "")
		return
	}

	sanitize.Fields(&req.Title, &req.TitleFr, &req.Content, &req.ContentFr)
	req.Tags = sanitize.Slice(req.Tags)

	details := validation.DocumentCreate(
		req.CategoryID, req.Title, req.TitleFr, req.Content, req.ContentFr,
		req.DifficultyLevel, req.EstimatedReadTime,
	)

	var reviewDue *time.Time
	if req.ReviewDueDate != nil && *req.ReviewDueDate != "" {
		t, err := time.Parse(time.RFC3339, *req.ReviewDueDate)
		if err != nil {
			details = append(details, "review_due_date must be an ISO-8601 timestamp")
		} else {
			reviewDue = &t
		}
	}

	if len(details) > 0 {
		apperrors.RespondWithDetails(c, http.StatusBadRequest,
			"Validation failed", apperrors.ValidationError, details)
		return
	}

	actor := actorFromContext(c)
	document, err := ctrl.documentService.CreateDocument(actor, service.CreateDocumentInput{
		CategoryID:        req.CategoryID,
		Title:             req.Title,
		TitleFr:           req.TitleFr,
		Content:           req.Content,
		ContentFr:         req.ContentFr,
		Tags:              req.Tags,
		DifficultyLevel:   req.DifficultyLevel,
		EstimatedReadTime: req.EstimatedReadTime,
		ReviewDueDate:     reviewDue,
	})
	if err != nil {
		if err == service.ErrCategoryNotFound {
			// A missing category is a client mistake on this endpoint, not a
			// missing resource: the document collection itself exists.
			apperrors.BadRequest(c, "Category not found", apperrors.CategoryNotFound)
			return
		}
		apperrors.Database(c, "Failed to create document")
		return
	}

	respond(c, http.StatusCreated, document, nil, "Document created successfully")
}

// GetDocument handles GET /api/sop/documents/:id
func (ctrl *DocumentController) GetDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "Document id must be a positive integer", apperrors.ValidationError)
		return
	}

	actor := actorFromContext(c)
	document, err := ctrl.documentService.GetDocument(actor.RestaurantID, uint(id))
	if err != nil {
		if err == service.ErrDocumentNotFound {
			apperrors.NotFound(c, "Document not found", apperrors.DocumentNotFound)
			return
		}
		apperrors.Database(c, "Failed to fetch document")
		return
	}

	respond(c, http.StatusOK, document, nil, "")
}
