package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/tablehost/sop-backend/internal/errors"
	"github.com/tablehost/sop-backend/internal/app/service"
	"github.com/tablehost/sop-backend/internal/sanitize"
	"github.com/tablehost/sop-backend/internal/validation"
	"github.com/tablehost/sop-backend/pkg/logger"
	"github.com/tablehost/sop-backend/pkg/pagination"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type createCategoryRequest struct {
	Name          string  `json:"name"`
	NameFr        string  `json:"name_fr"`
	Description   *string `json:"description"`
	DescriptionFr *string `json:"description_fr"`
	Icon          *string `json:"icon"`
	Color         *string `json:"color"`
	SortOrder     int     `json:"sort_order"`
}

// ListCategories handles GET /api/sop/categories
// Query: page, limit, includeStats, activeOnly, sortBy, sortOrder
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	params, details := pagination.Parse(c.Query("page"), c.Query("limit"))
	if len(details) > 0 {
		apperrors.RespondWithDetails(c, http.StatusBadRequest,
			"Invalid pagination parameters", apperrors.ValidationError, details)
		return
	}

	actor := actorFromContext(c)
	opts := service.CategoryListOptions{
		RestaurantID:  actor.RestaurantID,
		ActiveOnly:    c.DefaultQuery("activeOnly", "true") != "false",
		IncludeStats:  c.Query("includeStats") == "true",
		SortBy:        c.Query("sortBy"),
		SortAscending: c.DefaultQuery("sortOrder", "asc") != "desc",
		Page:          params,
	}

	categories, meta, err := ctrl.categoryService.ListCategories(opts)
	if err != nil {
		apperrors.Database(c, "Failed to fetch categories")
		return
	}

	respond(c, http.StatusOK, categories, &meta, "")
}

// CreateCategory handles POST /api/sop/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.Internal(c, "")
		return
	}

	// A body that does not parse as JSON is treated as a server-side failure,
	// not a validation error. Tablet clients always send well-formed JSON.
	var req createCategoryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("Failed to parse category creation body", err)
		apperrors.Internal(c, "")
		return
	}

	sanitize.Fields(&req.Name, &req.NameFr, req.Description, req.DescriptionFr, req.Icon, req.Color)

	color := ""
	if req.Color != nil {
		color = *req.Color
	}
	if details := validation.CategoryCreate(req.Name, req.NameFr, color, req.SortOrder); len(details) > 0 {
		apperrors.RespondWithDetails(c, http.StatusBadRequest,
			"Validation failed", apperrors.ValidationError, details)
		return
	}

	actor := actorFromContext(c)
	category, err := ctrl.categoryService.CreateCategory(actor, service.CreateCategoryInput{
		Name:          req.Name,
		NameFr:        req.NameFr,
		Description:   req.Description,
		DescriptionFr: req.DescriptionFr,
		Icon:          req.Icon,
		Color:         req.Color,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		switch err {
		case service.ErrCategoryNameExists:
			apperrors.Conflict(c, "A category with this name already exists", apperrors.CategoryExists)
		case service.ErrSortOrderExists:
			apperrors.Conflict(c, "A category with this sort order already exists", apperrors.SortOrderExists)
		default:
			apperrors.Database(c, "Failed to create category")
		}
		return
	}

	respond(c, http.StatusCreated, category, nil, "Category created successfully")
}
