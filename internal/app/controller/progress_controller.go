package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tablehost/sop-backend/internal/app/service"
	apperrors "github.com/tablehost/sop-backend/internal/errors"
	"github.com/tablehost/sop-backend/internal/validation"
	"github.com/tablehost/sop-backend/pkg/logger"
)

type ProgressController struct {
	progressService service.ProgressService
}

func NewProgressController(progressService service.ProgressService) *ProgressController {
	return &ProgressController{progressService: progressService}
}

type recordProgressRequest struct {
	DocumentID      uint   `json:"document_id"`
	Status          string `json:"status"`
	ProgressPercent int    `json:"progress_percent"`
}

// RecordProgress handles POST /api/sop/progress
func (ctrl *ProgressController) RecordProgress(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.Internal(c, "")
		return
	}

	var req recordProgressRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("Failed to parse progress body", err)
		apperrors.Internal(c, "")
		return
	}

	if details := validation.ProgressRecord(req.DocumentID, req.Status, req.ProgressPercent); len(details) > 0 {
		apperrors.RespondWithDetails(c, http.StatusBadRequest,
			"Validation failed", apperrors.ValidationError, details)
		return
	}

	actor := actorFromContext(c)
	progress, err := ctrl.progressService.RecordProgress(actor, service.RecordProgressInput{
		DocumentID:      req.DocumentID,
		Status:          req.Status,
		ProgressPercent: req.ProgressPercent,
	})
	if err != nil {
		if err == service.ErrDocumentNotFound {
			apperrors.NotFound(c, "Document not found", apperrors.DocumentNotFound)
			return
		}
		apperrors.Database(c, "Failed to record progress")
		return
	}

	respond(c, http.StatusOK, progress, nil, "Progress recorded")
}

// GetSummary handles GET /api/sop/progress/summary
func (ctrl *ProgressController) GetSummary(c *gin.Context) {
	actor := actorFromContext(c)
	summary, err := ctrl.progressService.Summary(actor.RestaurantID)
	if err != nil {
		apperrors.Database(c, "Failed to load progress summary")
		return
	}

	respond(c, http.StatusOK, summary, nil, "")
}
