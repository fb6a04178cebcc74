package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/tablehost/sop-backend/internal/errors"
	"github.com/tablehost/sop-backend/internal/storage"
	"github.com/tablehost/sop-backend/pkg/logger"
)

type UploadController struct {
	uploader storage.Uploader
}

func NewUploadController(uploader storage.Uploader) *UploadController {
	return &UploadController{uploader: uploader}
}

type presignRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// PresignUpload handles POST /api/uploads/presign
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.Internal(c, "")
		return
	}

	var req presignRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("Failed to parse presign request body", err)
		apperrors.Internal(c, "")
		return
	}

	actor := actorFromContext(c)
	upload, err := ctrl.uploader.PresignUpload(c.Request.Context(), actor.RestaurantID, req.Filename, req.ContentType, req.Size)
	if err != nil {
		switch err {
		case storage.ErrInvalidFileType:
			apperrors.BadRequest(c, "File type not allowed", apperrors.UploadInvalidFileType)
		case storage.ErrFileTooLarge:
			apperrors.BadRequest(c, "File exceeds the 10MB limit", apperrors.UploadFileTooLarge)
		default:
			apperrors.Internal(c, "Failed to create upload URL")
		}
		return
	}

	respond(c, http.StatusOK, upload, nil, "")
}
