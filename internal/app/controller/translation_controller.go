package controller

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tablehost/sop-backend/internal/app/service"
	apperrors "github.com/tablehost/sop-backend/internal/errors"
	"github.com/tablehost/sop-backend/internal/validation"
	"github.com/tablehost/sop-backend/pkg/logger"
)

type TranslationController struct {
	translationService service.TranslationService
}

func NewTranslationController(translationService service.TranslationService) *TranslationController {
	return &TranslationController{translationService: translationService}
}

type trackUsageRequest struct {
	Keys      []string `json:"keys"`
	Locale    string   `json:"locale"`
	SessionID string   `json:"sessionId"`
	Context   string   `json:"context"`
}

// setDiagnosticHeaders stamps the headers the tablet uses to debug slow or
// stale translation responses.
func setDiagnosticHeaders(c *gin.Context, cacheStatus string, start time.Time) {
	c.Header("X-Cache-Status", cacheStatus)
	c.Header("X-Request-ID", uuid.New().String())
	c.Header("X-Response-Time", fmt.Sprintf("%dms", time.Since(start).Milliseconds()))
}

// GetTranslations handles GET /api/translations/:locale
// Query: category, keys (comma-separated), includeContext
func (ctrl *TranslationController) GetTranslations(c *gin.Context) {
	start := time.Now()

	locale := c.Param("locale")
	if !validation.Locale(locale) {
		apperrors.BadRequest(c, "Locale must be one of en, fr", apperrors.InvalidLocale)
		return
	}

	category := c.Query("category")
	keysCSV := c.Query("keys")
	var keys []string
	if keysCSV != "" {
		for _, k := range strings.Split(keysCSV, ",") {
			if trimmed := strings.TrimSpace(k); trimmed != "" {
				keys = append(keys, trimmed)
			}
		}
	}

	bundle, cacheStatus, err := ctrl.translationService.GetTranslations(
		c.Request.Context(), locale, category, keysCSV, keys, c.Query("includeContext") == "true",
	)
	if err != nil {
		apperrors.Database(c, "Failed to retrieve translations")
		return
	}

	etag := bundleETag(bundle)
	setDiagnosticHeaders(c, cacheStatus, start)
	c.Header("ETag", etag)

	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}

	respond(c, http.StatusOK, bundle, nil, "")
}

// GetTranslationByKey handles GET /api/translations/:locale/key/*keyPath
// Every query parameter is treated as an interpolation variable.
func (ctrl *TranslationController) GetTranslationByKey(c *gin.Context) {
	start := time.Now()

	locale := c.Param("locale")
	if !validation.Locale(locale) {
		apperrors.BadRequest(c, "Locale must be one of en, fr", apperrors.InvalidLocale)
		return
	}

	keyPath := strings.TrimPrefix(c.Param("keyPath"), "/")
	if keyPath == "" {
		apperrors.BadRequest(c, "Translation key is required", apperrors.ValidationError)
		return
	}

	vars := make(map[string]string)
	for name, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			vars[name] = values[0]
		}
	}

	resolved, err := ctrl.translationService.ResolveKey(locale, keyPath, vars)
	if err != nil {
		if err == service.ErrTranslationNotFound {
			apperrors.NotFound(c, "Translation not found", apperrors.TranslationNotFound)
			return
		}
		apperrors.Database(c, "Failed to retrieve translation")
		return
	}

	setDiagnosticHeaders(c, service.CacheBypass, start)
	respond(c, http.StatusOK, resolved, nil, "")
}

// TrackUsage handles POST /api/translations/usage
func (ctrl *TranslationController) TrackUsage(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.Internal(c, "")
		return
	}

	var req trackUsageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("Failed to parse usage tracking body", err)
		apperrors.Internal(c, "")
		return
	}

	if details := validation.UsageTrack(req.Keys, req.Locale, req.SessionID); len(details) > 0 {
		apperrors.RespondWithDetails(c, http.StatusBadRequest,
			"Validation failed", apperrors.ValidationError, details)
		return
	}

	tracked, err := ctrl.translationService.TrackUsage(req.Locale, req.Keys, req.SessionID, req.Context)
	if err != nil {
		apperrors.Database(c, "Failed to track translation usage")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tracked": tracked,
	})
}

// bundleETag derives a strong validator from the bundle contents so tablets
// can revalidate cheaply between cache refreshes.
func bundleETag(bundle *service.TranslationBundle) string {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf(`"%x"`, sum[:16])
}
