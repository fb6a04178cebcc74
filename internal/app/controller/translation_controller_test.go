package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/internal/app/service"
	"github.com/tablehost/sop-backend/internal/db"
	"gorm.io/gorm"
)

func setupTranslationControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	translationRepo := repository.NewTranslationRepository(testDB)
	translationService := service.NewTranslationService(translationRepo, 15*time.Minute)
	translationController := NewTranslationController(translationService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/translations/:locale", translationController.GetTranslations)
	router.GET("/api/translations/:locale/key/*keyPath", translationController.GetTranslationByKey)
	router.POST("/api/translations/usage", translationController.TrackUsage)

	rows := []model.Translation{
		{Locale: "en", Key: "sop.wizard.next", Value: "Next step", Category: "wizard"},
		{Locale: "en", Key: "sop.wizard.step", Value: "Step {current} of {total}", Category: "wizard"},
		{Locale: "fr", Key: "sop.wizard.next", Value: "Étape suivante", Category: "wizard"},
	}
	require.NoError(t, testDB.Create(&rows).Error)

	return router, testDB
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTranslationController_GetTranslations(t *testing.T) {
	router, _ := setupTranslationControllerTest(t)

	w := get(t, router, "/api/translations/en")
	assert.Equal(t, http.StatusOK, w.Code)

	// Diagnostic headers are always present
	assert.Equal(t, "BYPASS", w.Header().Get("X-Cache-Status"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Response-Time"))
	assert.NotEmpty(t, w.Header().Get("ETag"))

	response := decodeBody(t, w)
	assert.Equal(t, true, response["success"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "en", data["locale"])
	assert.Equal(t, float64(2), data["count"])
	translations := data["translations"].(map[string]interface{})
	assert.Equal(t, "Next step", translations["sop.wizard.next"])
}

func TestTranslationController_GetTranslations_InvalidLocale(t *testing.T) {
	router, _ := setupTranslationControllerTest(t)

	for _, locale := range []string{"de", "EN", "english"} {
		w := get(t, router, "/api/translations/"+locale)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, "INVALID_LOCALE", response["errorCode"])
	}
}

func TestTranslationController_GetTranslations_ETagRevalidation(t *testing.T) {
	router, _ := setupTranslationControllerTest(t)

	first := get(t, router, "/api/translations/en")
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/translations/en", nil)
	req.Header.Set("If-None-Match", etag)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestTranslationController_GetTranslationByKey(t *testing.T) {
	router, _ := setupTranslationControllerTest(t)

	w := get(t, router, "/api/translations/en/key/sop.wizard.step?current=2&total=5")
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Step 2 of 5", data["value"])
	assert.Equal(t, true, data["interpolated"])
	assert.Equal(t, "sop.wizard.step", data["key"])
}

func TestTranslationController_GetTranslationByKey_NotFound(t *testing.T) {
	router, _ := setupTranslationControllerTest(t)

	w := get(t, router, "/api/translations/en/key/sop.missing.key")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TRANSLATION_NOT_FOUND", decodeBody(t, w)["errorCode"])
}

func TestTranslationController_TrackUsage(t *testing.T) {
	router, testDB := setupTranslationControllerTest(t)

	w := postJSON(t, router, "/api/translations/usage",
		`{"keys":["sop.wizard.next","sop.wizard.step"],"locale":"en","sessionId":"tablet-7","context":"wizard"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(2), response["tracked"])

	var count int64
	require.NoError(t, testDB.Model(&model.TranslationUsage{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestTranslationController_TrackUsage_Validation(t *testing.T) {
	router, _ := setupTranslationControllerTest(t)

	w := postJSON(t, router, "/api/translations/usage",
		`{"keys":[],"locale":"de","sessionId":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", response["errorCode"])
	assert.Len(t, response["details"].([]interface{}), 3)
}

func TestTranslationController_TrackUsage_MalformedJSON(t *testing.T) {
	router, _ := setupTranslationControllerTest(t)

	w := postJSON(t, router, "/api/translations/usage", `{"keys": [`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeBody(t, w)["errorCode"])
}
