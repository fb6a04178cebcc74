package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/internal/db"
	"gorm.io/gorm"
)

func setupTranslationServiceTest(t *testing.T) (TranslationService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	translationRepo := repository.NewTranslationRepository(testDB)
	return NewTranslationService(translationRepo, 15*time.Minute), testDB
}

func seedTranslationRows(t *testing.T, testDB *gorm.DB) {
	t.Helper()
	rows := []model.Translation{
		{Locale: "en", Key: "sop.wizard.next", Value: "Next step", Category: "wizard", Context: "Wizard footer button"},
		{Locale: "en", Key: "sop.wizard.step", Value: "Step {current} of {total}", Category: "wizard"},
		{Locale: "fr", Key: "sop.wizard.next", Value: "Étape suivante", Category: "wizard"},
	}
	require.NoError(t, testDB.Create(&rows).Error)
}

func TestTranslationService_GetTranslations(t *testing.T) {
	translationService, testDB := setupTranslationServiceTest(t)
	seedTranslationRows(t, testDB)

	bundle, status, err := translationService.GetTranslations(context.Background(), "en", "", "", nil, false)
	require.NoError(t, err)
	// Redis is not initialized in tests, so the cache is bypassed
	assert.Equal(t, CacheBypass, status)
	assert.Equal(t, "en", bundle.Locale)
	assert.Equal(t, 2, bundle.Count)
	assert.Equal(t, "Next step", bundle.Translations["sop.wizard.next"])
	assert.Nil(t, bundle.Context)
}

func TestTranslationService_GetTranslations_WithContext(t *testing.T) {
	translationService, testDB := setupTranslationServiceTest(t)
	seedTranslationRows(t, testDB)

	bundle, _, err := translationService.GetTranslations(context.Background(), "en", "wizard", "", nil, true)
	require.NoError(t, err)
	require.NotNil(t, bundle.Context)
	assert.Equal(t, "Wizard footer button", bundle.Context["sop.wizard.next"])
	// Rows without context stay out of the context map
	_, hasStep := bundle.Context["sop.wizard.step"]
	assert.False(t, hasStep)
}

func TestTranslationService_ResolveKey(t *testing.T) {
	translationService, testDB := setupTranslationServiceTest(t)
	seedTranslationRows(t, testDB)

	tests := []struct {
		name             string
		locale           string
		key              string
		vars             map[string]string
		wantValue        string
		wantInterpolated bool
		wantErr          error
	}{
		{
			name:      "Plain value",
			locale:    "en",
			key:       "sop.wizard.next",
			wantValue: "Next step",
		},
		{
			name:             "Interpolated value",
			locale:           "en",
			key:              "sop.wizard.step",
			vars:             map[string]string{"current": "2", "total": "5"},
			wantValue:        "Step 2 of 5",
			wantInterpolated: true,
		},
		{
			name:             "Missing variable left in place",
			locale:           "en",
			key:              "sop.wizard.step",
			vars:             map[string]string{"current": "2"},
			wantValue:        "Step 2 of {total}",
			wantInterpolated: true,
		},
		{
			name:      "No vars means no interpolation",
			locale:    "en",
			key:       "sop.wizard.step",
			wantValue: "Step {current} of {total}",
		},
		{
			name:    "Unknown key",
			locale:  "en",
			key:     "sop.missing",
			wantErr: ErrTranslationNotFound,
		},
		{
			name:    "Key absent in locale",
			locale:  "fr",
			key:     "sop.wizard.step",
			wantErr: ErrTranslationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := translationService.ResolveKey(tt.locale, tt.key, tt.vars)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, resolved.Value)
			assert.Equal(t, tt.wantInterpolated, resolved.Interpolated)
		})
	}
}

func TestTranslationService_TrackUsage(t *testing.T) {
	translationService, testDB := setupTranslationServiceTest(t)

	tracked, err := translationService.TrackUsage("en", []string{"sop.wizard.next", "sop.wizard.back"}, "session-1", "wizard")
	require.NoError(t, err)
	assert.Equal(t, 2, tracked)

	// Repeat bumps the counters, one row per key
	tracked, err = translationService.TrackUsage("en", []string{"sop.wizard.next"}, "session-1", "wizard")
	require.NoError(t, err)
	assert.Equal(t, 1, tracked)

	var rows []model.TranslationUsage
	require.NoError(t, testDB.Order("key ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].UsedCount)
	assert.Equal(t, 2, rows[1].UsedCount)
}

func TestTranslationService_ImportTranslations(t *testing.T) {
	translationService, testDB := setupTranslationServiceTest(t)
	seedTranslationRows(t, testDB)

	err := translationService.ImportTranslations(context.Background(), []model.Translation{
		{Locale: "en", Key: "sop.wizard.next", Value: "Continue", Category: "wizard"},
	})
	require.NoError(t, err)

	var row model.Translation
	require.NoError(t, testDB.Where("locale = ? AND key = ?", "en", "sop.wizard.next").First(&row).Error)
	assert.Equal(t, "Continue", row.Value)
}
