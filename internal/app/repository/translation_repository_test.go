package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/db"
	"gorm.io/gorm"
)

func setupTranslationRepoTest(t *testing.T) (TranslationRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewTranslationRepository(testDB), testDB
}

func seedTranslations(t *testing.T, testDB *gorm.DB) {
	t.Helper()
	rows := []model.Translation{
		{Locale: "en", Key: "sop.wizard.next", Value: "Next step", Category: "wizard"},
		{Locale: "en", Key: "sop.wizard.back", Value: "Previous step", Category: "wizard"},
		{Locale: "en", Key: "sop.list.empty", Value: "No procedures yet", Category: "list"},
		{Locale: "fr", Key: "sop.wizard.next", Value: "Étape suivante", Category: "wizard"},
	}
	require.NoError(t, testDB.Create(&rows).Error)
}

func TestTranslationRepository_FindByLocale(t *testing.T) {
	repo, testDB := setupTranslationRepoTest(t)
	seedTranslations(t, testDB)

	all, err := repo.FindByLocale("en", "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Ordered by key
	assert.Equal(t, "sop.list.empty", all[0].Key)

	wizard, err := repo.FindByLocale("en", "wizard", nil)
	require.NoError(t, err)
	assert.Len(t, wizard, 2)

	subset, err := repo.FindByLocale("en", "", []string{"sop.wizard.next"})
	require.NoError(t, err)
	require.Len(t, subset, 1)
	assert.Equal(t, "Next step", subset[0].Value)

	french, err := repo.FindByLocale("fr", "", nil)
	require.NoError(t, err)
	assert.Len(t, french, 1)
}

func TestTranslationRepository_FindByKey(t *testing.T) {
	repo, testDB := setupTranslationRepoTest(t)
	seedTranslations(t, testDB)

	translation, err := repo.FindByKey("fr", "sop.wizard.next")
	require.NoError(t, err)
	assert.Equal(t, "Étape suivante", translation.Value)

	_, err = repo.FindByKey("en", "sop.missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTranslationRepository_TrackUsage_Upsert(t *testing.T) {
	repo, testDB := setupTranslationRepoTest(t)

	require.NoError(t, repo.TrackUsage("en", "sop.wizard.next", "session-1", "wizard"))
	require.NoError(t, repo.TrackUsage("en", "sop.wizard.next", "session-1", "wizard"))
	require.NoError(t, repo.TrackUsage("en", "sop.wizard.next", "session-2", "wizard"))

	var rows []model.TranslationUsage
	require.NoError(t, testDB.Order("session_id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].UsedCount)
	assert.Equal(t, "session-1", rows[0].SessionID)
	assert.Equal(t, 1, rows[1].UsedCount)
}

func TestTranslationRepository_BulkUpsert(t *testing.T) {
	repo, testDB := setupTranslationRepoTest(t)
	seedTranslations(t, testDB)

	err := repo.BulkUpsert([]model.Translation{
		{Locale: "en", Key: "sop.wizard.next", Value: "Continue", Category: "wizard"},
		{Locale: "en", Key: "sop.wizard.finish", Value: "Finish", Category: "wizard"},
	}, 100)
	require.NoError(t, err)

	updated, err := repo.FindByKey("en", "sop.wizard.next")
	require.NoError(t, err)
	assert.Equal(t, "Continue", updated.Value)

	added, err := repo.FindByKey("en", "sop.wizard.finish")
	require.NoError(t, err)
	assert.Equal(t, "Finish", added.Value)

	var count int64
	require.NoError(t, testDB.Model(&model.Translation{}).Where("locale = ?", "en").Count(&count).Error)
	assert.Equal(t, int64(4), count)
}
