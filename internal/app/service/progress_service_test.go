package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/internal/db"
	"gorm.io/gorm"
)

type captureBroadcaster struct {
	restaurantIDs []uint
	events        []interface{}
}

func (b *captureBroadcaster) BroadcastProgress(restaurantID uint, event interface{}) {
	b.restaurantIDs = append(b.restaurantIDs, restaurantID)
	b.events = append(b.events, event)
}

func setupProgressServiceTest(t *testing.T) (ProgressService, *captureBroadcaster, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	progressRepo := repository.NewProgressRepository(testDB)
	documentRepo := repository.NewDocumentRepository(testDB)
	broadcaster := &captureBroadcaster{}
	return NewProgressService(progressRepo, documentRepo, broadcaster), broadcaster, testDB
}

func seedDocument(t *testing.T, testDB *gorm.DB, restaurantID, categoryID uint) *model.SOPDocument {
	t.Helper()
	document := &model.SOPDocument{
		RestaurantID: restaurantID,
		CategoryID:   categoryID,
		Title:        "Opening checklist",
		TitleFr:      "Liste d'ouverture",
		Content:      "c",
		ContentFr:    "c",
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(document).Error)
	return document
}

func TestProgressService_RecordProgress(t *testing.T) {
	progressService, broadcaster, testDB := setupProgressServiceTest(t)
	document := seedDocument(t, testDB, 1, 10)

	progress, err := progressService.RecordProgress(testActor(), RecordProgressInput{
		DocumentID:      document.ID,
		Status:          "in_progress",
		ProgressPercent: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), progress.CategoryID, "category comes from the document, not the request")
	assert.Equal(t, model.ProgressInProgress, progress.Status)

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, uint(1), broadcaster.restaurantIDs[0])
	event := broadcaster.events[0].(ProgressEvent)
	assert.Equal(t, "progress_update", event.Type)
	assert.Equal(t, 40, event.ProgressPercent)
}

func TestProgressService_RecordProgress_DocumentScoping(t *testing.T) {
	progressService, broadcaster, testDB := setupProgressServiceTest(t)
	foreign := seedDocument(t, testDB, 2, 10)

	_, err := progressService.RecordProgress(testActor(), RecordProgressInput{
		DocumentID: foreign.ID,
		Status:     "in_progress",
	})
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = progressService.RecordProgress(testActor(), RecordProgressInput{
		DocumentID: 9999,
		Status:     "in_progress",
	})
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	assert.Empty(t, broadcaster.events, "rejected updates are not broadcast")
}

func TestProgressService_Summary(t *testing.T) {
	progressService, _, testDB := setupProgressServiceTest(t)
	document := seedDocument(t, testDB, 1, 10)

	_, err := progressService.RecordProgress(testActor(), RecordProgressInput{
		DocumentID:      document.ID,
		Status:          "completed",
		ProgressPercent: 100,
	})
	require.NoError(t, err)

	summary, err := progressService.Summary(1)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, uint(10), summary[0].CategoryID)
	assert.Equal(t, int64(1), summary[0].Completed)
}
