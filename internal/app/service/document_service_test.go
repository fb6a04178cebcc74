package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/internal/db"
	"github.com/tablehost/sop-backend/pkg/pagination"
	"gorm.io/gorm"
)

func setupDocumentServiceTest(t *testing.T) (DocumentService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	documentRepo := repository.NewDocumentRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	auditRepo := repository.NewAuditRepository(testDB)
	return NewDocumentService(documentRepo, categoryRepo, auditRepo), testDB
}

func seedCategory(t *testing.T, testDB *gorm.DB, restaurantID uint, active bool) *model.SOPCategory {
	t.Helper()
	category := &model.SOPCategory{
		RestaurantID: restaurantID,
		Name:         "Kitchen",
		NameFr:       "Cuisine",
		SortOrder:    1,
		IsActive:     active,
	}
	require.NoError(t, testDB.Create(category).Error)
	return category
}

func TestDocumentService_CreateDocument_Defaults(t *testing.T) {
	documentService, testDB := setupDocumentServiceTest(t)
	category := seedCategory(t, testDB, 1, true)

	document, err := documentService.CreateDocument(testActor(), CreateDocumentInput{
		CategoryID: category.ID,
		Title:      "Opening checklist",
		TitleFr:    "Liste d'ouverture",
		Content:    "Steps...",
		ContentFr:  "Étapes...",
	})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", document.Version)
	assert.Equal(t, model.StatusDraft, document.Status)
	assert.NotNil(t, document.Tags)
	assert.Empty(t, document.Tags)
	assert.True(t, document.IsActive)
	assert.Equal(t, uint(1), document.CreatedBy)
	assert.Equal(t, uint(1), document.UpdatedBy)

	var entries []model.AuditLog
	require.NoError(t, testDB.Where("resource_type = ?", "sop_document").Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, document.ID, entries[0].ResourceID)
}

func TestDocumentService_CreateDocument_CategoryChecks(t *testing.T) {
	documentService, testDB := setupDocumentServiceTest(t)

	active := seedCategory(t, testDB, 1, true)
	inactive := &model.SOPCategory{RestaurantID: 1, Name: "Retired", NameFr: "Retraité", SortOrder: 2, IsActive: false}
	require.NoError(t, testDB.Create(inactive).Error)
	foreign := &model.SOPCategory{RestaurantID: 2, Name: "Elsewhere", NameFr: "Ailleurs", SortOrder: 1, IsActive: true}
	require.NoError(t, testDB.Create(foreign).Error)

	input := func(categoryID uint) CreateDocumentInput {
		return CreateDocumentInput{
			CategoryID: categoryID,
			Title:      "Doc", TitleFr: "Doc",
			Content: "c", ContentFr: "c",
		}
	}

	tests := []struct {
		name       string
		categoryID uint
		wantErr    error
	}{
		{"Active category accepted", active.ID, nil},
		{"Missing category rejected", 9999, ErrCategoryNotFound},
		{"Inactive category rejected", inactive.ID, ErrCategoryNotFound},
		{"Another restaurant's category rejected", foreign.ID, ErrCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := documentService.CreateDocument(testActor(), input(tt.categoryID))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDocumentService_GetDocument(t *testing.T) {
	documentService, testDB := setupDocumentServiceTest(t)
	category := seedCategory(t, testDB, 1, true)

	document, err := documentService.CreateDocument(testActor(), CreateDocumentInput{
		CategoryID: category.ID,
		Title:      "Opening checklist", TitleFr: "Liste d'ouverture",
		Content: "c", ContentFr: "c",
	})
	require.NoError(t, err)

	found, err := documentService.GetDocument(1, document.ID)
	require.NoError(t, err)
	assert.Equal(t, document.ID, found.ID)

	_, err = documentService.GetDocument(2, document.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound, "documents are scoped to the caller's restaurant")

	_, err = documentService.GetDocument(1, 9999)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentService_ListDocuments(t *testing.T) {
	documentService, testDB := setupDocumentServiceTest(t)
	category := seedCategory(t, testDB, 1, true)

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := documentService.CreateDocument(testActor(), CreateDocumentInput{
			CategoryID: category.ID,
			Title:      title, TitleFr: title,
			Content: "c", ContentFr: "c",
		})
		require.NoError(t, err)
	}

	documents, meta, err := documentService.ListDocuments(DocumentListOptions{
		RestaurantID: 1,
		ActiveOnly:   true,
		Page:         pagination.Params{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	assert.Len(t, documents, 1)
	assert.Equal(t, int64(3), meta.Total)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}
