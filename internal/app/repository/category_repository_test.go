package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/db"
	"gorm.io/gorm"
)

func setupCategoryRepoTest(t *testing.T) (CategoryRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewCategoryRepository(testDB), testDB
}

func createCategory(t *testing.T, repo CategoryRepository, restaurantID uint, name, nameFr string, sortOrder int, active bool) *model.SOPCategory {
	t.Helper()
	category := &model.SOPCategory{
		RestaurantID: restaurantID,
		Name:         name,
		NameFr:       nameFr,
		SortOrder:    sortOrder,
		IsActive:     active,
	}
	require.NoError(t, repo.Create(category))
	return category
}

func TestCategoryRepository_FindWithFilter_Pagination(t *testing.T) {
	repo, _ := setupCategoryRepoTest(t)

	for i := 1; i <= 5; i++ {
		createCategory(t, repo, 1, "Category "+string(rune('A'+i-1)), "Catégorie "+string(rune('A'+i-1)), i, true)
	}
	// A different restaurant's category must never appear
	createCategory(t, repo, 2, "Other", "Autre", 1, true)

	categories, total, err := repo.FindWithFilter(CategoryFilter{
		RestaurantID:  1,
		ActiveOnly:    true,
		SortAscending: true,
		Limit:         2,
		Offset:        2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, categories, 2)
	assert.Equal(t, 3, categories[0].SortOrder)
	assert.Equal(t, 4, categories[1].SortOrder)
}

func TestCategoryRepository_FindWithFilter_ActiveOnly(t *testing.T) {
	repo, _ := setupCategoryRepoTest(t)

	createCategory(t, repo, 1, "Kitchen", "Cuisine", 1, true)
	createCategory(t, repo, 1, "Retired", "Retraité", 2, false)

	active, total, err := repo.FindWithFilter(CategoryFilter{RestaurantID: 1, ActiveOnly: true, SortAscending: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, active, 1)

	all, total, err := repo.FindWithFilter(CategoryFilter{RestaurantID: 1, SortAscending: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestCategoryRepository_FindWithFilter_SortWhitelist(t *testing.T) {
	repo, _ := setupCategoryRepoTest(t)

	createCategory(t, repo, 1, "Bar", "Bar", 2, true)
	createCategory(t, repo, 1, "Alpha", "Alpha", 1, true)

	// Unknown sort column falls back to sort_order
	categories, _, err := repo.FindWithFilter(CategoryFilter{
		RestaurantID:  1,
		SortBy:        "1; DROP TABLE sop_categories",
		SortAscending: true,
	})
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Alpha", categories[0].Name)

	byName, _, err := repo.FindWithFilter(CategoryFilter{
		RestaurantID:  1,
		SortBy:        "name",
		SortAscending: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bar", byName[0].Name)
}

func TestCategoryRepository_ExistsByName(t *testing.T) {
	repo, _ := setupCategoryRepoTest(t)

	createCategory(t, repo, 1, "Kitchen Safety", "Sécurité en cuisine", 1, true)
	createCategory(t, repo, 1, "Old Procedures", "Anciennes procédures", 2, false)

	tests := []struct {
		name   string
		en     string
		fr     string
		expect bool
	}{
		{"English name taken", "Kitchen Safety", "Autre", true},
		{"French name taken", "Other", "Sécurité en cuisine", true},
		{"Both names free", "Closing Duties", "Tâches de fermeture", false},
		{"Inactive rows do not block reuse", "Old Procedures", "Anciennes procédures", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := repo.ExistsByName(1, tt.en, tt.fr)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, exists)
		})
	}

	// Same name under another restaurant does not conflict
	exists, err := repo.ExistsByName(2, "Kitchen Safety", "Sécurité en cuisine")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepository_ExistsBySortOrder(t *testing.T) {
	repo, _ := setupCategoryRepoTest(t)

	createCategory(t, repo, 1, "Kitchen", "Cuisine", 3, true)
	createCategory(t, repo, 1, "Retired", "Retraité", 7, false)

	exists, err := repo.ExistsBySortOrder(1, 3)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySortOrder(1, 7)
	require.NoError(t, err)
	assert.False(t, exists, "inactive categories release their sort order")

	exists, err = repo.ExistsBySortOrder(2, 3)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepository_Stats(t *testing.T) {
	repo, testDB := setupCategoryRepoTest(t)

	category := createCategory(t, repo, 1, "Kitchen", "Cuisine", 1, true)

	require.NoError(t, testDB.Create(&model.SOPDocument{
		RestaurantID: 1, CategoryID: category.ID,
		Title: "Knife handling", TitleFr: "Manipulation des couteaux",
		Content: "c", ContentFr: "c", IsActive: true,
	}).Error)
	require.NoError(t, testDB.Create(&model.SOPDocument{
		RestaurantID: 1, CategoryID: category.ID,
		Title: "Retired doc", TitleFr: "Document retiré",
		Content: "c", ContentFr: "c", IsActive: false,
	}).Error)

	require.NoError(t, testDB.Create(&model.UserProgress{
		RestaurantID: 1, UserID: 1, DocumentID: 1, CategoryID: category.ID,
		Status: model.ProgressCompleted, ProgressPercent: 100,
	}).Error)
	require.NoError(t, testDB.Create(&model.UserProgress{
		RestaurantID: 1, UserID: 2, DocumentID: 1, CategoryID: category.ID,
		Status: model.ProgressPendingReview, ProgressPercent: 100,
	}).Error)
	require.NoError(t, testDB.Create(&model.UserProgress{
		RestaurantID: 1, UserID: 3, DocumentID: 1, CategoryID: category.ID,
		Status: model.ProgressInProgress, ProgressPercent: 40,
	}).Error)

	stats, err := repo.Stats(category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.DocumentCount, "inactive documents are not counted")
	assert.Equal(t, int64(1), stats.CompletedCount)
	assert.Equal(t, int64(1), stats.PendingReviews)
}
