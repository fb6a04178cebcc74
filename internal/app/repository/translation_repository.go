package repository

import (
	"time"

	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TranslationRepository interface {
	FindByLocale(locale, category string, keys []string) ([]model.Translation, error)
	FindByKey(locale, key string) (*model.Translation, error)
	TrackUsage(locale, key, sessionID, context string) error
	BulkUpsert(translations []model.Translation, batchSize int) error
}

type translationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) FindByLocale(locale, category string, keys []string) ([]model.Translation, error) {
	logger.Debug("Finding translations by locale", map[string]interface{}{
		"locale":   locale,
		"category": category,
		"keys":     len(keys),
	})

	query := r.db.Model(&model.Translation{}).
		Where("locale = ?", locale)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if len(keys) > 0 {
		query = query.Where("key IN ?", keys)
	}

	var translations []model.Translation
	if err := query.Order("key ASC").Find(&translations).Error; err != nil {
		logger.Error("Failed to find translations by locale", err, map[string]interface{}{
			"locale": locale,
		})
		return nil, err
	}

	return translations, nil
}

func (r *translationRepository) FindByKey(locale, key string) (*model.Translation, error) {
	var translation model.Translation
	err := r.db.Where("locale = ? AND key = ?", locale, key).
		First(&translation).Error
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

// TrackUsage bumps the per-session display counter for a key, inserting the
// row on first use. Single upsert, no read-modify-write.
func (r *translationRepository) TrackUsage(locale, key, sessionID, context string) error {
	now := time.Now()
	usage := model.TranslationUsage{
		Locale:     locale,
		Key:        key,
		SessionID:  sessionID,
		Context:    context,
		UsedCount:  1,
		LastUsedAt: now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "locale"}, {Name: "key"}, {Name: "session_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"used_count":   gorm.Expr("used_count + 1"),
			"last_used_at": now,
		}),
	}).Create(&usage).Error
	if err != nil {
		logger.Error("Failed to track translation usage", err, map[string]interface{}{
			"locale": locale,
			"key":    key,
		})
		return err
	}
	return nil
}

// BulkUpsert imports translations in batches, replacing existing values for
// the same (locale, key). Used by the XLSX seed tool.
func (r *translationRepository) BulkUpsert(translations []model.Translation, batchSize int) error {
	if len(translations) == 0 {
		return nil
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "locale"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "category", "context", "updated_at"}),
	}).CreateInBatches(translations, batchSize).Error
	if err != nil {
		logger.Error("Failed to bulk upsert translations", err, map[string]interface{}{
			"count": len(translations),
		})
		return err
	}

	logger.Info("Translations imported", map[string]interface{}{
		"count": len(translations),
	})
	return nil
}
