package db

import (
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/pkg/logger"
	"github.com/tablehost/sop-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Restaurant{},
		&model.User{},
		&model.SOPCategory{},
		&model.SOPDocument{},
		&model.UserProgress{},
		&model.Translation{},
		&model.TranslationUsage{},
		&model.AuditLog{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the bootstrap rows a fresh install needs: one restaurant, one
// admin account, and the base UI translations for both locales.
func Seed() error {
	logger.Info("Seeding initial data...")

	if err := seedRestaurant(); err != nil {
		logger.Error("Failed to seed restaurant", err)
		return err
	}
	if err := seedBaseTranslations(); err != nil {
		logger.Error("Failed to seed base translations", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedRestaurant() error {
	var count int64
	if err := DB.Model(&model.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Restaurant already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	restaurant := model.Restaurant{Name: "Main Location"}
	if err := DB.Create(&restaurant).Error; err != nil {
		return err
	}

	hash, err := util.HashPassword("change-me")
	if err != nil {
		return err
	}
	admin := model.User{
		RestaurantID: restaurant.ID,
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded default restaurant and admin account", map[string]interface{}{
		"restaurant_id": restaurant.ID,
	})
	return nil
}

func seedBaseTranslations() error {
	var count int64
	if err := DB.Model(&model.Translation{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	base := []model.Translation{
		{Locale: "en", Key: "common.submit", Value: "Submit", Category: "common"},
		{Locale: "fr", Key: "common.submit", Value: "Soumettre", Category: "common"},
		{Locale: "en", Key: "common.cancel", Value: "Cancel", Category: "common"},
		{Locale: "fr", Key: "common.cancel", Value: "Annuler", Category: "common"},
		{Locale: "en", Key: "sop.wizard.step", Value: "Step {current} of {total}", Category: "sop"},
		{Locale: "fr", Key: "sop.wizard.step", Value: "Étape {current} sur {total}", Category: "sop"},
		{Locale: "en", Key: "sop.wizard.complete", Value: "Procedure complete", Category: "sop"},
		{Locale: "fr", Key: "sop.wizard.complete", Value: "Procédure terminée", Category: "sop"},
	}

	if err := DB.Create(&base).Error; err != nil {
		return err
	}

	logger.Info("Seeded base translations", map[string]interface{}{
		"count": len(base),
	})
	return nil
}
