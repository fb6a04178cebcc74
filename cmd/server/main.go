package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tablehost/sop-backend/config"
	"github.com/tablehost/sop-backend/internal/app/controller"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/internal/app/service"
	"github.com/tablehost/sop-backend/internal/db"
	"github.com/tablehost/sop-backend/internal/middleware"
	"github.com/tablehost/sop-backend/internal/router"
	"github.com/tablehost/sop-backend/internal/scheduler"
	"github.com/tablehost/sop-backend/internal/storage"
	ws "github.com/tablehost/sop-backend/internal/websocket"
	"github.com/tablehost/sop-backend/pkg/logger"
	"github.com/tablehost/sop-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting SOP Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed base data (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis (translation cache); the server runs without it
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, translation cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	documentRepo := repository.NewDocumentRepository(db.GetDB())
	translationRepo := repository.NewTranslationRepository(db.GetDB())
	progressRepo := repository.NewProgressRepository(db.GetDB())
	auditRepo := repository.NewAuditRepository(db.GetDB())

	// Initialize websocket hub for the training dashboard
	hub := ws.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	categoryService := service.NewCategoryService(categoryRepo, auditRepo)
	documentService := service.NewDocumentService(documentRepo, categoryRepo, auditRepo)
	translationService := service.NewTranslationService(translationRepo, cfg.Cache.TranslationTTL)
	progressService := service.NewProgressService(progressRepo, documentRepo, hub)

	// Initialize S3 uploader for SOP media
	uploader, err := storage.NewS3Uploader(context.Background(), cfg.S3)
	if err != nil {
		logger.Fatal("Failed to initialize S3 uploader", err)
	}

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	categoryController := controller.NewCategoryController(categoryService)
	documentController := controller.NewDocumentController(documentService)
	translationController := controller.NewTranslationController(translationService)
	progressController := controller.NewProgressController(progressService)
	uploadController := controller.NewUploadController(uploader)
	dashboardController := controller.NewDashboardController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		categoryController,
		documentController,
		translationController,
		progressController,
		uploadController,
		dashboardController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the review-due sweep
	reviewScheduler := scheduler.NewReviewScheduler(documentRepo, cfg.Scheduler.ReviewSweepSpec)
	if err := reviewScheduler.Start(); err != nil {
		logger.Fatal("Failed to start review scheduler", err)
	}
	defer reviewScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
