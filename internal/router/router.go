package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/tablehost/sop-backend/config"
	"github.com/tablehost/sop-backend/internal/app/controller"
	"github.com/tablehost/sop-backend/internal/errors"
	"github.com/tablehost/sop-backend/internal/middleware"
	"github.com/tablehost/sop-backend/pkg/logger"
)

type Router struct {
	authController        *controller.AuthController
	categoryController    *controller.CategoryController
	documentController    *controller.DocumentController
	translationController *controller.TranslationController
	progressController    *controller.ProgressController
	uploadController      *controller.UploadController
	dashboardController   *controller.DashboardController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	documentController *controller.DocumentController,
	translationController *controller.TranslationController,
	progressController *controller.ProgressController,
	uploadController *controller.UploadController,
	dashboardController *controller.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:        authController,
		categoryController:    categoryController,
		documentController:    documentController,
		translationController: translationController,
		progressController:    progressController,
		uploadController:      uploadController,
		dashboardController:   dashboardController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	// Panics surface as the standard error envelope, never an empty 500
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered in handler", fmt.Errorf("%v", recovered), map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		errors.Internal(c, "")
		c.Abort()
	}))
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "SOP backend is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
		}

		sop := api.Group("/sop")
		sop.Use(r.authMiddleware.Authenticate())
		{
			categories := sop.Group("/categories")
			{
				categories.GET("", r.categoryController.ListCategories)
				categories.POST("",
					r.authMiddleware.RequireRole("manager", "admin"),
					r.categoryController.CreateCategory,
				)
			}

			documents := sop.Group("/documents")
			{
				documents.GET("", r.documentController.ListDocuments)
				documents.GET("/:id", r.documentController.GetDocument)
				documents.POST("",
					r.authMiddleware.RequireRole("manager", "admin"),
					r.documentController.CreateDocument,
				)
			}

			progress := sop.Group("/progress")
			{
				progress.POST("", r.progressController.RecordProgress)
				progress.GET("/summary", r.progressController.GetSummary)
			}
		}

		translations := api.Group("/translations")
		{
			translations.POST("/usage", r.translationController.TrackUsage)
			translations.GET("/:locale", r.translationController.GetTranslations)
			translations.GET("/:locale/key/*keyPath", r.translationController.GetTranslationByKey)
		}

		uploads := api.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/presign", r.uploadController.PresignUpload)
		}
	}

	// Editing and deletion go through the authoring desktop app, never the
	// tablet API. The 405 is unconditional, so these bypass authentication.
	for _, path := range []string{
		"/api/sop/categories",
		"/api/sop/categories/:id",
		"/api/sop/documents",
		"/api/sop/documents/:id",
	} {
		router.PUT(path, errors.MethodNotAllowed)
		router.DELETE(path, errors.MethodNotAllowed)
		router.PATCH(path, errors.MethodNotAllowed)
	}

	router.GET("/ws/dashboard",
		r.authMiddleware.Authenticate(),
		r.dashboardController.WebSocketHandler,
	)

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, If-None-Match, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Cache-Status, X-Request-ID, X-Response-Time, ETag")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
