package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/festra/event_registration_app/internal/core/services"
	"github.com/festra/event_registration_app/internal/handlers"
	"github.com/festra/event_registration_app/internal/middleware"
	"github.com/festra/event_registration_app/internal/platform/config"
	"github.com/festra/event_registration_app/internal/repositories/database/mongodb"
	"github.com/festra/event_registration_app/internal/utils"
	"github.com/festra/event_registration_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Event Registration API
// @version 1.0
// @description Backend for multi-tenant event registration: auth, email verification, event signup with capacity guarding, staff administration.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Browser clients use the auth cookies instead.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to MongoDB and create the indexes the invariants rely on
	// (unique email above all)
	client, db, err := database.NewMongoDatabase(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseMongoClient(client)
	logger.Info("MongoDB connection established.")

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		logger.Error("Failed to ensure indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories, mailer and services
	repos := mongodb.NewRepositoryProvider(db)
	mailer := utils.NewMailer(cfg.SendgridAPIKey, cfg.MailFromName, cfg.MailFromEmail, logger)
	serviceContainer := services.NewServiceContainer(cfg, *repos, mailer)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
