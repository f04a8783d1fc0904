// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newspulse/backend/internal/api"
	"github.com/newspulse/backend/internal/api/handlers"
	"github.com/newspulse/backend/internal/config"
	"github.com/newspulse/backend/internal/database"
	"github.com/newspulse/backend/internal/health"
	"github.com/newspulse/backend/internal/repository"
	"github.com/newspulse/backend/internal/scraper"
	"github.com/newspulse/backend/internal/services"
	"github.com/newspulse/backend/pkg/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting NewsPulse backend...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.ValidateFeed(); err != nil {
		logger.WithError(err).Fatal("Feed configuration validation failed")
	}

	// Initialize database and cache
	dbConfig := &database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Database migration failed")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)
	cache := database.NewCache(dbManager.Redis, logger)

	// Core services
	admission := services.NewAdmissionController(repoManager.User, cfg.RateLimit.Ceiling, logger)
	searchService := services.NewSearchService(admission, repoManager.Article, cache, cfg.Cache.TTL, logger)

	// Ingestion
	feedClient := scraper.NewClient(cfg.Feed.BaseURL, cfg.Feed.APIKey, logger)
	var enricher *scraper.Enricher
	if cfg.Feed.Enrich {
		enricher = scraper.NewEnricher(logger)
	}
	ingestService := scraper.NewService(feedClient, repoManager.Article, enricher, cache, cfg.Feed.Category, cfg.Feed.Country, logger)
	scheduler := scraper.NewScheduler(ingestService, cfg.Feed.Interval, logger)
	if err := scheduler.Start(); err != nil {
		logger.WithError(err).Fatal("Failed to start ingest scheduler")
	}

	// HTTP transport
	checker := health.NewChecker(dbManager, cfg.Feed.BaseURL, logger)
	searchHandler := handlers.NewSearchHandler(searchService, logger)
	healthHandler := handlers.NewHealthHandler(checker, logger)

	router := api.NewRouter(searchHandler, healthHandler)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown failed")
	}

	logger.Info("Shutdown complete")
}
