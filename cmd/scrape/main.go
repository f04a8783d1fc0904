// cmd/scrape/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/newspulse/backend/internal/config"
	"github.com/newspulse/backend/internal/database"
	"github.com/newspulse/backend/internal/repository"
	"github.com/newspulse/backend/internal/scraper"
	"github.com/newspulse/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

// One-shot ingest run, useful for seeding a fresh database or trying out
// feed filters without waiting on the scheduler.

var (
	category = flag.String("category", "", "Feed category filter (default: general when no country given)")
	country  = flag.String("country", "", "Feed country filter")
	enrich   = flag.Bool("enrich", false, "Scrape article pages for full content")
	dryRun   = flag.Bool("dry-run", false, "Fetch and print headlines without storing them")
	verbose  = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.ValidateFeed(); err != nil {
		logger.WithError(err).Fatal("Feed configuration validation failed")
	}

	feedClient := scraper.NewClient(cfg.Feed.BaseURL, cfg.Feed.APIKey, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *dryRun {
		articles, err := feedClient.TopHeadlinesWithRetry(ctx, *category, *country)
		if err != nil {
			logger.WithError(err).Fatal("Feed fetch failed")
		}
		for _, article := range articles {
			logger.WithFields(logrus.Fields{
				"title":        article.Title,
				"url":          article.URL,
				"published_at": article.PublishedAt,
			}).Info("DRY RUN: would store article")
		}
		logger.WithField("count", len(articles)).Info("Dry run completed")
		return
	}

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

	var enricher *scraper.Enricher
	if *enrich {
		enricher = scraper.NewEnricher(logger)
	}

	ingestService := scraper.NewService(feedClient, repoManager.Article, enricher, cache, *category, *country, logger)
	if err := ingestService.RunOnce(ctx); err != nil {
		logger.WithError(err).Fatal("Ingest run failed")
	}

	logger.Info("Ingest run completed successfully")
}
