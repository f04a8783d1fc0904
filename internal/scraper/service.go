package scraper

import (
	"context"
	"fmt"

	"github.com/newspulse/backend/internal/database"
	"github.com/newspulse/backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Service runs one ingest cycle: fetch headlines, optionally enrich their
// content, and upsert the batch by article id. Failures are contained to the
// cycle; the scheduler calls RunOnce again on the next tick regardless.
type Service struct {
	client    *Client
	articles  models.ArticleRepository
	enricher  *Enricher
	cache     *database.Cache
	sanitizer *Sanitizer
	category  string
	country   string
	logger    *logrus.Logger
}

func NewService(
	client *Client,
	articles models.ArticleRepository,
	enricher *Enricher,
	cache *database.Cache,
	category, country string,
	logger *logrus.Logger,
) *Service {
	return &Service{
		client:    client,
		articles:  articles,
		enricher:  enricher,
		cache:     cache,
		sanitizer: NewSanitizer(),
		category:  category,
		country:   country,
		logger:    logger,
	}
}

func (s *Service) RunOnce(ctx context.Context) error {
	s.logger.Info("Starting news ingest cycle...")

	feedArticles, err := s.client.TopHeadlinesWithRetry(ctx, s.category, s.country)
	if err != nil {
		return fmt.Errorf("upstream fetch failed: %w", err)
	}

	if len(feedArticles) == 0 {
		s.logger.Warn("No articles found in the feed response")
		return nil
	}

	articles := make([]models.Article, 0, len(feedArticles))
	for _, feedArticle := range feedArticles {
		if feedArticle.URL == "" {
			continue
		}
		article := models.Article{
			ID:          feedArticle.URL,
			Title:       s.sanitizer.CleanTitle(feedArticle.Title),
			Content:     s.sanitizer.CleanContent(feedArticle.Content),
			PublishedAt: feedArticle.PublishedAt,
		}
		if s.enricher != nil {
			if content, err := s.enricher.ArticleContent(article.ID); err == nil {
				article.Content = s.sanitizer.CleanContent(content)
			} else {
				s.logger.WithError(err).WithField("url", article.ID).Debug("Keeping feed content")
			}
		}
		articles = append(articles, article)
	}

	if err := s.articles.UpsertBatch(articles); err != nil {
		return fmt.Errorf("failed to store articles: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateHighlights(ctx); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate highlights cache")
		}
	}

	s.logger.WithField("count", len(articles)).Info("Ingest cycle completed")
	return nil
}
