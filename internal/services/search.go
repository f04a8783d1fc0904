// internal/services/search.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newspulse/backend/internal/database"
	"github.com/newspulse/backend/internal/models"
	"github.com/newspulse/backend/internal/ranking"
	"github.com/newspulse/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	// TopK bounds accepted on a search request.
	MinTopK = 1
	MaxTopK = 100

	// HighlightsLimit is the size of the most-recent-articles fallback.
	HighlightsLimit = 5
)

// SearchOutcome is either a ranked result list or, when nothing qualifies, a
// no-match outcome carrying the highlights fallback. The two are distinct at
// the API boundary.
type SearchOutcome struct {
	Results       []models.Article
	Highlights    []models.HighlightedArticle
	NoMatch       bool
	InferenceTime float64
}

type SearchService struct {
	admission *AdmissionController
	articles  models.ArticleRepository
	cache     *database.Cache
	cacheTTL  time.Duration
	logger    *logrus.Logger
}

func NewSearchService(
	admission *AdmissionController,
	articles models.ArticleRepository,
	cache *database.Cache,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *SearchService {
	return &SearchService{
		admission: admission,
		articles:  articles,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Search runs the full pipeline: parameter validation, admission, corpus
// snapshot, ranking, and the highlights fallback when nothing qualifies.
// Validation and admission failures surface as InvalidParameterError and
// ErrRateLimitExceeded; anything else is an internal failure.
func (s *SearchService) Search(ctx context.Context, userID, text string, topK int, threshold float64) (*SearchOutcome, error) {
	start := time.Now()

	if err := validateParameters(userID, topK, threshold); err != nil {
		return nil, err
	}

	if err := s.admission.Admit(userID); err != nil {
		return nil, err
	}

	if cached := s.cachedResults(ctx, text, topK, threshold); len(cached) > 0 {
		s.logger.WithField("query", text).Debug("Search results served from cache")
		return &SearchOutcome{
			Results:       cached,
			InferenceTime: time.Since(start).Seconds(),
		}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	articles, err := s.articles.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read article corpus: %w", err)
	}

	ranked, err := ranking.Rank(articles, text, topK, threshold)
	if err != nil {
		return nil, err
	}

	if len(ranked) == 0 {
		highlights, err := s.highlights(ctx)
		if err != nil {
			return nil, err
		}
		return &SearchOutcome{
			Highlights:    highlights,
			NoMatch:       true,
			InferenceTime: time.Since(start).Seconds(),
		}, nil
	}

	s.storeResults(ctx, text, topK, threshold, ranked)

	s.logger.WithFields(logrus.Fields{
		"query":         text,
		"corpus_size":   len(articles),
		"results_count": len(ranked),
	}).Info("Search completed")

	return &SearchOutcome{
		Results:       ranked,
		InferenceTime: time.Since(start).Seconds(),
	}, nil
}

func validateParameters(userID string, topK int, threshold float64) error {
	if strings.TrimSpace(userID) == "" {
		return &InvalidParameterError{Field: "user_id", Reason: "is required"}
	}
	if topK < MinTopK || topK > MaxTopK {
		return &InvalidParameterError{
			Field:  "top_k",
			Reason: fmt.Sprintf("must be between %d and %d", MinTopK, MaxTopK),
		}
	}
	if threshold < 0.0 || threshold > 1.0 {
		return &InvalidParameterError{Field: "threshold", Reason: "must be between 0 and 1"}
	}
	return nil
}

// highlights returns the most recent articles as the no-match fallback,
// read-through cached until the next ingest cycle invalidates the entry. An
// empty store yields an empty list, not an error.
func (s *SearchService) highlights(ctx context.Context) ([]models.HighlightedArticle, error) {
	if s.cache != nil {
		var cached []models.HighlightedArticle
		if err := s.cache.GetCachedHighlights(ctx, &cached); err == nil {
			return cached, nil
		}
	}

	recent, err := s.articles.GetMostRecent(HighlightsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to read highlighted news: %w", err)
	}

	highlights := make([]models.HighlightedArticle, 0, len(recent))
	for _, article := range recent {
		highlights = append(highlights, models.HighlightedArticle{
			ID:          article.ID,
			Title:       article.Title,
			PublishedAt: article.PublishedAt,
		})
	}

	if s.cache != nil {
		if err := s.cache.CacheHighlights(ctx, highlights, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache highlighted news")
		}
	}
	return highlights, nil
}

// Cache plumbing. Failures degrade to a regular search and are only logged;
// the cache sits outside the admission check so denied requests never reach
// it.

func (s *SearchService) cachedResults(ctx context.Context, text string, topK int, threshold float64) []models.Article {
	if s.cache == nil {
		return nil
	}

	var cached []models.Article
	if err := s.cache.GetCachedSearchResults(ctx, cacheFingerprint(text, topK, threshold), &cached); err != nil {
		return nil
	}
	return cached
}

func (s *SearchService) storeResults(ctx context.Context, text string, topK int, threshold float64, results []models.Article) {
	if s.cache == nil {
		return
	}

	if err := s.cache.CacheSearchResults(ctx, cacheFingerprint(text, topK, threshold), results, s.cacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache search results")
	}
}

func cacheFingerprint(text string, topK int, threshold float64) string {
	return utils.MD5Hash(fmt.Sprintf("%s|%d|%g", strings.ToLower(strings.TrimSpace(text)), topK, threshold))
}
