package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Cache is a plain read-through JSON cache over Redis. Entries expire on
// their TTL; there is no invalidation beyond that.
type Cache struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewCache(client *redis.Client, logger *logrus.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
	}
}

// Cache key constants
const (
	SearchResultsKey = "search:results:%s"
	HighlightsKey    = "articles:highlights"
)

// CacheSearchResults caches the ranked outcome for a query fingerprint.
func (c *Cache) CacheSearchResults(ctx context.Context, fingerprint string, results interface{}, expiration time.Duration) error {
	key := fmt.Sprintf(SearchResultsKey, fingerprint)

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	return c.client.Set(ctx, key, data, expiration).Err()
}

// GetCachedSearchResults retrieves cached search results into result.
func (c *Cache) GetCachedSearchResults(ctx context.Context, fingerprint string, result interface{}) error {
	key := fmt.Sprintf(SearchResultsKey, fingerprint)

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), result)
}

// CacheHighlights caches the most-recent-articles fallback list.
func (c *Cache) CacheHighlights(ctx context.Context, highlights interface{}, expiration time.Duration) error {
	data, err := json.Marshal(highlights)
	if err != nil {
		return fmt.Errorf("failed to marshal highlights: %w", err)
	}

	return c.client.Set(ctx, HighlightsKey, data, expiration).Err()
}

// GetCachedHighlights retrieves the cached highlights list into result.
func (c *Cache) GetCachedHighlights(ctx context.Context, result interface{}) error {
	data, err := c.client.Get(ctx, HighlightsKey).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), result)
}

// InvalidateHighlights drops the highlights entry, used after an ingest cycle
// lands fresh articles.
func (c *Cache) InvalidateHighlights(ctx context.Context) error {
	return c.client.Del(ctx, HighlightsKey).Err()
}
