package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
	}
}

// TopHeadlinesWithRetry retries the fetch on every failure with a fixed
// delay between attempts, giving up after MaxAttempts for this cycle.
func (c *Client) TopHeadlinesWithRetry(ctx context.Context, category, country string) ([]FeedArticle, error) {
	var lastErr error

	for attempt := 1; attempt <= c.Retry.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		articles, err := c.TopHeadlines(ctx, category, country)
		if err == nil {
			return articles, nil
		}
		lastErr = err

		if attempt == c.Retry.MaxAttempts {
			break
		}

		c.logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   c.Retry.Delay,
			"error":   err.Error(),
		}).Warn("Retrying feed fetch")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Retry.Delay):
		}
	}

	return nil, fmt.Errorf("feed fetch failed after %d attempts: %w", c.Retry.MaxAttempts, lastErr)
}
