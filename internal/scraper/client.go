package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// Client talks to a NewsAPI-compatible top-headlines endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger

	// Retry is applied by TopHeadlinesWithRetry. Exposed so tests can
	// shrink the delay.
	Retry RetryConfig
}

func NewClient(baseURL, apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
		Retry:  DefaultRetryConfig(),
	}
}

// FeedArticle is the upstream article record. URL doubles as the stored
// article id.
type FeedArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type headlinesResponse struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []FeedArticle `json:"articles"`
}

// TopHeadlines fetches one page of headlines. When neither category nor
// country is given, category falls back to "general" so the request always
// carries at least one filter.
func (c *Client) TopHeadlines(ctx context.Context, category, country string) ([]FeedArticle, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("language", "en")
	if category != "" {
		params.Set("category", category)
	}
	if country != "" {
		params.Set("country", country)
	}
	if category == "" && country == "" {
		params.Set("category", "general")
	}

	requestURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"category": category,
		"country":  country,
	}).Debug("Fetching top headlines")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var headlines headlinesResponse
	if err := json.Unmarshal(body, &headlines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status":        headlines.Status,
		"total_results": headlines.TotalResults,
		"returned":      len(headlines.Articles),
	}).Debug("Feed response received")

	return headlines.Articles, nil
}
