// internal/scraper/enricher.go
package scraper

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

const (
	// Paragraphs shorter than this are navigation chrome, bylines or ads.
	minParagraphLength = 80

	// maxContentLength caps how much scraped text replaces the feed's
	// truncated content field.
	maxContentLength = 10000
)

// Enricher fetches the article page itself to recover the full body text,
// since the feed truncates content to a couple hundred characters.
type Enricher struct {
	collector *colly.Collector
	logger    *logrus.Logger
}

func NewEnricher(logger *logrus.Logger) *Enricher {
	c := colly.NewCollector(
		colly.UserAgent("NewsPulse-Bot/1.0"),
	)
	c.SetRequestTimeout(15 * time.Second)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		Delay:       500 * time.Millisecond,
	}); err != nil {
		logger.WithError(err).Warn("Failed to apply scrape rate limit")
	}

	return &Enricher{
		collector: c,
		logger:    logger,
	}
}

// ArticleContent scrapes pageURL and returns the concatenated body
// paragraphs. Callers keep the feed content when this fails.
func (e *Enricher) ArticleContent(pageURL string) (string, error) {
	collector := e.collector.Clone()

	var paragraphs []string
	var visitErr error

	collector.OnHTML("p", func(el *colly.HTMLElement) {
		text := strings.TrimSpace(el.Text)
		if len(text) >= minParagraphLength {
			paragraphs = append(paragraphs, text)
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		visitErr = err
	})

	if err := collector.Visit(pageURL); err != nil {
		return "", fmt.Errorf("failed to visit article page: %w", err)
	}
	collector.Wait()

	if visitErr != nil {
		return "", fmt.Errorf("failed to fetch article page: %w", visitErr)
	}

	content := strings.Join(paragraphs, "\n\n")
	if content == "" {
		return "", fmt.Errorf("no readable paragraphs on page")
	}
	if len(content) > maxContentLength {
		cut := maxContentLength
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
	}

	e.logger.WithFields(logrus.Fields{
		"url":            pageURL,
		"paragraphs":     len(paragraphs),
		"content_length": len(content),
	}).Debug("Article content enriched")

	return content, nil
}
