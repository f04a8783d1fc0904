package ranking

import (
	"fmt"
	"sort"

	"github.com/newspulse/backend/internal/models"
)

// Rank scores every article title against the query, keeps articles at or
// above the threshold, sorts them by descending score and truncates to topK.
// Ties keep the original scan order. The input slice is never mutated; an
// empty corpus yields an empty result, leaving the fallback to the caller.
func Rank(articles []models.Article, query string, topK int, threshold float64) ([]models.Article, error) {
	if len(articles) == 0 {
		return []models.Article{}, nil
	}

	titles := make([]string, len(articles))
	for i, article := range articles {
		titles[i] = article.Title
	}

	scores, err := ScoreTitles(titles, query)
	if err != nil {
		return nil, fmt.Errorf("failed to score articles: %w", err)
	}

	ranked := make([]models.Article, 0, len(articles))
	for i, article := range articles {
		if scores[i] >= threshold {
			article.SimilarityScore = scores[i]
			ranked = append(ranked, article)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SimilarityScore > ranked[j].SimilarityScore
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}
