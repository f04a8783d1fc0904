package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreTitles_SharedVocabulary(t *testing.T) {
	titles := []string{
		"Stock market rallies today",
		"Local sports team wins championship",
	}

	scores, err := ScoreTitles(titles, "stock market")
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.Greater(t, scores[0], 0.0, "overlapping title should score above zero")
	assert.Equal(t, 0.0, scores[1], "disjoint title should score zero")
	assert.Greater(t, scores[0], scores[1])
}

func TestScoreTitles_EmptyCorpus(t *testing.T) {
	scores, err := ScoreTitles(nil, "anything")
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestScoreTitles_EmptyTitle(t *testing.T) {
	scores, err := ScoreTitles([]string{"", "stock market news"}, "stock market")
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.Equal(t, 0.0, scores[0])
	assert.Greater(t, scores[1], 0.0)
}

func TestScoreTitles_DegenerateQuery(t *testing.T) {
	for _, query := range []string{"", "   ", "a !!"} {
		scores, err := ScoreTitles([]string{"stock market news", ""}, query)
		require.NoError(t, err)
		for i, score := range scores {
			assert.False(t, math.IsNaN(score), "score %d must never be NaN", i)
			assert.Equal(t, 0.0, score)
		}
	}
}

func TestScoreTitles_ScoresWithinUnitInterval(t *testing.T) {
	titles := []string{
		"stock market",
		"stock market stock market",
		"the stock market rallies as bond market slides",
		"weather forecast sunny",
	}

	scores, err := ScoreTitles(titles, "stock market")
	require.NoError(t, err)

	for i, score := range scores {
		assert.GreaterOrEqual(t, score, 0.0, "title %d", i)
		assert.LessOrEqual(t, score, 1.0, "title %d", i)
	}

	// An exact vocabulary match is a perfect cosine.
	assert.InDelta(t, 1.0, scores[0], 1e-12)
}

func TestScoreTitles_Deterministic(t *testing.T) {
	titles := []string{
		"Stock market rallies today",
		"Central bank raises interest rates again",
		"Local sports team wins championship",
		"Markets react to central bank decision",
	}

	first, err := ScoreTitles(titles, "central bank market decision")
	require.NoError(t, err)

	for run := 0; run < 20; run++ {
		again, err := ScoreTitles(titles, "central bank market decision")
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for i := range first {
			assert.Equal(t, math.Float64bits(first[i]), math.Float64bits(again[i]),
				"run %d title %d must be bit-identical", run, i)
		}
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"stock", "market"}, tokenize("Stock market!"))
	assert.Equal(t, []string{"covid", "19", "update"}, tokenize("COVID-19 update"))
	assert.Empty(t, tokenize("a b c"), "single-character tokens are dropped")
	assert.Empty(t, tokenize("  \t "))
}
