// internal/ranking/scorer.go
package ranking

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// ScoreTitles computes the TF-IDF cosine similarity between the query and
// every document title. The query is folded into the corpus as one extra
// document so vocabulary and IDF weights are consistent between the two
// sides. Returned scores are in [0, 1], one per title, same order as the
// input. A degenerate vector (empty title, or query sharing no vocabulary)
// scores 0.0, never NaN.
//
// Scores are bit-reproducible for a fixed corpus and query: the vocabulary
// is sorted and all arithmetic runs over dense vectors in index order.
func ScoreTitles(titles []string, query string) ([]float64, error) {
	if len(titles) == 0 {
		return []float64{}, nil
	}

	docs := make([][]string, 0, len(titles)+1)
	for _, title := range titles {
		docs = append(docs, tokenize(title))
	}
	docs = append(docs, tokenize(query))

	vocab := buildVocabulary(docs)
	if len(vocab) == 0 {
		// Nothing tokenizable anywhere; every score is zero.
		return make([]float64, len(titles)), nil
	}

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	idf := inverseDocumentFrequencies(docs, vocab, index)

	vectors := make([][]float64, len(docs))
	for i, tokens := range docs {
		vectors[i] = vectorize(tokens, index, idf)
	}

	queryVec := vectors[len(vectors)-1]
	scores := make([]float64, len(titles))
	for i := range titles {
		score := dot(queryVec, vectors[i])
		if math.IsNaN(score) {
			return nil, fmt.Errorf("similarity for document %d is not a number", i)
		}
		scores[i] = clamp01(score)
	}

	return scores, nil
}

// tokenize lowercases the input and splits it into runs of letters and
// digits, discarding single-character tokens.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func buildVocabulary(docs [][]string) []string {
	seen := make(map[string]struct{})
	for _, tokens := range docs {
		for _, t := range tokens {
			seen[t] = struct{}{}
		}
	}

	vocab := make([]string, 0, len(seen))
	for term := range seen {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	return vocab
}

// inverseDocumentFrequencies uses the smoothed form ln((1+N)/(1+df)) + 1 so
// terms present in every document still carry a positive weight.
func inverseDocumentFrequencies(docs [][]string, vocab []string, index map[string]int) []float64 {
	df := make([]int, len(vocab))
	for _, tokens := range docs {
		inDoc := make(map[int]struct{}, len(tokens))
		for _, t := range tokens {
			inDoc[index[t]] = struct{}{}
		}
		for i := range inDoc {
			df[i]++
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, count := range df {
		idf[i] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}

// vectorize builds the L2-normalised TF-IDF vector for one document. An
// all-zero vector stays all-zero.
func vectorize(tokens []string, index map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(idf))
	for _, t := range tokens {
		vec[index[t]]++
	}

	var sumSquares float64
	for i := range vec {
		vec[i] *= idf[i]
		sumSquares += vec[i] * vec[i]
	}
	if sumSquares == 0 {
		return vec
	}

	norm := math.Sqrt(sumSquares)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
