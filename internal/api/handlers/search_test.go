package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/newspulse/backend/internal/models"
	"github.com/newspulse/backend/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubArticleRepo struct {
	articles []models.Article
	err      error
}

var _ models.ArticleRepository = (*stubArticleRepo)(nil)

func (r *stubArticleRepo) UpsertBatch(articles []models.Article) error { return r.err }

func (r *stubArticleRepo) GetAll() ([]models.Article, error) {
	return r.articles, r.err
}

func (r *stubArticleRepo) GetMostRecent(limit int) ([]models.Article, error) {
	if r.err != nil {
		return nil, r.err
	}
	if limit > len(r.articles) {
		limit = len(r.articles)
	}
	return r.articles[:limit], nil
}

func (r *stubArticleRepo) Count() (int64, error) { return int64(len(r.articles)), r.err }

type stubUserRepo struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

var _ models.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{counts: make(map[string]int)}
}

func (r *stubUserRepo) GetRequestCount(id string) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, false, r.err
	}
	count, ok := r.counts[id]
	return count, ok, nil
}

func (r *stubUserRepo) Create(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.counts[id] = 1
	return nil
}

func (r *stubUserRepo) IncrementRequestCount(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.counts[id]++
	return nil
}

func setupSearchRouter(t *testing.T, articles *stubArticleRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	admission := services.NewAdmissionController(newStubUserRepo(), 5, logger)
	searchService := services.NewSearchService(admission, articles, nil, 0, logger)
	handler := NewSearchHandler(searchService, logger)

	router := gin.New()
	router.POST("/search", handler.HandleSearch)
	return router
}

func postSearch(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleSearchReturnsRankedResults(t *testing.T) {
	router := setupSearchRouter(t, &stubArticleRepo{articles: []models.Article{
		{ID: "1", Title: "Stock market closes at record high", PublishedAt: "2026-08-28T09:00:00Z"},
		{ID: "2", Title: "Local team wins championship", PublishedAt: "2026-08-28T10:00:00Z"},
	}})

	w := postSearch(t, router, `{"user_id":"u1","text":"stock market record high","threshold":0.3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "1", resp.Results[0].ID)
	assert.Greater(t, resp.Results[0].SimilarityScore, 0.3)
	assert.GreaterOrEqual(t, resp.InferenceTime, 0.0)
}

func TestHandleSearchNoMatchFallsBackToHighlights(t *testing.T) {
	router := setupSearchRouter(t, &stubArticleRepo{articles: []models.Article{
		{ID: "1", Title: "Local team wins championship", PublishedAt: "2026-08-28T10:00:00Z"},
		{ID: "2", Title: "City council approves budget", PublishedAt: "2026-08-28T09:00:00Z"},
	}})

	w := postSearch(t, router, `{"user_id":"u1","text":"quantum chromodynamics"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.NoMatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No articles found for your search.", resp.Message)
	assert.Len(t, resp.HighlightedNews, 2)
	assert.Equal(t, "Local team wins championship", resp.HighlightedNews[0].Title)
}

func TestHandleSearchAppliesDefaults(t *testing.T) {
	// Seven identical titles: with default top_k=5 only five come back, and
	// default threshold 0.7 admits the perfect matches.
	articles := make([]models.Article, 7)
	for i := range articles {
		articles[i] = models.Article{ID: fmt.Sprintf("%d", i), Title: "exact match title"}
	}
	router := setupSearchRouter(t, &stubArticleRepo{articles: articles})

	w := postSearch(t, router, `{"user_id":"u1","text":"exact match title"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 5)
}

func TestHandleSearchValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing user_id", `{"text":"anything"}`},
		{"top_k zero", `{"user_id":"u1","text":"anything","top_k":0}`},
		{"top_k too large", `{"user_id":"u1","text":"anything","top_k":101}`},
		{"threshold negative", `{"user_id":"u1","text":"anything","threshold":-0.1}`},
		{"threshold above one", `{"user_id":"u1","text":"anything","threshold":1.1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupSearchRouter(t, &stubArticleRepo{})
			w := postSearch(t, router, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["description"])
		})
	}
}

func TestHandleSearchMalformedBody(t *testing.T) {
	router := setupSearchRouter(t, &stubArticleRepo{})
	w := postSearch(t, router, `{"user_id": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestHandleSearchRateLimitAsBadRequest(t *testing.T) {
	router := setupSearchRouter(t, &stubArticleRepo{articles: []models.Article{
		{ID: "1", Title: "some news"},
	}})

	for i := 0; i < 5; i++ {
		w := postSearch(t, router, `{"user_id":"limited","text":"some news"}`)
		require.Equal(t, http.StatusOK, w.Code, "request %d should be admitted", i+1)
	}

	w := postSearch(t, router, `{"user_id":"limited","text":"some news"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, services.ErrRateLimitExceeded.Error(), body["description"])
}

func TestHandleSearchInternalError(t *testing.T) {
	router := setupSearchRouter(t, &stubArticleRepo{err: errors.New("connection reset")})

	w := postSearch(t, router, `{"user_id":"u1","text":"anything"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
	// The storage failure detail must not leak to the client.
	assert.NotContains(t, w.Body.String(), "connection reset")
}
