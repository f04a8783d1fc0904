package scraper

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StopWaitsForImmediateFirstCycle(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(headlinesResponse{
			Status:   "ok",
			Articles: []FeedArticle{{URL: "https://example.com/a", Title: "headline"}},
		})
	}))
	defer server.Close()

	repo := &captureRepo{}
	client := NewClient(server.URL, "test-key", quietLogger())
	service := NewService(client, repo, nil, nil, "", "", quietLogger())
	scheduler := NewScheduler(service, time.Hour, quietLogger())

	require.NoError(t, scheduler.Start())

	// Stop races the first cycle, which is still blocked on the feed. It
	// must not return until that cycle has finished storing.
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	scheduler.Stop()

	assert.Len(t, repo.stored, 1)
}
