// internal/api/handlers/search.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newspulse/backend/internal/models"
	"github.com/newspulse/backend/internal/services"
	"github.com/newspulse/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	defaultTopK      = 5
	defaultThreshold = 0.7

	noMatchMessage = "No articles found for your search."
)

type SearchHandler struct {
	searchService *services.SearchService
	logger        *logrus.Logger
}

func NewSearchHandler(searchService *services.SearchService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// HandleSearch processes search requests
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid search request")
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	topK := defaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	threshold := defaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	h.logger.WithFields(logrus.Fields{
		"user_id":   req.UserID,
		"query":     req.Text,
		"top_k":     topK,
		"threshold": threshold,
	}).Info("Processing search request")

	outcome, err := h.searchService.Search(c.Request.Context(), req.UserID, req.Text, topK, threshold)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if outcome.NoMatch {
		c.JSON(http.StatusOK, models.NoMatchResponse{
			Message:         noMatchMessage,
			HighlightedNews: outcome.Highlights,
		})
		return
	}

	c.JSON(http.StatusOK, models.SearchResponse{
		Results:       outcome.Results,
		InferenceTime: outcome.InferenceTime,
	})
}

func (h *SearchHandler) respondError(c *gin.Context, err error) {
	var invalid *services.InvalidParameterError

	switch {
	case errors.As(err, &invalid):
		utils.ErrorResponse(c, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, services.ErrRateLimitExceeded):
		// 400 rather than 429; existing clients key off the 400.
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.WithError(err).Error("Search failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
