package handlers

import (
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newspulse/backend/internal/health"
	"github.com/newspulse/backend/internal/models"
	"github.com/sirupsen/logrus"
)

type HealthHandler struct {
	checker *health.Checker
	logger  *logrus.Logger
}

func NewHealthHandler(checker *health.Checker, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		logger:  logger,
	}
}

// HandleHealth is the liveness probe. The random float carries no meaning
// beyond showing the process is actually answering, not serving a cached
// body.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	h.logger.Debug("Health check endpoint hit")
	c.JSON(http.StatusOK, models.HealthResponse{
		Status: "ok",
		Random: rand.Float64(),
	})
}

// HandleServices reports per-dependency health.
func (h *HealthHandler) HandleServices(c *gin.Context) {
	overall := h.checker.CheckAll()

	code := http.StatusOK
	if overall.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, overall)
}
