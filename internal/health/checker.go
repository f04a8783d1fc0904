package health

import (
	"net/http"
	"time"

	"github.com/newspulse/backend/internal/database"
	"github.com/sirupsen/logrus"
)

// Checker manages health checks for the service's dependencies
type Checker struct {
	dbManager *database.Manager
	feedURL   string
	logger    *logrus.Logger
}

func NewChecker(dbManager *database.Manager, feedURL string, logger *logrus.Logger) *Checker {
	return &Checker{
		dbManager: dbManager,
		feedURL:   feedURL,
		logger:    logger,
	}
}

// ServiceHealth represents the health status of a dependency
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

// CheckPostgreSQL checks PostgreSQL database health
func (h *Checker) CheckPostgreSQL() ServiceHealth {
	start := time.Now()
	err := h.dbManager.PingDatabase()
	return h.report("postgresql", start, err)
}

// CheckRedis checks Redis cache health
func (h *Checker) CheckRedis() ServiceHealth {
	start := time.Now()
	err := h.dbManager.PingRedis()
	return h.report("redis", start, err)
}

// CheckFeed checks that the news feed endpoint is reachable. Any HTTP
// response counts as reachable; an auth rejection still proves the host is
// up.
func (h *Checker) CheckFeed() ServiceHealth {
	start := time.Now()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(h.feedURL)
	if err == nil {
		resp.Body.Close()
	}

	return h.report("feed", start, err)
}

// CheckAll runs every dependency check and aggregates the result.
func (h *Checker) CheckAll() OverallHealth {
	services := []ServiceHealth{
		h.CheckPostgreSQL(),
		h.CheckRedis(),
		h.CheckFeed(),
	}

	status := "healthy"
	for _, service := range services {
		if service.Status != "healthy" {
			status = "degraded"
			break
		}
	}

	return OverallHealth{
		Status:   status,
		Services: services,
	}
}

func (h *Checker) report(name string, start time.Time, err error) ServiceHealth {
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).WithField("service", name).Error("Health check failed")
	}

	return ServiceHealth{
		Name:         name,
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}
