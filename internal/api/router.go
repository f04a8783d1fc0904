package api

import (
	"github.com/gin-gonic/gin"
	"github.com/newspulse/backend/internal/api/handlers"
	"github.com/newspulse/backend/internal/middleware"
)

func NewRouter(searchHandler *handlers.SearchHandler, healthHandler *handlers.HealthHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())

	router.POST("/search", searchHandler.HandleSearch)
	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/health/services", healthHandler.HandleServices)

	return router
}
