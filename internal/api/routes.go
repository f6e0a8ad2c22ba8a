package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, gatherer prometheus.Gatherer) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		match := v1.Group("/match")
		{
			match.POST("", handler.Match)          // POST /api/v1/match
			match.POST("/top", handler.TopMatches) // POST /api/v1/match/top
		}

		v1.POST("/resolve", handler.Resolve)          // POST /api/v1/resolve
		v1.GET("/categories", handler.ListCategories) // GET /api/v1/categories
	}
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ReadyCheck handles GET /ready. The service is ready once the matcher is
// wired; it has no warm-up dependencies of its own.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if h.matcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
