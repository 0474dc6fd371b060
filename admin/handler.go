// Package admin provides the JSON management API: a programmatic consumer
// of the registries for scenario management and inspection (e.g. by a
// scenario-builder front-end).
package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"renkon/endpoint"
	"renkon/metrics"
	"renkon/recorder"
	"renkon/scenario"
)

// Handler holds dependencies for the admin API
type Handler struct {
	endpoints *endpoint.Registry
	scenarios *scenario.Registry
	journal   *recorder.Recorder
	stats     *metrics.Store
	startTime time.Time
}

// New creates a new admin Handler
func New(
	endpoints *endpoint.Registry,
	scenarios *scenario.Registry,
	journal *recorder.Recorder,
	stats *metrics.Store,
) *Handler {
	return &Handler{
		endpoints: endpoints,
		scenarios: scenarios,
		journal:   journal,
		stats:     stats,
		startTime: time.Now(),
	}
}

// RegisterRoutes mounts the admin API under the given prefix
func (h *Handler) RegisterRoutes(r *gin.Engine, prefix string) {
	group := r.Group(prefix)

	group.GET("/health", h.health)
	group.GET("/endpoints", h.listEndpoints)

	group.GET("/scenarios", h.listScenarios)
	group.POST("/scenarios", h.addScenario)
	group.PUT("/scenarios/:id", h.updateScenario)
	group.DELETE("/scenarios/:id", h.removeScenario)
	group.PUT("/scenarios/:id/default", h.setDefaultScenario)

	group.GET("/requests", h.listRequests)
	group.DELETE("/requests", h.clearRequests)
	group.GET("/metrics", h.getMetrics)
}

// health reports liveness and registry sizes
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"uptime_seconds":  time.Since(h.startTime).Seconds(),
		"endpoints_count": h.endpoints.Len(),
		"scenarios_count": h.scenarios.Len(),
	})
}
