package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getMetrics returns per-endpoint request statistics
func (h *Handler) getMetrics(c *gin.Context) {
	stats := h.stats.GetAll()
	c.JSON(http.StatusOK, gin.H{
		"uptime_seconds": h.stats.UptimeSeconds(),
		"endpoints":      stats,
	})
}
