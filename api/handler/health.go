package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sylcroad/profilescope/models"
	"github.com/sylcroad/profilescope/session"
)

// Health returns a handler for GET /api/v1/health.
//
// Reports session utilisation and degrades status when > 80% of the session
// capacity is in use.
func Health(mgr *session.Manager, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := mgr.Stats()

		status := "healthy"
		if stats.MaxSessions > 0 && stats.ActiveSessions > int(float64(stats.MaxSessions)*0.8) {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:       status,
			Uptime:       time.Since(startTime).Round(time.Second).String(),
			SessionStats: stats,
			Version:      "0.1.0",
		})
	}
}
