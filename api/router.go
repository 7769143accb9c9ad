package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sylcroad/profilescope/api/handler"
	"github.com/sylcroad/profilescope/api/middleware"
	"github.com/sylcroad/profilescope/config"
	"github.com/sylcroad/profilescope/jobs"
	"github.com/sylcroad/profilescope/session"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(runner *jobs.Runner, mgr *session.Manager, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health is unauthenticated.
	v1.GET("/health", handler.Health(mgr, startTime))

	// Protected group: auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/scrape", handler.Scrape(runner))

	return r
}
