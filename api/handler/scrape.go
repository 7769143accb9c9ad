package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sylcroad/profilescope/jobs"
	"github.com/sylcroad/profilescope/models"
)

// Scrape returns a handler for POST /api/v1/scrape.
//
// The job runs synchronously: the response carries the ProfileRecord (or the
// classified error), and the webhook has already received the same outcome
// by the time the response is written.
func Scrape(runner *jobs.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		platform, err := models.ParsePlatform(req.Platform)
		if err != nil {
			respondError(c, "", err)
			return
		}

		jobID := req.JobID
		if jobID == "" {
			jobID = uuid.NewString()
		}

		job := &models.ScrapeJob{
			JobID:      jobID,
			Username:   strings.TrimPrefix(strings.TrimSpace(req.Username), "@"),
			WebhookURL: req.WebhookURL,
			Platform:   platform,
		}

		record, err := runner.Run(c.Request.Context(), job)
		if err != nil {
			respondError(c, jobID, err)
			return
		}

		c.JSON(http.StatusOK, models.ScrapeResponse{
			Success: true,
			JobID:   jobID,
			Data:    record,
		})
	}
}

// respondError maps a ScrapeError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, jobID string, err error) {
	scrapeErr := models.AsScrapeError(err)
	c.JSON(mapErrorToStatus(scrapeErr), models.ScrapeResponse{
		Success: false,
		JobID:   jobID,
		Error:   scrapeErr.ToDetail(),
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeNavigation:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigationFailed, models.ErrCodeSelector, models.ErrCodeExtraction:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
