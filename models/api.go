package models

// ScrapeRequest is the payload for POST /api/v1/scrape.
type ScrapeRequest struct {
	// Username is the profile handle. A leading "@" is tolerated and stripped.
	Username string `json:"username" binding:"required"`

	// Platform selects the extractor: "instagram" or "tiktok".
	Platform string `json:"platform" binding:"required"`

	// JobID is an opaque correlation id. Generated when omitted.
	JobID string `json:"jobId,omitempty"`

	// WebhookURL receives the terminal outcome. Must be an absolute URL.
	WebhookURL string `json:"webhookUrl" binding:"required,url"`
}

// ScrapeResponse is the synchronous reply for POST /api/v1/scrape.
type ScrapeResponse struct {
	Success bool           `json:"success"`
	JobID   string         `json:"jobId,omitempty"`
	Data    *ProfileRecord `json:"data,omitempty"`
	Error   *ErrorDetail   `json:"error,omitempty"`
}

// SessionStats is a snapshot of the session manager's current load.
type SessionStats struct {
	MaxSessions    int `json:"max_sessions"`
	ActiveSessions int `json:"active_sessions"`
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status       string       `json:"status"`
	Uptime       string       `json:"uptime"`
	SessionStats SessionStats `json:"sessions"`
	Version      string       `json:"version"`
}
