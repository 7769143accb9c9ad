package models

// WebhookPayload is the terminal job outcome posted to the caller's webhook.
// Exactly one payload is constructed per job: either the completed variant
// carrying Data, or the failed variant carrying Error.
type WebhookPayload struct {
	JobID    string         `json:"jobId"`
	Status   string         `json:"status"` // "completed" or "failed"
	Platform Platform       `json:"platform"`
	Data     *ProfileRecord `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// NewSuccessPayload builds the completed-job webhook payload.
func NewSuccessPayload(job *ScrapeJob, record *ProfileRecord) *WebhookPayload {
	return &WebhookPayload{
		JobID:    job.JobID,
		Status:   "completed",
		Platform: job.Platform,
		Data:     record,
	}
}

// NewFailurePayload builds the failed-job webhook payload. The triggering
// error's message is captured verbatim.
func NewFailurePayload(job *ScrapeJob, err error) *WebhookPayload {
	return &WebhookPayload{
		JobID:    job.JobID,
		Status:   "failed",
		Platform: job.Platform,
		Error:    err.Error(),
	}
}
