// Package webhook delivers terminal job outcomes to caller-supplied
// endpoints. Exactly one POST is made per job; there are no retries, since
// re-running a scrape is the caller's decision, not this layer's.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sylcroad/profilescope/config"
	"github.com/sylcroad/profilescope/models"
)

// Reporter posts job outcomes. Safe for concurrent use.
type Reporter struct {
	cfg    config.WebhookConfig
	client *http.Client
}

// NewReporter builds a reporter with a client bounded by the configured
// delivery timeout.
func NewReporter(cfg config.WebhookConfig) *Reporter {
	return &Reporter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// ReportSuccess posts the completed-job payload. Delivery failure is logged
// but never affects the job's own return value.
func (r *Reporter) ReportSuccess(job *models.ScrapeJob, record *models.ProfileRecord) {
	r.deliver(job, models.NewSuccessPayload(job, record))
}

// ReportFailure posts the failed-job payload. A failure delivering it is
// logged and swallowed so it can never replace the original job error.
func (r *Reporter) ReportFailure(job *models.ScrapeJob, jobErr error) {
	r.deliver(job, models.NewFailurePayload(job, jobErr))
}

func (r *Reporter) deliver(job *models.ScrapeJob, payload *models.WebhookPayload) {
	if job.WebhookURL == "" {
		slog.Warn("job has no webhook URL, skipping delivery", "job_id", job.JobID)
		return
	}

	// The delivery deadline is independent of the job context: an outcome
	// still gets posted after the job ceiling has fired.
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Timeout)
	defer cancel()

	if err := r.post(ctx, job.WebhookURL, payload); err != nil {
		slog.Warn("webhook delivery failed",
			"url", job.WebhookURL,
			"job_id", job.JobID,
			"status", payload.Status,
			"error", err,
		)
		return
	}
	slog.Info("webhook delivered",
		"url", job.WebhookURL,
		"job_id", job.JobID,
		"status", payload.Status,
	)
}

// post performs the single delivery attempt. The body is signed with
// HMAC-SHA256 when a secret is configured (X-Profilescope-Signature:
// sha256=<hex>); with no secret the request carries no auth header at all.
func (r *Reporter) post(ctx context.Context, url string, payload *models.WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeWebhook, "marshal payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return models.NewScrapeError(models.ErrCodeWebhook, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Profilescope-Webhook/1.0")

	if r.cfg.Secret != "" {
		mac := hmac.New(sha256.New, []byte(r.cfg.Secret))
		mac.Write(body)
		sig := hex.EncodeToString(mac.Sum(nil))
		req.Header.Set("X-Profilescope-Signature", "sha256="+sig)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeWebhook, "deliver payload", err)
	}
	defer resp.Body.Close()

	// Response status is recorded but never triggers a retry.
	if resp.StatusCode >= 400 {
		return models.NewScrapeError(models.ErrCodeWebhook,
			fmt.Sprintf("endpoint returned status %d", resp.StatusCode), nil)
	}
	return nil
}
