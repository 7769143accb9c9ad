// Package jobs drives the per-job scrape state machine:
//
//	Idle → SessionAcquired → Navigated → Ready → Extracted → Delivered(Success)
//
// with Delivered(Failure) reachable from every state. Only this package
// performs terminal failure classification; field-level extraction gaps are
// absorbed lower down and never escalate to a job failure.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sylcroad/profilescope/extractor"
	"github.com/sylcroad/profilescope/models"
)

// Session is the per-job browser resource the runner drives. It is owned
// exclusively by one job execution and released exactly once.
type Session interface {
	Navigate(ctx context.Context, url string) error
	WaitReady(ctx context.Context, selector string) error
	HTML(ctx context.Context) (string, error)
	Release()
}

// AcquireFunc hands out a fresh session for one job. Wiring it as a closure
// keeps this package free of a browser dependency (and trivially fakeable
// in tests).
type AcquireFunc func(ctx context.Context) (Session, error)

// Reporter delivers the terminal job outcome. Implementations must not
// return errors to the runner: delivery failure on the failure path is
// logged and swallowed so it can never mask the job's own error.
type Reporter interface {
	ReportSuccess(job *models.ScrapeJob, record *models.ProfileRecord)
	ReportFailure(job *models.ScrapeJob, jobErr error)
}

// Runner executes scrape jobs. It is stateless across jobs and safe for
// concurrent use; the only shared mutable resource is each job's own session.
type Runner struct {
	acquire    AcquireFunc
	reporter   Reporter
	jobTimeout time.Duration
}

// NewRunner wires a runner. jobTimeout is the hard per-job ceiling.
func NewRunner(acquire AcquireFunc, reporter Reporter, jobTimeout time.Duration) *Runner {
	return &Runner{
		acquire:    acquire,
		reporter:   reporter,
		jobTimeout: jobTimeout,
	}
}

// Run drives one job to a terminal state. It returns the profile record (or
// the classified error) to the invoker and, independently, reports the same
// outcome through the reporter: exactly one webhook call per job, on both
// paths. The session is released on every exit, including the forced
// teardown when the job ceiling fires mid-extraction.
func (r *Runner) Run(ctx context.Context, job *models.ScrapeJob) (*models.ProfileRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.jobTimeout)
	defer cancel()

	start := time.Now()
	record, err := r.execute(ctx, job)
	if err != nil {
		scrapeErr := models.AsScrapeError(err)
		slog.Error("job failed",
			"job_id", job.JobID,
			"platform", job.Platform,
			"username", job.Username,
			"code", scrapeErr.Code,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		r.reporter.ReportFailure(job, scrapeErr)
		return nil, scrapeErr
	}

	slog.Info("job completed",
		"job_id", job.JobID,
		"platform", job.Platform,
		"username", record.Username,
		"followers", record.Followers,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	r.reporter.ReportSuccess(job, record)
	return record, nil
}

// execute walks the state machine up to Extracted. Each step returns a typed
// ScrapeError carrying its terminal classification.
func (r *Runner) execute(ctx context.Context, job *models.ScrapeJob) (*models.ProfileRecord, error) {
	ext, ok := extractor.ForPlatform(job.Platform)
	if !ok {
		return nil, models.NewScrapeError(
			models.ErrCodeInvalidInput,
			fmt.Sprintf("no extractor registered for platform %q", job.Platform),
			nil,
		)
	}

	// ── Idle → SessionAcquired ──────────────────────────────────────
	sess, err := r.acquire(ctx)
	if err != nil {
		return nil, models.AsScrapeError(err)
	}
	defer sess.Release()

	// ── SessionAcquired → Navigated ─────────────────────────────────
	profileURL := ext.ProfileURL(job.Username)
	slog.Info("navigating", "job_id", job.JobID, "url", profileURL)
	if err := sess.Navigate(ctx, profileURL); err != nil {
		return nil, err
	}

	// ── Navigated → Ready ───────────────────────────────────────────
	if err := sess.WaitReady(ctx, ext.ReadySelector()); err != nil {
		return nil, err
	}

	// ── Ready → Extracted ───────────────────────────────────────────
	html, err := sess.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeExtraction,
			"failed to parse rendered page",
			err,
		)
	}
	raw := ext.Extract(doc)

	// scrapedAt is the moment extraction completed, not when the job started.
	return models.NewProfileRecord(job, raw, time.Now().UTC()), nil
}
