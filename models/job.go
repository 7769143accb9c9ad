package models

import (
	"fmt"
	"strings"
)

// Platform identifies which extractor variant handles a job.
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
)

// ParsePlatform maps a user-supplied platform string (case-insensitive)
// to a Platform. Unknown values return an INVALID_INPUT error.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "instagram":
		return PlatformInstagram, nil
	case "tiktok":
		return PlatformTikTok, nil
	default:
		return "", NewScrapeError(ErrCodeInvalidInput,
			fmt.Sprintf("unknown platform %q (expected instagram or tiktok)", s), nil)
	}
}

// ScrapeJob is one request to scrape a single profile. It is immutable once
// created and owned by exactly one runner execution.
type ScrapeJob struct {
	// JobID is an opaque correlation id echoed back in the webhook payload.
	JobID string

	// Username is the profile handle, without a leading "@".
	Username string

	// WebhookURL is the absolute URL that receives the terminal outcome.
	// Empty means the caller only wants the synchronous return value.
	WebhookURL string

	// Platform selects the extractor variant.
	Platform Platform
}
