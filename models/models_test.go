package models

import (
	"errors"
	"testing"
	"time"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"instagram", PlatformInstagram, false},
		{"Instagram", PlatformInstagram, false},
		{"INSTAGRAM", PlatformInstagram, false},
		{"tiktok", PlatformTikTok, false},
		{"TikTok", PlatformTikTok, false},
		{" tiktok ", PlatformTikTok, false},
		{"myspace", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlatform(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePlatform(%q) succeeded, want error", tt.in)
				}
				if code := AsScrapeError(err).Code; code != ErrCodeInvalidInput {
					t.Errorf("code = %q, want %q", code, ErrCodeInvalidInput)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlatform(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePlatform(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewProfileRecord_UsernameFallback(t *testing.T) {
	job := &ScrapeJob{JobID: "j", Username: "nike", Platform: PlatformInstagram}
	now := time.Now().UTC()

	record := NewProfileRecord(job, &RawProfile{Followers: 42}, now)
	if record.Username != "nike" {
		t.Errorf("Username = %q, want job username fallback", record.Username)
	}
	if !record.ScrapedAt.Equal(now) {
		t.Errorf("ScrapedAt = %v, want %v", record.ScrapedAt, now)
	}

	record = NewProfileRecord(job, &RawProfile{Username: "nikefootball"}, now)
	if record.Username != "nikefootball" {
		t.Errorf("Username = %q, want page username to win", record.Username)
	}
}

func TestWebhookPayloadConstruction(t *testing.T) {
	job := &ScrapeJob{JobID: "j1", Username: "nike", Platform: PlatformInstagram}

	success := NewSuccessPayload(job, &ProfileRecord{Username: "nike"})
	if success.Status != "completed" || success.JobID != "j1" || success.Data == nil || success.Error != "" {
		t.Errorf("success payload = %+v", success)
	}

	failure := NewFailurePayload(job, NewScrapeError(ErrCodeSelector, "header never appeared", nil))
	if failure.Status != "failed" || failure.Data != nil {
		t.Errorf("failure payload = %+v", failure)
	}
	if failure.Error != "SELECTOR_TIMEOUT: header never appeared" {
		t.Errorf("failure error = %q", failure.Error)
	}
}

func TestScrapeError(t *testing.T) {
	inner := errors.New("net::ERR_CONNECTION_REFUSED")
	err := NewScrapeError(ErrCodeNavigationFailed, "navigation to profile page failed", inner)

	if !errors.Is(err, inner) {
		t.Error("wrapped error not reachable via errors.Is")
	}
	want := "NAVIGATION_FAILED: navigation to profile page failed: net::ERR_CONNECTION_REFUSED"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if d := err.ToDetail(); d.Code != ErrCodeNavigationFailed || d.Message != "navigation to profile page failed" {
		t.Errorf("ToDetail() = %+v", d)
	}
}

func TestAsScrapeError(t *testing.T) {
	se := NewScrapeError(ErrCodeSession, "boom", nil)
	if AsScrapeError(se) != se {
		t.Error("existing ScrapeError should pass through unchanged")
	}

	plain := errors.New("something broke")
	wrapped := AsScrapeError(plain)
	if wrapped.Code != ErrCodeInternal {
		t.Errorf("code = %q, want %q", wrapped.Code, ErrCodeInternal)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("original error not preserved")
	}
}
