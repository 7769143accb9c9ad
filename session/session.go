package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sylcroad/profilescope/config"
	"github.com/sylcroad/profilescope/models"
	"github.com/ysmood/gson"
)

// Session is the isolated browser context + page used for exactly one job.
// It is owned by that job and never crosses job boundaries.
type Session struct {
	browser     *rod.Browser
	page        *rod.Page
	router      *rod.HijackRouter
	contextID   proto.BrowserBrowserContextID
	sessionCfg  config.SessionConfig
	onRelease   func()
	releaseOnce sync.Once
}

// Navigate loads the target URL and waits for render quiescence, bounded by
// the configured navigation timeout. Exceeding the bound yields a
// NAVIGATION_TIMEOUT error, never partial page content.
//
// A Google search referer is set before navigation.
func (s *Session) Navigate(ctx context.Context, target string) error {
	ctx, cancel := context.WithTimeout(ctx, s.sessionCfg.NavigationTimeout)
	defer cancel()

	if u, parseErr := url.Parse(target); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(s.page)
	}

	p := s.page.Context(ctx)
	if err := p.Navigate(target); err != nil {
		if isDeadline(err) {
			return models.NewScrapeError(models.ErrCodeNavigation,
				"page did not finish loading within bound", err)
		}
		return models.NewScrapeError(models.ErrCodeNavigationFailed,
			"navigation to profile page failed", err)
	}

	// Network-idle-equivalent wait. WaitRequestIdle uses the Fetch domain,
	// which conflicts with the hijack router on Chromium 145+, so quiescence
	// is detected via DOM stability instead.
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		if isDeadline(err) {
			return models.NewScrapeError(models.ErrCodeNavigation,
				"page did not finish loading within bound", err)
		}
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", err,
		)
	}
	return nil
}

// WaitReady blocks until the platform readiness selector appears, bounded by
// the configured ready timeout. Absence yields SELECTOR_TIMEOUT: a missing
// profile, a private wall and a challenge page are indistinguishable here.
func (s *Session) WaitReady(ctx context.Context, selector string) error {
	ctx, cancel := context.WithTimeout(ctx, s.sessionCfg.ReadyTimeout)
	defer cancel()

	p := s.page.Context(ctx)
	if _, err := p.Element(selector); err != nil {
		return models.NewScrapeError(
			models.ErrCodeSelector,
			fmt.Sprintf("readiness selector %q never appeared (profile missing, private, or challenged)", selector),
			err,
		)
	}
	return nil
}

// HTML returns the rendered page markup. Failure here means the page crashed
// or detached mid-read, which is fatal to the job.
func (s *Session) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeExtraction,
			"failed to read rendered page HTML", err)
	}
	return html, nil
}

// Release tears down the page and its incognito context. It is idempotent,
// safe after partial acquisition, and safe to call mid-extraction (forced
// teardown on the job ceiling goes through here too).
func (s *Session) Release() {
	s.releaseOnce.Do(func() {
		if s.router != nil {
			if err := s.router.Stop(); err != nil {
				slog.Warn("release: failed to stop hijack router", "error", err)
			}
		}
		if s.page != nil {
			if err := s.page.Close(); err != nil {
				slog.Warn("release: failed to close page", "error", err)
			}
		}
		if s.contextID != "" {
			err := proto.TargetDisposeBrowserContext{
				BrowserContextID: s.contextID,
			}.Call(s.browser)
			if err != nil {
				slog.Warn("release: failed to dispose browser context", "error", err)
			}
		}
		if s.onRelease != nil {
			s.onRelease()
		}
	})
}

func isDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
