// Package session owns the browser side of a scrape job: one shared headless
// browser process, and one isolated incognito context + page per job.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/sylcroad/profilescope/config"
	"github.com/sylcroad/profilescope/models"
)

// Desktop fingerprint applied to every session. These are deliberately not
// configurable: extractor selectors assume the desktop layout.
const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	locale    = "en-US"

	viewportWidth  = 1920
	viewportHeight = 1080
)

// Manager launches the shared browser process and hands out isolated
// per-job sessions. It is safe for concurrent use.
type Manager struct {
	browser        *rod.Browser
	browserCfg     config.BrowserConfig
	sessionCfg     config.SessionConfig
	activeSessions atomic.Int32
}

// NewManager launches a headless browser and connects to it.
func NewManager(browserCfg config.BrowserConfig, sessionCfg config.SessionConfig) (*Manager, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.Proxy != "" {
		l = l.Proxy(browserCfg.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-prompt-on-repost"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))
	l.Set(flags.Flag("lang"), locale)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeSession,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeSession,
			"failed to connect to browser",
			err,
		)
	}

	return &Manager{
		browser:    browser,
		browserCfg: browserCfg,
		sessionCfg: sessionCfg,
	}, nil
}

// Acquire creates an isolated incognito context with a fresh page, applies
// the desktop fingerprint and stealth script, and mounts the resource
// blocker. The returned session must be released by the caller; Release is
// idempotent and runs cleanup even if acquisition only partially succeeded.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeSession,
			"job context expired before session acquisition",
			err,
		)
	}
	if max := int32(m.browserCfg.MaxSessions); max > 0 && m.activeSessions.Load() >= max {
		return nil, models.NewScrapeError(
			models.ErrCodeSession,
			fmt.Sprintf("session capacity reached (%d active)", m.activeSessions.Load()),
			nil,
		)
	}

	incognito, err := m.browser.Incognito()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeSession,
			"failed to create incognito browser context",
			err,
		)
	}

	s := &Session{
		browser:    incognito,
		contextID:  incognito.BrowserContextID,
		sessionCfg: m.sessionCfg,
		onRelease:  func() { m.activeSessions.Add(-1) },
	}
	m.activeSessions.Add(1)

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		s.Release()
		return nil, models.NewScrapeError(
			models.ErrCodeSession,
			"failed to create page in incognito context",
			err,
		)
	}
	s.page = page

	// ── Desktop fingerprint ──────────────────────────────────────────
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      userAgent,
		AcceptLanguage: locale,
	}); err != nil {
		s.Release()
		return nil, models.NewScrapeError(
			models.ErrCodeSession,
			"failed to set user agent",
			err,
		)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		s.Release()
		return nil, models.NewScrapeError(
			models.ErrCodeSession,
			"failed to set viewport",
			err,
		)
	}

	// ── Stealth injection (must precede navigation) ──────────────────
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth injection failed, proceeding without stealth",
			"error", err,
		)
	}

	// ── Resource blocking (must precede navigation) ──────────────────
	s.router = setupHijack(page, m.sessionCfg.BlockedResourceTypes)

	return s, nil
}

// Stats returns a snapshot of current session usage.
func (m *Manager) Stats() models.SessionStats {
	return models.SessionStats{
		MaxSessions:    m.browserCfg.MaxSessions,
		ActiveSessions: int(m.activeSessions.Load()),
	}
}

// Close kills the browser process. Call this on graceful shutdown to
// prevent zombie Chrome processes.
func (m *Manager) Close() {
	slog.Info("session manager shutting down: closing browser")
	m.browser.MustClose()
	slog.Info("session manager shutdown complete")
}
