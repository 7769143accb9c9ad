package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Session   SessionConfig
	Webhook   WebhookConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the shared Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is an optional proxy URL for all sessions.
	Proxy string

	// MaxSessions caps concurrently held browser sessions.
	MaxSessions int // default: 10
}

// SessionConfig controls per-job session behavior.
type SessionConfig struct {
	// NavigationTimeout bounds page navigation plus render quiescence.
	NavigationTimeout time.Duration // default: 30s

	// ReadyTimeout bounds the wait for the platform readiness selector.
	ReadyTimeout time.Duration // default: 15s

	// JobTimeout is the hard ceiling for one whole job.
	JobTimeout time.Duration // default: 300s

	// BlockedResourceTypes lists resource types the session refuses to load.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// WebhookConfig controls result delivery.
type WebhookConfig struct {
	// Timeout bounds the single webhook POST.
	Timeout time.Duration // default: 30s

	// Secret enables HMAC-SHA256 payload signing when non-empty.
	Secret string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 3
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
// A local .env file, if present, is loaded first.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: envOr("PSCOPE_HOST", "0.0.0.0"),
			Port: envIntOr("PSCOPE_PORT", 8080),
			Mode: envOr("PSCOPE_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:    envBoolOr("PSCOPE_HEADLESS", true),
			NoSandbox:   envBoolOr("PSCOPE_NO_SANDBOX", false),
			BrowserBin:  os.Getenv("PSCOPE_BROWSER_BIN"),
			Proxy:       os.Getenv("PSCOPE_PROXY"),
			MaxSessions: envIntOr("PSCOPE_MAX_SESSIONS", 10),
		},
		Session: SessionConfig{
			NavigationTimeout: envDurationOr("PSCOPE_NAV_TIMEOUT", 30*time.Second),
			ReadyTimeout:      envDurationOr("PSCOPE_READY_TIMEOUT", 15*time.Second),
			JobTimeout:        envDurationOr("PSCOPE_JOB_TIMEOUT", 300*time.Second),
			BlockedResourceTypes: envSliceOr("PSCOPE_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
		Webhook: WebhookConfig{
			Timeout: envDurationOr("PSCOPE_WEBHOOK_TIMEOUT", 30*time.Second),
			Secret:  os.Getenv("PSCOPE_WEBHOOK_SECRET"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PSCOPE_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PSCOPE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PSCOPE_RATE_RPS", 1.0),
			Burst:             envIntOr("PSCOPE_RATE_BURST", 3),
		},
		Log: LogConfig{
			Level:  envOr("PSCOPE_LOG_LEVEL", "info"),
			Format: envOr("PSCOPE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
