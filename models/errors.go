package models

import "fmt"

// Error codes used in API responses and internal error handling.
//
// The first four are the terminal job-failure classifications; every failed
// job carries exactly one of them.
const (
	ErrCodeSession    = "SESSION_ERROR"      // browser/context could not be created
	ErrCodeNavigation = "NAVIGATION_TIMEOUT" // page did not finish loading within bound
	ErrCodeSelector   = "SELECTOR_TIMEOUT"   // profile markup never appeared (missing/private/challenge)
	ErrCodeExtraction = "EXTRACTION_ERROR"   // catastrophic fault reading a ready page
	ErrCodeWebhook    = "WEBHOOK_DELIVERY_FAILED"

	// ErrCodeNavigationFailed covers hard navigation faults (DNS, TLS,
	// connection refused) that are fatal but not timeouts.
	ErrCodeNavigationFailed = "NAVIGATION_FAILED"

	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ScrapeError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// AsScrapeError coerces any error into a *ScrapeError, wrapping unknown
// errors under ErrCodeInternal so callers always have a code to report.
func AsScrapeError(err error) *ScrapeError {
	if se, ok := err.(*ScrapeError); ok {
		return se
	}
	return NewScrapeError(ErrCodeInternal, err.Error(), err)
}
