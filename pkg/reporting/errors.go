package reporting

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Common errors returned by the reporting service.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorClass represents a classification of transport errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors (bad query, auth).
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassQuota represents 403/429 quota-exceeded errors.
	ErrorClassQuota ErrorClass = "quota"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// ReportError wraps a failed reporting API call with its classification.
type ReportError struct {
	StatusCode int
	Class      ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reporting %s error (status %d): %s: %v",
			e.Class, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("reporting %s error (status %d): %s",
		e.Class, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// classifyError categorizes a failed API call. Quota exhaustion surfaces as
// 403 with a rate-limit reason or as 429; both back off the same way.
func classifyError(err error) ErrorClass {
	if err == nil {
		return ""
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return ErrorClassNetwork
	}

	switch {
	case gerr.Code == 429:
		return ErrorClassQuota
	case gerr.Code == 403 && hasQuotaReason(gerr):
		return ErrorClassQuota
	case gerr.Code >= 400 && gerr.Code < 500:
		return ErrorClassClient
	case gerr.Code >= 500:
		return ErrorClassServer
	default:
		return ErrorClassNetwork
	}
}

// hasQuotaReason reports whether a 403 is a rate/quota rejection rather than
// a permission problem.
func hasQuotaReason(gerr *googleapi.Error) bool {
	for _, item := range gerr.Errors {
		switch item.Reason {
		case "rateLimitExceeded", "userRateLimitExceeded", "quotaExceeded", "dailyLimitExceeded":
			return true
		}
	}
	return false
}

// statusCode extracts the HTTP status from a classified error, 0 if unknown.
func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// shouldRetry determines if an error should be retried based on its class.
func shouldRetry(class ErrorClass) bool {
	switch class {
	case ErrorClassClient:
		// 4xx errors will fail identically on retry
		return false
	case ErrorClassServer, ErrorClassQuota, ErrorClassNetwork:
		return true
	default:
		return false
	}
}

// wrapError builds the ReportError surfaced to callers, preserving context
// cancellation untouched so errors.Is(err, context.Canceled) keeps working.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ReportError{
		StatusCode: statusCode(err),
		Class:      classifyError(err),
		Message:    "core reporting query failed",
		Err:        err,
	}
}
