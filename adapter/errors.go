package adapter

import (
	"errors"
	"fmt"
)

// ErrorKind classifies adapter failures, ordered from most to least specific.
type ErrorKind int

const (
	// KindHTTPStatus indicates a response was received with status >= 400.
	KindHTTPStatus ErrorKind = iota
	// KindTimeout indicates the connection or read exceeded the deadline.
	KindTimeout
	// KindUnavailable indicates the destination host or network is unreachable.
	KindUnavailable
	// KindParse indicates the response body could not be decoded as text or
	// parsed as the requested structured format.
	KindParse
	// KindService is the catch-all for any other transport-level failure.
	KindService
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http_status"
	case KindTimeout:
		return "timeout"
	case KindUnavailable:
		return "unavailable"
	case KindParse:
		return "parse"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every adapter. No transport
// implementation leaks any other error type to the caller.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// StatusCode is the HTTP status code (0 for pre-response failures).
	StatusCode int
	// Body is the best-effort decoded response body for HTTP status
	// errors. Empty when the body could not be read or decoded.
	Body string
	// Message describes the failure.
	Message string
	// Retryable indicates whether a retry layer may re-invoke the call.
	Retryable bool
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("adapter: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("adapter: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Kind:      KindTimeout,
		Message:   "service timed out",
		Retryable: true,
		Err:       err,
	}
}

// NewUnavailableError creates an unavailable error.
func NewUnavailableError(err error) *Error {
	return &Error{
		Kind:      KindUnavailable,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewHTTPStatusError creates an error for a response with status >= 400.
// Only a specific status subset is marked retryable so a retry layer never
// blindly re-invokes on all 4xx/5xx.
func NewHTTPStatusError(statusCode int, body string) *Error {
	return &Error{
		Kind:       KindHTTPStatus,
		StatusCode: statusCode,
		Body:       body,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Retryable:  retryableStatus(statusCode),
	}
}

// NewParseError creates a parse error.
func NewParseError(msg string, err error) *Error {
	return &Error{
		Kind:    KindParse,
		Message: msg,
		Err:     err,
	}
}

// NewServiceError creates the least specific, catch-all error.
func NewServiceError(err error) *Error {
	return &Error{
		Kind:    KindService,
		Message: err.Error(),
		Err:     err,
	}
}

// retryableStatus reports whether a retry layer may re-invoke a request
// that failed with the given status code.
func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTimeout
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUnavailable
}

// IsHTTPStatus checks if an error is an HTTP status error and returns
// its status code.
func IsHTTPStatus(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindHTTPStatus {
		return e.StatusCode, true
	}
	return 0, false
}

// IsParse checks if an error is a parse error.
func IsParse(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindParse
}

// IsService checks if an error is a catch-all service error.
func IsService(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindService
}

// IsRetryable checks if an error may be retried.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
