package adapter

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// The substring checks below are a compatibility requirement carried over
// from the adapter contract, not an endorsement: typed inspection runs
// first, and the substrings only catch errors whose underlying type gives
// no structured signal.

// classifyStdError maps a pre-response failure from the std transport onto
// the error taxonomy.
func classifyStdError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if isTimeoutError(err) {
		return NewTimeoutError(err)
	}

	msg := err.Error()
	if strings.Contains(msg, "timed out") {
		return NewTimeoutError(err)
	}
	if strings.Contains(msg, "unreachable") {
		return &Error{
			Kind:      KindUnavailable,
			Message:   "service not available",
			Retryable: true,
			Err:       err,
		}
	}
	return NewServiceError(err)
}

// classifyPooledError maps a pre-response failure from the pooled transport
// onto the error taxonomy. Unlike the std mapping, connection-establishment
// failures surface as unavailable rather than the catch-all.
func classifyPooledError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if isTimeoutError(err) || strings.Contains(err.Error(), "timed out") {
		return NewTimeoutError(err)
	}
	if isConnectError(err) {
		return NewUnavailableError(err)
	}
	return NewServiceError(err)
}

// isTimeoutError reports whether err is a deadline or I/O timeout,
// including timeouts surfaced through the TLS layer.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isConnectError reports whether err occurred while establishing a
// connection: DNS resolution, dial, or a refused/unroutable endpoint.
func isConnectError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}
