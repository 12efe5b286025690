package adapter

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/geohttp/resilience"
)

// scriptedAdapter returns one queued error per call, then succeeds.
type scriptedAdapter struct {
	calls  atomic.Int32
	closes atomic.Int32
	errs   []error
	result string
}

func (s *scriptedAdapter) GetText(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (string, error) {
	n := int(s.calls.Add(1)) - 1
	if n < len(s.errs) && s.errs[n] != nil {
		return "", s.errs[n]
	}
	return s.result, nil
}

func (s *scriptedAdapter) GetJSON(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (any, error) {
	text, err := s.GetText(ctx, url, timeout, headers)
	if err != nil {
		return nil, err
	}
	return text, nil
}

func (s *scriptedAdapter) Close() error {
	s.closes.Add(1)
	return nil
}

func fastRetryConfig() resilience.RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	cfg.Jitter = 0
	return cfg
}

func TestWithRetry_RetriesRetryableErrors(t *testing.T) {
	inner := &scriptedAdapter{
		errs:   []error{NewHTTPStatusError(503, ""), NewTimeoutError(errors.New("timed out"))},
		result: "third time lucky",
	}
	a := WithRetry(inner, fastRetryConfig())

	got, err := a.GetText(context.Background(), "http://example.com", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "third time lucky" {
		t.Errorf("got %q", got)
	}
	if n := inner.calls.Load(); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestWithRetry_DoesNotRetryNonRetryable(t *testing.T) {
	inner := &scriptedAdapter{
		errs: []error{NewHTTPStatusError(404, "not found")},
	}
	a := WithRetry(inner, fastRetryConfig())

	_, err := a.GetText(context.Background(), "http://example.com", 0, nil)
	if code, ok := IsHTTPStatus(err); !ok || code != 404 {
		t.Fatalf("expected HTTP 404, got %v", err)
	}
	if n := inner.calls.Load(); n != 1 {
		t.Errorf("calls = %d, a 404 must not be retried", n)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	inner := &scriptedAdapter{
		errs: []error{
			NewUnavailableError(errors.New("down")),
			NewUnavailableError(errors.New("down")),
			NewUnavailableError(errors.New("down")),
		},
	}
	cfg := fastRetryConfig()
	cfg.MaxAttempts = 3
	a := WithRetry(inner, cfg)

	_, err := a.GetJSON(context.Background(), "http://example.com", 0, nil)
	if !IsUnavailable(err) {
		t.Fatalf("expected the last attempt's error, got %v", err)
	}
	if n := inner.calls.Load(); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestWithRetry_CloseDelegates(t *testing.T) {
	inner := &scriptedAdapter{}
	a := WithRetry(inner, fastRetryConfig())
	if err := a.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := inner.closes.Load(); n != 1 {
		t.Errorf("closes = %d, want 1", n)
	}
}

func TestWithRateLimit_PassesThrough(t *testing.T) {
	inner := &scriptedAdapter{result: "ok"}
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 100, Burst: 1})
	a := WithRateLimit(inner, rl)

	got, err := a.GetText(context.Background(), "http://example.com", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q", got)
	}
}

func TestWithRateLimit_CancelledWait(t *testing.T) {
	inner := &scriptedAdapter{result: "ok"}
	// Burst 1 at a very slow rate: the first call drains the bucket.
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 0.001, Burst: 1})
	a := WithRateLimit(inner, rl)

	ctx := context.Background()
	if _, err := a.GetText(ctx, "http://example.com", 0, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err := a.GetText(cancelled, "http://example.com", 0, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("a throttled wait surfaces the context error, got %v", err)
	}
	if n := inner.calls.Load(); n != 1 {
		t.Errorf("calls = %d, the throttled call must not reach the transport", n)
	}
}

func TestWithCircuitBreaker_OpensAfterFailures(t *testing.T) {
	inner := &scriptedAdapter{
		errs: []error{
			NewUnavailableError(errors.New("down")),
			NewUnavailableError(errors.New("down")),
		},
	}
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:        "test",
		MaxFailures: 2,
		Timeout:     time.Minute,
	})
	a := WithCircuitBreaker(inner, cb)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := a.GetText(ctx, "http://example.com", 0, nil); err == nil {
			t.Fatal("expected an error")
		}
	}

	_, err := a.GetText(ctx, "http://example.com", 0, nil)
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if n := inner.calls.Load(); n != 2 {
		t.Errorf("calls = %d, the open circuit must short-circuit", n)
	}
}

func TestWithCircuitBreaker_SuccessPassesThrough(t *testing.T) {
	inner := &scriptedAdapter{result: "ok"}
	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("test"))
	a := WithCircuitBreaker(inner, cb)

	got, err := a.GetText(context.Background(), "http://example.com", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q", got)
	}
}

func TestDecorators_Stack(t *testing.T) {
	inner := &scriptedAdapter{
		errs:   []error{NewHTTPStatusError(502, "")},
		result: "recovered",
	}
	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("stack"))
	a := WithCircuitBreaker(WithRetry(inner, fastRetryConfig()), cb)

	got, err := a.GetText(context.Background(), "http://example.com", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered" {
		t.Errorf("got %q", got)
	}
}
