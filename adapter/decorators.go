package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/geohttp/logger"
	"github.com/kbukum/geohttp/resilience"
)

// The decorators in this file layer caller-level policies above the
// transport contract. The transports themselves never retry, throttle
// or trip: they translate each failure exactly once, and the Retryable
// flag on *Error is what lets these layers decide what to re-invoke.

// DefaultRetryConfig returns retry defaults suitable for adapters:
// only errors the taxonomy marks retryable are re-invoked.
func DefaultRetryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return cfg
}

// WithRetry wraps an adapter so that retryable failures are re-invoked
// with exponential backoff. A nil RetryIf defaults to IsRetryable.
func WithRetry(next Adapter, cfg resilience.RetryConfig) Adapter {
	if cfg.RetryIf == nil {
		cfg.RetryIf = IsRetryable
	}
	return &retryAdapter{
		next: next,
		cfg:  cfg,
		log:  logger.WithComponent("adapter.retry"),
	}
}

type retryAdapter struct {
	next Adapter
	cfg  resilience.RetryConfig
	log  *logger.Logger
}

func (r *retryAdapter) GetText(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (string, error) {
	return retry(ctx, r, func() (string, error) {
		return r.next.GetText(ctx, url, timeout, headers)
	})
}

func (r *retryAdapter) GetJSON(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (any, error) {
	return retry(ctx, r, func() (any, error) {
		return r.next.GetJSON(ctx, url, timeout, headers)
	})
}

func (r *retryAdapter) Close() error {
	return r.next.Close()
}

// retry runs fn under the configured policy, correlating the attempts of
// one logical call in debug logs with a generated request id.
func retry[T any](ctx context.Context, r *retryAdapter, fn func() (T, error)) (T, error) {
	cfg := r.cfg
	requestID := uuid.NewString()
	userOnRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		r.log.Debug("retrying request", logger.Fields(
			logger.FieldRequestID, requestID,
			logger.FieldAttempt, attempt,
			logger.FieldError, err.Error(),
			"backoff", backoff.String(),
		))
		if userOnRetry != nil {
			userOnRetry(attempt, err, backoff)
		}
	}
	return resilience.Retry(ctx, cfg, fn)
}

// WithRateLimit wraps an adapter so each call waits for the limiter
// before reaching the transport. A cancelled wait returns the context's
// error untranslated: throttling is a caller-level policy, not a
// transport failure.
func WithRateLimit(next Adapter, rl *resilience.RateLimiter) Adapter {
	return &rateLimitAdapter{next: next, rl: rl}
}

type rateLimitAdapter struct {
	next Adapter
	rl   *resilience.RateLimiter
}

func (r *rateLimitAdapter) GetText(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (string, error) {
	if err := r.rl.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.GetText(ctx, url, timeout, headers)
}

func (r *rateLimitAdapter) GetJSON(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (any, error) {
	if err := r.rl.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.GetJSON(ctx, url, timeout, headers)
}

func (r *rateLimitAdapter) Close() error {
	return r.next.Close()
}

// WithCircuitBreaker wraps an adapter so calls fail fast with
// resilience.ErrCircuitOpen while the endpoint is considered unhealthy.
func WithCircuitBreaker(next Adapter, cb *resilience.CircuitBreaker) Adapter {
	return &circuitBreakerAdapter{next: next, cb: cb}
}

type circuitBreakerAdapter struct {
	next Adapter
	cb   *resilience.CircuitBreaker
}

func (c *circuitBreakerAdapter) GetText(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (string, error) {
	var result string
	err := c.cb.Execute(func() error {
		var execErr error
		result, execErr = c.next.GetText(ctx, url, timeout, headers)
		return execErr
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

func (c *circuitBreakerAdapter) GetJSON(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (any, error) {
	var result any
	err := c.cb.Execute(func() error {
		var execErr error
		result, execErr = c.next.GetJSON(ctx, url, timeout, headers)
		return execErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *circuitBreakerAdapter) Close() error {
	return c.next.Close()
}
