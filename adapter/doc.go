// Package adapter provides pluggable HTTP transports for geocoding clients.
//
// An Adapter issues outbound GET requests and normalizes every possible
// low-level failure into a closed taxonomy of five error kinds, so that
// per-provider geocoder code never has to understand transport internals.
// Two implementations are provided:
//
//   - StdAdapter: plain net/http with keep-alives and compression disabled,
//     one connection per request.
//   - PooledAdapter: a persistent session with connection keep-alive,
//     cookie persistence and transparent compression.
//
// Both take their proxy configuration and optional TLS trust context at
// construction and never change them afterwards. Retry, rate limiting and
// circuit breaking are caller-level decorators (WithRetry, WithRateLimit,
// WithCircuitBreaker), never behavior of the transports themselves.
//
// # Basic Usage
//
//	a, err := adapter.New(adapter.Config{})
//	if err != nil { ... }
//	defer a.Close()
//
//	body, err := a.GetText(ctx, url, 5*time.Second, map[string]string{
//	    "User-Agent": "my-app/1.0",
//	})
package adapter
