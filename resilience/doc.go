// Package resilience provides retry, rate limiting and circuit breaking
// primitives layered above the adapter transport contract.
//
// The transport layer itself never retries; these helpers are the
// caller-level layer that re-invokes an adapter on retryable error kinds
// with exponential backoff, throttles request rates against public
// geocoding APIs, and fails fast when an endpoint is unhealthy.
package resilience
