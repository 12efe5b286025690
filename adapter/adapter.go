package adapter

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/kbukum/geohttp/config"
	"github.com/kbukum/geohttp/logger"
	"github.com/kbukum/geohttp/version"
)

// Impl selects a transport implementation.
type Impl string

const (
	// ImplStd is the baseline transport: no keep-alive, no compression,
	// no cookies.
	ImplStd Impl = "std"
	// ImplPooled is the default transport: persistent session with
	// keep-alive, cookie persistence and transparent compression.
	ImplPooled Impl = "pooled"
)

const defaultTimeout = 30 * time.Second

// Adapter is the contract every transport implementation satisfies.
//
// Implementations are safe for concurrent use. Every call is independent:
// no state is carried between calls beyond connection reuse, and each call
// is bounded by its timeout — exceeding it surfaces as a timeout error,
// never a hang. All failures are *Error values.
type Adapter interface {
	// GetText performs a GET request and returns the response body decoded
	// as text. timeout bounds the whole request (connect + read); a
	// non-positive timeout falls back to the configured default. Headers
	// are sent verbatim.
	GetText(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (string, error)

	// GetJSON is GetText followed by a JSON parse. A parse failure yields
	// a parse error whose diagnostic includes the raw text. Numbers are
	// json.Number values.
	GetJSON(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (any, error)

	// Close releases any resources held by the adapter. It is safe to
	// call more than once. Callers that create short-lived adapters must
	// call it themselves; it never runs implicitly.
	Close() error
}

// Config configures an adapter. Proxy configuration and TLS context are
// fixed at construction and never change for the adapter's lifetime.
type Config struct {
	// Impl selects the transport implementation. Empty selects pooled.
	Impl Impl

	// Proxies maps a URL scheme to a proxy endpoint. See ProxyConfig for
	// nil-versus-empty semantics.
	Proxies ProxyConfig

	// TLS is an optional custom trust context. The adapter clones it at
	// construction and never mutates the caller's value.
	TLS *tls.Config

	// DefaultTimeout applies when a call passes a non-positive timeout.
	// Defaults to 30s.
	DefaultTimeout time.Duration

	// UserAgent is sent when a call's headers do not set one. Defaults
	// to the library version string.
	UserAgent string

	// Headers are default headers sent on every call. A per-call header
	// with the same name wins.
	Headers map[string]string

	// Logger receives debug diagnostics and compatibility warnings.
	// Defaults to the global logger.
	Logger *logger.Logger
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Impl == "" {
		c.Impl = ImplPooled
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
	if c.Logger == nil {
		c.Logger = logger.GetGlobalLogger()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Impl {
	case ImplStd, ImplPooled:
		return nil
	default:
		return fmt.Errorf("adapter: unknown implementation %q (valid: %q, %q)",
			c.Impl, ImplStd, ImplPooled)
	}
}

// New creates an adapter for the configured implementation. An unknown
// implementation fails fast with an error naming the valid choices.
func New(cfg Config) (Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Impl {
	case ImplStd:
		return NewStd(cfg)
	default:
		return NewPooled(cfg)
	}
}

// FromSettings builds an adapter from process-level settings: the
// configured implementation, proxies, default timeout, user agent and
// TLS trust context.
func FromSettings(s *config.Settings) (Adapter, error) {
	tlsCtx, err := s.TLS.Build()
	if err != nil {
		return nil, err
	}

	var proxies ProxyConfig
	if s.Proxies != nil {
		proxies = ProxyConfig(s.Proxies)
	}

	return New(Config{
		Impl:           Impl(s.Adapter),
		Proxies:        proxies,
		TLS:            tlsCtx,
		DefaultTimeout: s.Timeout,
		UserAgent:      s.UserAgent,
		Logger:         logger.New(&s.Log, "geohttp"),
	})
}
