package adapter

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/kbukum/geohttp/logger"
)

// PooledAdapter is the default transport. It holds one persistent session
// reused across every call from this instance: connection keep-alive,
// cookie persistence and transparent compression. The session's pool is
// the only mutable shared state and is owned exclusively by the instance;
// the pool's checkout is the serialization point for concurrent callers.
type PooledAdapter struct {
	client    *http.Client
	transport *http.Transport
	cfg       Config
	log       *logger.Logger

	warnOnce  sync.Once
	closeOnce sync.Once
}

var _ Adapter = (*PooledAdapter)(nil)

// NewPooled creates a pooled adapter. A non-nil proxy configuration
// disables environment proxy trust for the whole session; an empty map
// disables proxies entirely. A supplied TLS context is bound into both
// the direct and the proxied connection paths.
func NewPooled(cfg Config) (*PooledAdapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = cfg.Proxies.proxyFunc()

	a := &PooledAdapter{
		transport: transport,
		cfg:       cfg,
		log:       cfg.Logger.WithComponent("adapter.pooled"),
	}

	if cfg.TLS != nil {
		a.bindTLSContext(cfg.TLS)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, NewServiceError(err)
	}

	a.client = &http.Client{Transport: transport, Jar: jar}
	return a, nil
}

// GetText performs a GET request through the shared session and returns
// the decoded response body.
func (a *PooledAdapter) GetText(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (string, error) {
	return fetchText(ctx, a.client, &a.cfg, a.log, classifyPooledError, url, timeout, headers)
}

// GetJSON performs a GET request through the shared session and returns
// the parsed JSON body.
func (a *PooledAdapter) GetJSON(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (any, error) {
	text, err := a.GetText(ctx, url, timeout, headers)
	if err != nil {
		return nil, err
	}
	return jsonFromText(text)
}

// Close releases all pooled connections. Safe to call more than once;
// only the first call does any work.
func (a *PooledAdapter) Close() error {
	a.closeOnce.Do(func() {
		a.transport.CloseIdleConnections()
	})
	return nil
}
