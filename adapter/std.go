package adapter

import (
	"context"
	"net/http"
	"time"

	"github.com/kbukum/geohttp/logger"
)

// StdAdapter is the baseline transport built on plain net/http primitives.
// It keeps no connections alive between calls, negotiates no compression
// and persists no cookies. Use it when predictable one-shot requests
// matter more than throughput.
type StdAdapter struct {
	client    *http.Client
	transport *http.Transport
	cfg       Config
	log       *logger.Logger
}

var _ Adapter = (*StdAdapter)(nil)

// NewStd creates a baseline adapter. The proxy configuration is bound
// explicitly even when empty, so environment proxy variables can never
// apply unless the caller passed a nil ProxyConfig.
func NewStd(cfg Config) (*StdAdapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy:              cfg.Proxies.proxyFunc(),
		DisableKeepAlives:  true,
		DisableCompression: true,
	}
	if cfg.TLS != nil {
		// Clone so the transport's HTTP/2 setup can never mutate the
		// caller's trust context in place.
		transport.TLSClientConfig = cfg.TLS.Clone()
	}

	return &StdAdapter{
		client:    &http.Client{Transport: transport},
		transport: transport,
		cfg:       cfg,
		log:       cfg.Logger.WithComponent("adapter.std"),
	}, nil
}

// GetText performs a GET request and returns the decoded response body.
func (a *StdAdapter) GetText(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (string, error) {
	return fetchText(ctx, a.client, &a.cfg, a.log, classifyStdError, url, timeout, headers)
}

// GetJSON performs a GET request and returns the parsed JSON body.
func (a *StdAdapter) GetJSON(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (any, error) {
	text, err := a.GetText(ctx, url, timeout, headers)
	if err != nil {
		return nil, err
	}
	return jsonFromText(text)
}

// Close releases any idle connections. Keep-alives are disabled, so this
// is usually a no-op; it is safe to call more than once.
func (a *StdAdapter) Close() error {
	a.transport.CloseIdleConnections()
	return nil
}
