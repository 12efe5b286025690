package adapter

import (
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// ProxyConfig maps a URL scheme ("http", "https") to a proxy endpoint.
//
// A nil map allows environment proxy settings (HTTP_PROXY and friends) to
// apply. An empty non-nil map explicitly disables all proxies, including
// environment ones — the two are deliberately distinct. The map is fixed
// at construction and never consulted again per call.
type ProxyConfig map[string]string

// proxyFunc builds the transport proxy callback for this configuration.
// A non-nil config is always bound explicitly, even when empty, so that
// ambient environment proxy variables can never leak into requests.
func (p ProxyConfig) proxyFunc() func(*http.Request) (*url.URL, error) {
	if p == nil {
		return http.ProxyFromEnvironment
	}
	cfg := &httpproxy.Config{
		HTTPProxy:  p["http"],
		HTTPSProxy: p["https"],
	}
	f := cfg.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return f(req.URL)
	}
}
