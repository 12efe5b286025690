package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func mustRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	return req
}

func TestProxyConfig_ExplicitProxies(t *testing.T) {
	p := ProxyConfig{
		"http":  "http://proxy.example.com:3128",
		"https": "http://secure-proxy.example.com:3128",
	}
	f := p.proxyFunc()

	u, err := f(mustRequest(t, "http://geocode.example.com/search"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Host != "proxy.example.com:3128" {
		t.Errorf("http proxy = %v, want proxy.example.com:3128", u)
	}

	u, err = f(mustRequest(t, "https://geocode.example.com/search"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Host != "secure-proxy.example.com:3128" {
		t.Errorf("https proxy = %v, want secure-proxy.example.com:3128", u)
	}
}

func TestProxyConfig_EmptyMapDisablesEnvironment(t *testing.T) {
	t.Setenv("HTTP_PROXY", "http://198.51.100.1:9")
	t.Setenv("HTTPS_PROXY", "http://198.51.100.1:9")

	f := ProxyConfig{}.proxyFunc()
	u, err := f(mustRequest(t, "http://geocode.example.com/search"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Errorf("empty proxy config must ignore environment proxies, got %v", u)
	}
}

func TestProxyConfig_EmptyMapAdapterStillWorks(t *testing.T) {
	// An unroutable env proxy must not affect an adapter constructed with
	// an explicitly empty proxy map.
	t.Setenv("HTTP_PROXY", "http://198.51.100.1:9")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("direct"))
	}))
	defer srv.Close()

	a, err := NewStd(Config{Proxies: ProxyConfig{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	got, err := a.GetText(context.Background(), srv.URL, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "direct" {
		t.Errorf("got %q, want %q", got, "direct")
	}
}
