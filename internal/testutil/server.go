// Package testutil provides helpers for spinning up the catalog HTTP stack
// in tests and asserting on rendered markup.
package testutil

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"dragonfield.org/catalog-web/internal/browse"
	"dragonfield.org/catalog-web/internal/dbapi"
	"dragonfield.org/catalog-web/internal/httpserver"
	appsession "dragonfield.org/catalog-web/internal/session"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithService wires a custom catalog service implementation.
func WithService(svc dbapi.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Service = svc
	}
}

// WithBasePath sets a custom base path for the catalog routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithScreens wires a pre-built screen registry.
func WithScreens(reg *browse.Registry) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Screens = reg
	}
}

// NewServer constructs an httptest server running the catalog HTTP stack with
// sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	sessions, err := appsession.NewManager(appsession.Config{
		HashKey:  []byte("12345678901234567890123456789012"),
		Lifetime: time.Hour,
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	cfg := httpserver.Config{
		Address:  ":0",
		BasePath: "/",
		Sessions: sessions,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httpserver.New(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// NewClient returns an HTTP client with a cookie jar so browsing sessions
// persist across requests.
func NewClient(t testing.TB) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}
