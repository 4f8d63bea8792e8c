// Package geocode resolves free-text addresses to coordinates using a
// run-scoped cache and a primary/fallback provider chain.
package geocode

import (
	"context"
	"net"
	"net/http"
	"time"
)

// Result is a successfully resolved coordinate pair.
type Result struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Provider resolves a single address against one geocoding backend.
// A nil result with a nil error means the backend had no match.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Resolver is the interface the pipeline consumes.
type Resolver interface {
	Resolve(ctx context.Context, address string) *Result
	Stats() Stats
}

// countrySuffix is appended to every query to hint the provider.
const countrySuffix = ", Taiwan"

// newHTTPClient builds the shared client for provider calls.
func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}
