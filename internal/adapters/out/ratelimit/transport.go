package ratelimit

import (
	"fmt"
	"net/http"

	"github.com/bnema/registry-cli/internal/boundaries/out"
)

// Transport is an http.RoundTripper that waits for the limiter before each
// request, keyed by request host.
type Transport struct {
	base    http.RoundTripper
	limiter out.RateLimiter
}

// NewTransport wraps base. A nil limiter returns base unchanged.
func NewTransport(base http.RoundTripper, limiter out.RateLimiter) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if limiter == nil {
		return base
	}
	return &Transport{base: base, limiter: limiter}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context(), req.URL.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return t.base.RoundTrip(req)
}
