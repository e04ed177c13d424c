package out

import "context"

// RateLimiter defines the contract for throttling outgoing requests.
type RateLimiter interface {
	// Wait blocks until a request identified by key may proceed or ctx is done.
	// Key is typically the registry host.
	Wait(ctx context.Context, key string) error
}
