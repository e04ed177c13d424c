// Package ratelimit throttles outgoing registry requests.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/bnema/registry-cli/internal/boundaries/out"
	"github.com/bnema/registry-cli/internal/logging"
)

// Ensure MemoryStore implements out.RateLimiter.
var _ out.RateLimiter = (*MemoryStore)(nil)

// MemoryStore keeps one token bucket per key, in memory.
type MemoryStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rps      float64
	burst    int
	log      logging.Logger
}

// NewMemoryStore creates a limiter store allowing rps requests per second per
// key. A burst below 1 is raised to 1.
func NewMemoryStore(rps float64, burst int, log logging.Logger) *MemoryStore {
	if burst < 1 {
		burst = 1
	}
	return &MemoryStore{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
		log:      log,
	}
}

// Wait blocks until a request for key may proceed.
func (s *MemoryStore) Wait(ctx context.Context, key string) error {
	return s.getLimiter(key).Wait(ctx)
}

func (s *MemoryStore) getLimiter(key string) *rate.Limiter {
	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()

	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(s.rps), s.burst)
	s.limiters[key] = limiter
	s.log.Debug().
		Str(logging.FieldLayer, "adapter").
		Str(logging.FieldAdapter, "ratelimit").
		Str("key", key).
		Float64("rps", s.rps).
		Int("burst", s.burst).
		Msg("limiter created")
	return limiter
}
