// Package ratelimit paces outbound requests against the portal.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter blocks until the next request is allowed to proceed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// FixedDelay enforces a minimum interval between consecutive requests.
// The first call never blocks.
type FixedDelay struct {
	interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

// NewFixedDelay creates a limiter with the given spacing. A zero or
// negative interval disables pacing.
func NewFixedDelay(interval time.Duration) *FixedDelay {
	return &FixedDelay{interval: interval}
}

// Wait blocks until the interval since the previous request has
// elapsed, or the context is cancelled.
func (f *FixedDelay) Wait(ctx context.Context) error {
	f.mu.Lock()
	now := time.Now()
	var wait time.Duration
	if !f.last.IsZero() {
		if elapsed := now.Sub(f.last); elapsed < f.interval {
			wait = f.interval - elapsed
		}
	}
	f.last = now.Add(wait)
	f.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
