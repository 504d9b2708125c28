// Package ratelimiter caps how often an outbound call may be made.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter blocks until another operation is allowed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows limit operations per fixed window of length interval.
// It is safe for concurrent use.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
	now       func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a RateLimiter. A limit <= 0 disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Wait reserves a slot in the current or a following window and sleeps until
// that window opens. It returns ctx.Err() if ctx ends first; the slot is kept.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 || rl.interval <= 0 {
		return ctx.Err()
	}

	sleep := rl.reserve()
	if sleep <= 0 {
		return ctx.Err()
	}

	slog.Debug("rate limit reached, waiting", "limit", rl.limit, "sleep", sleep)

	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// roll forward past every elapsed window
	for now.Sub(rl.lastReset) >= rl.interval {
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count = 0
	}
	// window full: move into the next one
	for rl.count >= rl.limit {
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count -= rl.limit
	}
	rl.count++
	return rl.lastReset.Sub(now)
}
