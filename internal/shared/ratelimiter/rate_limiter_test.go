package ratelimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, time.Minute)
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestRateLimiter_ReserveSchedulesNextWindow(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	rl := NewRateLimiter(2, time.Minute)
	rl.lastReset = base
	rl.now = func() time.Time { return now }

	assert.LessOrEqual(t, rl.reserve(), time.Duration(0))
	assert.LessOrEqual(t, rl.reserve(), time.Duration(0))
	assert.Equal(t, time.Minute, rl.reserve(), "third call waits for the next window")
	assert.Equal(t, time.Minute, rl.reserve())
	assert.Equal(t, 2*time.Minute, rl.reserve(), "fifth call lands two windows out")

	now = base.Add(3 * time.Minute)
	assert.LessOrEqual(t, rl.reserve(), time.Duration(0), "all reservations have elapsed")
}

func TestRateLimiter_WaitHonorsContext(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, time.Hour)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRateLimiter_Disabled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		require.NoError(t, rl.Wait(context.Background()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rl.Wait(ctx), context.Canceled)
}

func TestRateLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1000, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rl.Wait(context.Background()))
		}()
	}
	wg.Wait()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Equal(t, 50, rl.count)
}
