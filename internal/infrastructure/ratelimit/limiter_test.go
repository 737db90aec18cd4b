package ratelimit

import (
	"context"
	"testing"
	"time"

	"wallet-checkpoint-monitor/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedDelayWaitsBeforeEveryCall(t *testing.T) {
	var waits []time.Duration
	limiter := NewFixedDelayWithSleep(time.Second, func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}

	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, waits)
}

func TestFixedDelayHonoursCancellation(t *testing.T) {
	limiter := NewFixedDelay(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFixedDelaySleepsForReal(t *testing.T) {
	limiter := NewFixedDelay(20 * time.Millisecond)

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestTokenBucketSpacesCalls(t *testing.T) {
	limiter := NewTokenBucket(30 * time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
	// first token is free, the next two are spaced
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestNewSelectsPolicy(t *testing.T) {
	fixed, err := New(&config.ExplorerConfig{RateLimitPolicy: config.RateLimitFixedDelay, RequestDelay: time.Second})
	require.NoError(t, err)
	require.IsType(t, &FixedDelay{}, fixed)
	assert.Equal(t, time.Second, fixed.(*FixedDelay).Delay())

	bucket, err := New(&config.ExplorerConfig{RateLimitPolicy: config.RateLimitTokenBucket, RequestDelay: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &TokenBucket{}, bucket)

	_, err = New(&config.ExplorerConfig{RateLimitPolicy: "leaky"})
	assert.Error(t, err)
}
