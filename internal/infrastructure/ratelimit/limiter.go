package ratelimit

import (
	"context"
	"fmt"
	"time"

	"wallet-checkpoint-monitor/internal/infrastructure/config"

	"go.uber.org/ratelimit"
)

// Limiter paces outgoing explorer requests. Wait is called before every
// request and blocks until the request may go out.
type Limiter interface {
	Wait(ctx context.Context) error
}

// SleepFunc suspends for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// FixedDelay waits the same delay before every request, the first included.
// It holds no state, so concurrent report cycles each pace themselves.
type FixedDelay struct {
	delay time.Duration
	sleep SleepFunc
}

// NewFixedDelay creates a fixed delay limiter
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay, sleep: sleepContext}
}

// NewFixedDelayWithSleep creates a fixed delay limiter with a custom sleeper
func NewFixedDelayWithSleep(delay time.Duration, sleep SleepFunc) *FixedDelay {
	return &FixedDelay{delay: delay, sleep: sleep}
}

// Wait implements Limiter
func (f *FixedDelay) Wait(ctx context.Context) error {
	if f.delay <= 0 {
		return ctx.Err()
	}
	return f.sleep(ctx, f.delay)
}

// Delay returns the configured delay
func (f *FixedDelay) Delay() time.Duration {
	return f.delay
}

// TokenBucket spaces requests at most one per interval across every caller
// sharing it
type TokenBucket struct {
	limiter ratelimit.Limiter
}

// NewTokenBucket creates a limiter allowing one request per interval
func NewTokenBucket(interval time.Duration) *TokenBucket {
	if interval <= 0 {
		return &TokenBucket{limiter: ratelimit.NewUnlimited()}
	}
	return &TokenBucket{
		limiter: ratelimit.New(1, ratelimit.Per(interval), ratelimit.WithoutSlack),
	}
}

// Wait implements Limiter
func (t *TokenBucket) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.limiter.Take()
	return ctx.Err()
}

// New builds the limiter selected by the explorer configuration
func New(cfg *config.ExplorerConfig) (Limiter, error) {
	switch cfg.RateLimitPolicy {
	case "", config.RateLimitFixedDelay:
		return NewFixedDelay(cfg.RequestDelay), nil
	case config.RateLimitTokenBucket:
		return NewTokenBucket(cfg.RequestDelay), nil
	default:
		return nil, fmt.Errorf("unknown rate limit policy %q", cfg.RateLimitPolicy)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
