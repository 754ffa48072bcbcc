// Package retry re-runs failing operations with exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Policy defines retry behavior.
type Policy struct {
	// MaxAttempts is the total number of calls, including the first one
	MaxAttempts int

	// InitialDelay is the delay before the first retry
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries
	MaxDelay time.Duration

	// Multiplier is the backoff multiplier (default: 2)
	Multiplier float64

	// Jitter adds up to 10% random delay
	Jitter bool

	// RetryIf determines if an error is retryable
	RetryIf func(error) bool
}

// ProviderPolicy is used for remote model calls: one retry after a short pause.
func ProviderPolicy() *Policy {
	return &Policy{
		MaxAttempts:  2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
		RetryIf:      IsRetryable,
	}
}

// NoRetry returns a policy that never retries.
func NoRetry() *Policy {
	return &Policy{MaxAttempts: 1, Multiplier: 1.0}
}

// IsRetryable reports whether err may succeed on another attempt.
// Cancellation by the caller is final; deadline errors from a single attempt are not.
func IsRetryable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// Do executes fn with retry logic.
func Do(ctx context.Context, policy *Policy, fn func() error) error {
	_, err := DoWithResult(ctx, policy, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult executes a function that returns a result with retry logic.
// The first retry waits InitialDelay; each later one waits Multiplier times longer, up to MaxDelay.
func DoWithResult[T any](ctx context.Context, policy *Policy, fn func() (T, error)) (T, error) {
	var zero T
	if policy == nil {
		policy = ProviderPolicy()
	}
	attempts := max(policy.MaxAttempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := policy.backoff(attempt)
			if policy.Jitter && wait > 0 {
				wait += time.Duration(rand.Float64() * float64(wait) * 0.1)
			}
			if err := sleep(ctx, wait); err != nil {
				return zero, fmt.Errorf("retry canceled: %w", err)
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if policy.RetryIf != nil && !policy.RetryIf(lastErr) {
			return zero, lastErr
		}
	}

	return zero, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// backoff returns the pause before retry n, counting from 1.
func (p *Policy) backoff(n int) time.Duration {
	multiplier := p.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}
	delay := p.InitialDelay
	for i := 1; i < n; i++ {
		delay = time.Duration(float64(delay) * multiplier)
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
