// Package retry runs an operation again after a backoff delay until it
// succeeds, fails with a non-retryable error, or runs out of attempts.
package retry

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultBaseDelay = time.Second
	defaultMaxDelay  = 30 * time.Second
)

// Backoff returns the delay to wait after a failed attempt. The first failed
// attempt is 0.
type Backoff func(attempt int) time.Duration

// ShouldRetry reports whether the error is worth another attempt.
type ShouldRetry func(error) bool

type Config struct {
	MaxAttempts int
	Backoff     Backoff
	ShouldRetry ShouldRetry
}

func (c *Config) normalize() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 1
	}
	if c.Backoff == nil {
		c.Backoff = CappedExponential(defaultBaseDelay, defaultMaxDelay)
	}
	if c.ShouldRetry == nil {
		c.ShouldRetry = func(error) bool { return true }
	}
}

// CappedExponential doubles the base delay on each attempt and never exceeds
// max: base, 2*base, 4*base, ... capped.
func CappedExponential(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := base << attempt
		if d > max || d <= 0 {
			return max
		}
		return d
	}
}

// Do runs fn under the retry policy c.
func Do(ctx context.Context, c Config, fn func() error) error {
	_, err := DoWithResult(ctx, c, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult runs fn under the retry policy c and returns its result.
// The context is checked before each attempt and during backoff waits.
func DoWithResult[T any](ctx context.Context, c Config, fn func() (T, error)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	c.normalize()

	var err error
	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		var result T
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !c.ShouldRetry(err) || attempt == c.MaxAttempts-1 {
			return zero, err
		}

		timer := time.NewTimer(c.Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}

	return zero, err
}
