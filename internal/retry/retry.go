// Package retry wraps transient provider calls (search, delivery) with a
// bounded retry loop.
package retry

import (
	"context"
	"fmt"
	"time"
)

type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // doubles the delay after each failure
}

// WithRetry runs fn until it succeeds, the attempts run out, or the
// context is cancelled.
func WithRetry(ctx context.Context, config RetryConfig, fn func() error) error {
	delay := config.Delay

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if attempt >= config.MaxAttempts {
			return fmt.Errorf("failed after %d attempts: %w", config.MaxAttempts, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if config.Backoff {
			delay *= 2
		}
	}
}
