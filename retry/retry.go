// Package retry provides a bounded-attempt retry combinator for
// transport operations, decoupled from the pure decision engine.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Do runs op up to attempts times, waiting delay between attempts.
// It stops early when op succeeds or the context is canceled. The
// returned error wraps the last attempt's error.
func Do(ctx context.Context, attempts int, delay time.Duration, op func(context.Context) error) error {
	if attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", attempts)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
