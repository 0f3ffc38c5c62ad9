// Package clock provides context-aware waiting for the extraction loop.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d or returns early with the context error
// when ctx is canceled. Every pause in the extractor (inter-run interval,
// cooldown after an unexpected failure) goes through this so a shutdown
// signal is never stuck behind a timer.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
