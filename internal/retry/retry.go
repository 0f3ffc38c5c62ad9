// Package retry bounds transient block store failures with exponential
// backoff. Only store access errors are retried; decode failures and
// other permanent conditions surface to the caller immediately.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/zartrux/nonce-extractor-backend/internal/store"
)

// maxBackoffCeiling bounds a single wait between attempts. Any schedule
// that would grow past it is clamped rather than overflowing the
// duration arithmetic for coarse units with large attempt budgets.
const maxBackoffCeiling = time.Hour

// maxBackoffWait returns the largest wait the schedule can reach with
// the given unit and attempt budget, clamped to maxBackoffCeiling.
func maxBackoffWait(unit time.Duration, maxAttempts int) time.Duration {
	wait := unit
	for i := 0; i <= maxAttempts; i++ {
		wait *= 2
		if wait >= maxBackoffCeiling || wait <= 0 {
			return maxBackoffCeiling
		}
	}
	return wait
}

// Retrier executes store operations with at most MaxAttempts tries,
// sleeping 2^attempt backoff units between consecutive tries.
type Retrier struct {
	maxAttempts int
	unit        time.Duration
	logger      *zap.Logger
}

// New builds a retrier. maxAttempts counts every invocation including
// the first; unit scales the backoff schedule (production uses seconds).
func New(maxAttempts int, unit time.Duration, logger *zap.Logger) (*Retrier, error) {
	if maxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be positive, got %d", maxAttempts)
	}
	if unit <= 0 {
		return nil, fmt.Errorf("backoff unit must be positive, got %v", unit)
	}
	return &Retrier{maxAttempts: maxAttempts, unit: unit, logger: logger}, nil
}

// Do runs op until it succeeds, exhausts the attempt budget, or fails
// with a non-retryable error. The backoff wait honors ctx cancellation.
func (r *Retrier) Do(ctx context.Context, op func() error) error {
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !store.IsAccessError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 2 * r.unit
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = maxBackoffWait(r.unit, r.maxAttempts)
	policy.MaxElapsedTime = 0
	policy.Reset()

	notify := func(err error, wait time.Duration) {
		r.logger.Warn("block store access failed, backing off",
			zap.Error(err),
			zap.Duration("backoff", wait))
	}

	return backoff.RetryNotify(
		wrapped,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx),
		notify,
	)
}
