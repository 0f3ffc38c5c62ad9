package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zartrux/nonce-extractor-backend/internal/clock"
	"github.com/zartrux/nonce-extractor-backend/internal/ledger"
	"github.com/zartrux/nonce-extractor-backend/internal/metrics"
	"github.com/zartrux/nonce-extractor-backend/internal/model"
	"github.com/zartrux/nonce-extractor-backend/internal/store"
)

// SchedulerConfig drives the periodic extraction loop.
type SchedulerConfig struct {
	// Interval separates the end of one run from the start of the next.
	Interval time.Duration
	// Cooldown delays the next run after an unexpected failure.
	Cooldown time.Duration
}

// Scheduler runs extraction cycles until the context is canceled. Known
// failure classes (store access, ledger persistence) are logged and the
// loop carries on; anything unexpected is logged and followed by a
// cooldown. The process leaves this loop only through a shutdown signal.
type Scheduler struct {
	runner  ExtractionRunner
	ledger  LedgerAppender
	metrics *metrics.Extractor
	logger  *zap.Logger
	cfg     SchedulerConfig
}

// NewScheduler builds the extraction scheduler.
func NewScheduler(
	runner ExtractionRunner,
	appender LedgerAppender,
	m *metrics.Extractor,
	logger *zap.Logger,
	cfg SchedulerConfig,
) (*Scheduler, error) {
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("run interval must be positive, got %v", cfg.Interval)
	}
	if cfg.Cooldown <= 0 {
		return nil, fmt.Errorf("cooldown must be positive, got %v", cfg.Cooldown)
	}
	return &Scheduler{
		runner:  runner,
		ledger:  appender,
		metrics: m,
		logger:  logger,
		cfg:     cfg,
	}, nil
}

// Run loops until ctx is done. Returns nil on clean shutdown.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			s.logger.Info("scheduler shutting down")
			return nil
		}

		started := time.Now()
		entries, runErr := s.safeRun(ctx)
		s.persist(entries)
		s.metrics.ObserveRun(runErr, started)

		switch {
		case runErr == nil:
			s.logger.Info("extraction run complete",
				zap.Int("entries", len(entries)),
				zap.Duration("duration", time.Since(started)))

		case errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded):
			// Shutdown observed mid-run; loop condition handles it.

		case store.IsAccessError(runErr):
			s.logger.Error("extraction run aborted on store failure",
				zap.Int("entries", len(entries)),
				zap.Duration("duration", time.Since(started)),
				zap.Error(runErr))

		default:
			s.logger.Error("unexpected extraction run failure",
				zap.Duration("duration", time.Since(started)),
				zap.Error(runErr))
			if err := clock.SleepWithContext(ctx, s.cfg.Cooldown); err != nil {
				s.logger.Info("scheduler shutting down")
				return nil
			}
			// Retry after the cooldown alone; the inter-run interval
			// applies only to runs that did not fail unexpectedly.
			continue
		}

		if err := clock.SleepWithContext(ctx, s.cfg.Interval); err != nil {
			s.logger.Info("scheduler shutting down")
			return nil
		}
	}
}

// safeRun keeps a panicking run from killing the process; the panic is
// reported as an unexpected run failure instead.
func (s *Scheduler) safeRun(ctx context.Context) (entries []model.LedgerEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction run panic: %v", r)
		}
	}()
	return s.runner.RunOnce(ctx)
}

// persist appends whatever the run produced, even after a partial
// failure. A failed append rotates the ledger aside and is not retried.
func (s *Scheduler) persist(entries []model.LedgerEntry) {
	if len(entries) == 0 {
		return
	}

	err := s.ledger.Append(entries)
	s.metrics.ObserveLedgerAppend(err)
	if err == nil {
		return
	}

	var perr *ledger.PersistenceError
	if errors.As(err, &perr) && perr.BackupPath != "" {
		s.metrics.IncLedgerBackup()
	}
	s.logger.Error("ledger append failed, batch dropped",
		zap.Int("entries", len(entries)),
		zap.Error(err))
}
