package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/zartrux/nonce-extractor-backend/internal/blockparse"
	"github.com/zartrux/nonce-extractor-backend/internal/dedup"
	"github.com/zartrux/nonce-extractor-backend/internal/metrics"
	"github.com/zartrux/nonce-extractor-backend/internal/model"
	"github.com/zartrux/nonce-extractor-backend/internal/retry"
)

const defaultDuplicateSkipBudget = 3

// ExtractorConfig bounds a single extraction run.
type ExtractorConfig struct {
	// MaxRecordsPerRun caps newly accepted entries per run.
	MaxRecordsPerRun int
	// DuplicateSkipBudget stops the walk after this many consecutive
	// window hits. Zero means the default of 3.
	DuplicateSkipBudget int
	// ReadsPerSecond paces cursor stepping. Zero means unlimited.
	ReadsPerSecond int
}

// Extractor walks the block store newest-to-oldest and turns raw block
// records into ledger entries. The recent-hash window lives for the whole
// process, so records already captured by an earlier run in this process
// are skipped until the window evicts them.
type Extractor struct {
	opener  StoreOpener
	parser  *blockparse.Parser
	window  *dedup.Window
	retrier *retry.Retrier
	metrics *metrics.Extractor
	logger  *zap.Logger
	limiter ratelimit.Limiter
	cfg     ExtractorConfig

	now func() time.Time
}

// NewExtractor builds the extraction service.
func NewExtractor(
	opener StoreOpener,
	parser *blockparse.Parser,
	window *dedup.Window,
	retrier *retry.Retrier,
	m *metrics.Extractor,
	logger *zap.Logger,
	cfg ExtractorConfig,
) (*Extractor, error) {
	if cfg.MaxRecordsPerRun < 1 {
		return nil, fmt.Errorf("max records per run must be positive, got %d", cfg.MaxRecordsPerRun)
	}
	if cfg.DuplicateSkipBudget < 0 {
		return nil, fmt.Errorf("duplicate skip budget must not be negative, got %d", cfg.DuplicateSkipBudget)
	}
	if cfg.DuplicateSkipBudget == 0 {
		cfg.DuplicateSkipBudget = defaultDuplicateSkipBudget
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.ReadsPerSecond > 0 {
		limiter = ratelimit.New(cfg.ReadsPerSecond)
	}

	return &Extractor{
		opener:  opener,
		parser:  parser,
		window:  window,
		retrier: retrier,
		metrics: m,
		logger:  logger,
		limiter: limiter,
		cfg:     cfg,
		now:     time.Now,
	}, nil
}

// RunOnce executes one extraction run: open the store, walk records from
// the newest backward, decode and deduplicate, and return the accepted
// entries in traversal order. A store failure aborts the walk but the
// entries accumulated so far are still returned for persistence.
func (e *Extractor) RunOnce(ctx context.Context) ([]model.LedgerEntry, error) {
	st, err := e.opener.Open()
	if err != nil {
		return nil, fmt.Errorf("open block store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			e.logger.Warn("block store close failed", zap.Error(cerr))
		}
	}()

	cur, err := st.Begin()
	if err != nil {
		return nil, fmt.Errorf("position store cursor: %w", err)
	}
	defer func() {
		if cerr := cur.Close(); cerr != nil {
			e.logger.Warn("store cursor close failed", zap.Error(cerr))
		}
	}()

	entries, err := e.walk(ctx, cur)
	e.metrics.AddExtracted(len(entries))
	return entries, err
}

func (e *Extractor) walk(ctx context.Context, cur BlockCursor) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	dupSkips := 0

	read := cur.Last
	for {
		if err := ctx.Err(); err != nil {
			e.logger.Info("walk stopped by shutdown", zap.Int("entries", len(entries)))
			return entries, nil
		}

		e.limiter.Take()

		raw, ok, err := e.readWithRetry(ctx, read)
		if err != nil {
			return entries, fmt.Errorf("read block record: %w", err)
		}
		if !ok {
			// Reached the beginning of the store.
			return entries, nil
		}
		read = cur.Prev

		sum := sha256.Sum256(raw)
		blockHash := hex.EncodeToString(sum[:])

		if e.window.Contains(blockHash) {
			e.metrics.IncDuplicateSkip()
			dupSkips++
			if dupSkips >= e.cfg.DuplicateSkipBudget {
				e.logger.Debug("duplicate skip budget exhausted",
					zap.Int("budget", e.cfg.DuplicateSkipBudget),
					zap.Int("entries", len(entries)))
				return entries, nil
			}
			continue
		}

		parsed, err := e.parser.Parse(raw)
		if err != nil {
			e.metrics.IncCorruptRecord()
			e.logger.Warn("skipping corrupt block record", zap.Error(err))
			continue
		}

		entries = append(entries, model.NewLedgerEntry(parsed, blockHash, e.now()))
		e.window.Insert(blockHash)
		dupSkips = 0

		if len(entries) >= e.cfg.MaxRecordsPerRun {
			return entries, nil
		}
	}
}

// readWithRetry performs one cursor read under the retry controller and
// reports how many extra attempts it cost.
func (e *Extractor) readWithRetry(ctx context.Context, read func() ([]byte, bool, error)) ([]byte, bool, error) {
	var (
		raw      []byte
		ok       bool
		attempts int
	)
	err := e.retrier.Do(ctx, func() error {
		attempts++
		var readErr error
		raw, ok, readErr = read()
		return readErr
	})
	if attempts > 1 {
		e.metrics.AddStoreRetries(attempts - 1)
	}
	return raw, ok, err
}
