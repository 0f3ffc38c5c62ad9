package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	fslock "github.com/ipfs/go-fs-lock"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/zartrux/nonce-extractor-backend/internal/blockparse"
	"github.com/zartrux/nonce-extractor-backend/internal/dedup"
	"github.com/zartrux/nonce-extractor-backend/internal/ledger"
	"github.com/zartrux/nonce-extractor-backend/internal/metrics"
	"github.com/zartrux/nonce-extractor-backend/internal/retry"
	"github.com/zartrux/nonce-extractor-backend/internal/service"
)

const lockFileName = "nonce-extractor.lock"

type config struct {
	StorePath     string        `long:"store-path" env:"NONCE_EXTRACTOR_STORE_PATH" description:"path to the node's block store file" required:"true"`
	StoreBucket   string        `long:"store-bucket" env:"NONCE_EXTRACTOR_STORE_BUCKET" description:"bucket holding raw block records" default:"blocks"`
	StoreLockWait time.Duration `long:"store-lock-wait" env:"NONCE_EXTRACTOR_STORE_LOCK_WAIT" description:"how long to wait for the store file lock" default:"1s"`

	LedgerPath string `long:"ledger-path" env:"NONCE_EXTRACTOR_LEDGER_PATH" description:"CSV ledger output path" default:"data/nonce_training_data.csv"`

	MaxRecords int           `long:"max-records" env:"NONCE_EXTRACTOR_MAX_RECORDS" description:"maximum new records per run" default:"40000"`
	Interval   time.Duration `long:"interval" env:"NONCE_EXTRACTOR_INTERVAL" description:"pause between extraction runs" default:"1h"`
	Cooldown   time.Duration `long:"cooldown" env:"NONCE_EXTRACTOR_COOLDOWN" description:"pause after an unexpected run failure" default:"1m"`

	MaxRetries  int           `long:"max-retries" env:"NONCE_EXTRACTOR_MAX_RETRIES" description:"store read attempts before aborting a run" default:"5"`
	BackoffUnit time.Duration `long:"backoff-unit" env:"NONCE_EXTRACTOR_BACKOFF_UNIT" description:"base unit of the retry backoff schedule" default:"1s"`

	NonceOffsets  map[string]int `long:"nonce-offset" description:"major:offset override of the nonce byte offset table"`
	DefaultOffset int            `long:"default-nonce-offset" env:"NONCE_EXTRACTOR_DEFAULT_NONCE_OFFSET" description:"nonce offset for unmapped major versions" default:"43"`

	HashWindow     int `long:"hash-window" env:"NONCE_EXTRACTOR_HASH_WINDOW" description:"recent hash window capacity" default:"1000"`
	ReadsPerSecond int `long:"reads-per-second" env:"NONCE_EXTRACTOR_READS_PER_SECOND" description:"cursor read pacing, 0 = unlimited" default:"0"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("nonce extractor failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if _, err := os.Stat(cfg.StorePath); err != nil {
		return fmt.Errorf("block store path: %w", err)
	}

	table, err := offsetTable(cfg)
	if err != nil {
		return err
	}

	ledgerDir := filepath.Dir(cfg.LedgerPath)
	if err := os.MkdirAll(ledgerDir, 0o755); err != nil {
		return fmt.Errorf("ensure ledger directory: %w", err)
	}

	// One extractor per store/ledger pair: a second instance refuses to
	// start instead of racing the ledger file.
	unlocker, err := fslock.Lock(ledgerDir, lockFileName)
	if err != nil {
		le := fslock.LockedError("")
		if errors.As(err, &le) {
			return fmt.Errorf("another extractor already owns %s: %w", cfg.LedgerPath, err)
		}
		return fmt.Errorf("acquire extractor lock: %w", err)
	}
	defer func() {
		if err := unlocker.Close(); err != nil {
			logger.Warn("release extractor lock failed", zap.Error(err))
		}
	}()

	index := ledger.LoadNonceIndex(cfg.LedgerPath, logger.Named("index"))
	logger.Info("existing ledger scanned",
		zap.String("path", cfg.LedgerPath),
		zap.Int("known_nonces", index.Len()))

	window, err := dedup.NewWindow(cfg.HashWindow)
	if err != nil {
		return err
	}
	retrier, err := retry.New(cfg.MaxRetries, cfg.BackoffUnit, logger.Named("retry"))
	if err != nil {
		return err
	}

	m := metrics.NewExtractor(cfg.StoreBucket)

	extractor, err := service.NewExtractor(
		service.NewBoltOpener(cfg.StorePath, cfg.StoreBucket, cfg.StoreLockWait),
		blockparse.NewParser(table),
		window,
		retrier,
		m,
		logger.Named("extractor"),
		service.ExtractorConfig{
			MaxRecordsPerRun: cfg.MaxRecords,
			ReadsPerSecond:   cfg.ReadsPerSecond,
		},
	)
	if err != nil {
		return err
	}

	writer, err := ledger.NewWriter(cfg.LedgerPath, logger.Named("ledger"))
	if err != nil {
		return err
	}

	scheduler, err := service.NewScheduler(extractor, writer, m, logger.Named("scheduler"), service.SchedulerConfig{
		Interval: cfg.Interval,
		Cooldown: cfg.Cooldown,
	})
	if err != nil {
		return err
	}

	logger.Info("starting extraction loop",
		zap.String("store", cfg.StorePath),
		zap.String("bucket", cfg.StoreBucket),
		zap.String("ledger", cfg.LedgerPath),
		zap.Duration("interval", cfg.Interval))

	return scheduler.Run(ctx)
}

// offsetTable builds the nonce offset table from flags. Overrides are
// merged over the production table, so an override for one version
// leaves the other mapped versions intact.
func offsetTable(cfg config) (blockparse.OffsetTable, error) {
	overrides := make(map[uint8]int, len(cfg.NonceOffsets))
	for key, offset := range cfg.NonceOffsets {
		major, err := strconv.ParseUint(key, 10, 8)
		if err != nil {
			return blockparse.OffsetTable{}, fmt.Errorf("nonce offset key %q is not a major version: %w", key, err)
		}
		overrides[uint8(major)] = offset
	}
	return blockparse.DefaultOffsetTable().WithOverrides(overrides, cfg.DefaultOffset)
}
