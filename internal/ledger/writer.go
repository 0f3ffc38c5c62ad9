// Package ledger persists decoded block records to the append-only CSV
// ledger consumed by the analytics pipeline.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zartrux/nonce-extractor-backend/internal/model"
)

// PersistenceError reports a failed ledger append. The failing batch is
// not retried; if a ledger file existed it has been rotated aside to
// BackupPath so the next run starts from a clean file.
type PersistenceError struct {
	Path       string
	BackupPath string
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.BackupPath != "" {
		return fmt.Sprintf("ledger append to %s failed (rotated to %s): %v", e.Path, e.BackupPath, e.Err)
	}
	return fmt.Sprintf("ledger append to %s failed: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistenceError reports whether err is a failed ledger append.
func IsPersistenceError(err error) bool {
	var persistErr *PersistenceError
	return errors.As(err, &persistErr)
}

// Writer appends ledger entries to a CSV file, creating the file and its
// header row on first use. Entries are written in the order received.
type Writer struct {
	path   string
	logger *zap.Logger

	// seams for tests
	openFile func(name string, flag int, perm os.FileMode) (*os.File, error)
	now      func() time.Time
}

// NewWriter builds a writer for the given ledger path.
func NewWriter(path string, logger *zap.Logger) (*Writer, error) {
	if path == "" {
		return nil, errors.New("ledger path must not be empty")
	}
	return &Writer{
		path:     path,
		logger:   logger,
		openFile: os.OpenFile,
		now:      time.Now,
	}, nil
}

// Path returns the ledger file location.
func (w *Writer) Path() string { return w.path }

// Append writes the batch to the ledger in order. On any I/O failure the
// existing ledger is rotated to a timestamped backup and a
// PersistenceError is returned; the batch itself is dropped.
func (w *Writer) Append(entries []model.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	if err := w.append(entries); err != nil {
		backupPath, backupErr := w.rotateToBackup()
		if backupErr != nil {
			w.logger.Error("ledger backup rotation failed", zap.Error(backupErr))
		}
		return &PersistenceError{Path: w.path, BackupPath: backupPath, Err: err}
	}

	w.logger.Info("ledger batch appended",
		zap.Int("entries", len(entries)),
		zap.String("path", w.path))
	return nil
}

func (w *Writer) append(entries []model.LedgerEntry) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("ensure ledger directory: %w", err)
	}

	_, statErr := os.Stat(w.path)
	writeHeader := os.IsNotExist(statErr)
	if statErr != nil && !os.IsNotExist(statErr) {
		return fmt.Errorf("stat ledger: %w", statErr)
	}

	f, err := w.openFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	cw := csv.NewWriter(f)
	if writeHeader {
		if err := cw.Write(model.LedgerColumns); err != nil {
			_ = f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, entry := range entries {
		if err := cw.Write(entry.CSVRecord()); err != nil {
			_ = f.Close()
			return fmt.Errorf("write entry %s: %w", entry.BlockHash, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	return nil
}

// rotateToBackup renames the current ledger, when present, to a
// timestamp-suffixed sibling. Returns the backup path or "" when there
// was nothing to rotate.
func (w *Writer) rotateToBackup() (string, error) {
	if _, err := os.Stat(w.path); err != nil {
		if os.IsNotExist(err) {
			w.logger.Warn("no ledger file to back up", zap.String("path", w.path))
			return "", nil
		}
		return "", fmt.Errorf("stat ledger for backup: %w", err)
	}

	backupPath := w.backupPath(w.now())
	if err := os.Rename(w.path, backupPath); err != nil {
		return "", fmt.Errorf("rename ledger to backup: %w", err)
	}

	w.logger.Warn("ledger rotated to backup",
		zap.String("path", w.path),
		zap.String("backup", backupPath))
	return backupPath, nil
}

func (w *Writer) backupPath(at time.Time) string {
	dir := filepath.Dir(w.path)
	base := filepath.Base(w.path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".csv"
	}
	return filepath.Join(dir, fmt.Sprintf("%s.backup_%s%s", stem, at.Format("20060102_150405"), ext))
}
