package ledger

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// NonceIndex is the set of nonce values already present in the ledger.
// It is an advisory resume aid for downstream consumers, not a duplicate
// filter: within-run deduplication is the hash window's job.
type NonceIndex map[uint32]struct{}

// Contains reports whether the nonce was seen in the ledger at load time.
func (idx NonceIndex) Contains(nonce uint32) bool {
	_, ok := idx[nonce]
	return ok
}

// Len returns the number of distinct nonces in the index.
func (idx NonceIndex) Len() int { return len(idx) }

// LoadNonceIndex parses the ledger file and collects every well-formed
// nonce value. Loading is best-effort: a missing file yields an empty
// index, malformed rows are logged and skipped, and an unusable header
// degrades to an empty index rather than failing startup.
func LoadNonceIndex(path string, logger *zap.Logger) NonceIndex {
	index := NonceIndex{}

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("existing ledger unreadable, starting with empty index",
				zap.String("path", path), zap.Error(err))
		}
		return index
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			logger.Warn("ledger header unreadable, starting with empty index",
				zap.String("path", path), zap.Error(err))
		}
		return index
	}

	nonceCol := columnIndex(header, "nonce")
	hashCol := columnIndex(header, "block_hash")
	if nonceCol < 0 || hashCol < 0 {
		logger.Warn("ledger header missing nonce/block_hash columns, starting with empty index",
			zap.String("path", path),
			zap.Strings("header", header))
		return index
	}

	malformed := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			malformed++
			logger.Debug("skipping unparsable ledger row", zap.Error(err))
			continue
		}
		if nonceCol >= len(row) {
			malformed++
			continue
		}
		nonce, err := strconv.ParseUint(row[nonceCol], 10, 32)
		if err != nil {
			malformed++
			continue
		}
		index[uint32(nonce)] = struct{}{}
	}

	if malformed > 0 {
		logger.Warn("skipped malformed ledger rows while loading nonce index",
			zap.Int("rows", malformed),
			zap.String("path", path))
	}
	return index
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}
