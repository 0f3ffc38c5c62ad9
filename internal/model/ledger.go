package model

import (
	"fmt"
	"strconv"
	"time"
)

// ParsedBlock holds the fields decoded from a raw block header.
type ParsedBlock struct {
	Nonce          uint32
	MajorVersion   uint8
	MinorVersion   uint8
	BlockTimestamp uint32
	Size           int
}

// LedgerEntry is one row of the nonce training ledger. Accepted and
// PredictedByIA are filled in later by the analytics pipeline; the
// extractor always writes them as false.
type LedgerEntry struct {
	Timestamp      time.Time
	Nonce          uint32
	MajorVersion   uint8
	MinorVersion   uint8
	BlockTimestamp uint32
	BlockSize      int
	BlockHash      string
	Accepted       bool
	PredictedByIA  bool
}

// LedgerColumns is the fixed CSV column order of the ledger file.
var LedgerColumns = []string{
	"timestamp",
	"nonce",
	"nonce_hex",
	"major_ver",
	"minor_ver",
	"block_timestamp",
	"block_size",
	"block_hash",
	"accepted",
	"predicted_by_ia",
}

// NewLedgerEntry builds a ledger row from a decoded block.
func NewLedgerEntry(parsed ParsedBlock, blockHash string, extractedAt time.Time) LedgerEntry {
	return LedgerEntry{
		Timestamp:      extractedAt.UTC(),
		Nonce:          parsed.Nonce,
		MajorVersion:   parsed.MajorVersion,
		MinorVersion:   parsed.MinorVersion,
		BlockTimestamp: parsed.BlockTimestamp,
		BlockSize:      parsed.Size,
		BlockHash:      blockHash,
		Accepted:       false,
		PredictedByIA:  false,
	}
}

// NonceHex renders the nonce the way the training pipeline expects it.
func (e LedgerEntry) NonceHex() string {
	return fmt.Sprintf("%#x", e.Nonce)
}

// CSVRecord renders the entry in LedgerColumns order. Booleans are
// encoded as 0/1 for compatibility with the downstream consumers.
func (e LedgerEntry) CSVRecord() []string {
	return []string{
		e.Timestamp.Format(time.RFC3339),
		strconv.FormatUint(uint64(e.Nonce), 10),
		e.NonceHex(),
		strconv.FormatUint(uint64(e.MajorVersion), 10),
		strconv.FormatUint(uint64(e.MinorVersion), 10),
		strconv.FormatUint(uint64(e.BlockTimestamp), 10),
		strconv.Itoa(e.BlockSize),
		e.BlockHash,
		csvBool(e.Accepted),
		csvBool(e.PredictedByIA),
	}
}

func csvBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
