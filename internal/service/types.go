package service

import (
	"context"

	"github.com/zartrux/nonce-extractor-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// StoreOpener opens a fresh read-only handle to the block store.
	// Each extraction run opens and closes its own handle.
	StoreOpener interface {
		Open() (BlockStore, error)
	}

	// BlockStore is one open read-only handle to the block store.
	BlockStore interface {
		Begin() (BlockCursor, error)
		Close() error
	}

	// BlockCursor walks raw block records from newest to oldest. ok is
	// false once the store is exhausted.
	BlockCursor interface {
		Last() (value []byte, ok bool, err error)
		Prev() (value []byte, ok bool, err error)
		Close() error
	}

	// LedgerAppender persists a batch of decoded entries in order.
	LedgerAppender interface {
		Append(entries []model.LedgerEntry) error
	}

	// ExtractionRunner performs one full extraction run.
	ExtractionRunner interface {
		RunOnce(ctx context.Context) ([]model.LedgerEntry, error)
	}
)
