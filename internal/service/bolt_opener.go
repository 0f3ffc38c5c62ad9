package service

import (
	"time"

	"github.com/zartrux/nonce-extractor-backend/internal/store"
)

// NewBoltOpener adapts the bbolt block store to the walker's interfaces.
// Every Open acquires a fresh read-only handle; the handle lives for one
// extraction run.
func NewBoltOpener(path, bucket string, lockTimeout time.Duration) StoreOpener {
	return boltOpener{path: path, bucket: bucket, lockTimeout: lockTimeout}
}

type boltOpener struct {
	path        string
	bucket      string
	lockTimeout time.Duration
}

func (o boltOpener) Open() (BlockStore, error) {
	st, err := store.Open(o.path, o.bucket, o.lockTimeout)
	if err != nil {
		return nil, err
	}
	return boltStore{st}, nil
}

type boltStore struct {
	*store.Bolt
}

func (s boltStore) Begin() (BlockCursor, error) {
	cur, err := s.Bolt.Begin()
	if err != nil {
		return nil, err
	}
	return cur, nil
}
