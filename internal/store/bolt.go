// Package store reads raw block records out of the embedded bbolt block
// store. Access is strictly read-only; the store is owned and written by
// the node, the extractor only ever walks it.
package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// DefaultBucket is the bucket the node writes raw block records into.
const DefaultBucket = "blocks"

// AccessError classifies a store-level failure. Access errors are
// transient from the extractor's point of view and are the only errors
// the retry controller will retry.
type AccessError struct {
	Op  string
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("block store %s: %v", e.Op, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// IsAccessError reports whether err is a store access failure.
func IsAccessError(err error) bool {
	var accessErr *AccessError
	return errors.As(err, &accessErr)
}

// Bolt is a read-only handle to the node's bbolt block store.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
}

// Open opens the store read-only. The lock timeout bounds how long we
// wait for the file lock so a busy node cannot stall a run indefinitely.
func Open(path, bucket string, lockTimeout time.Duration) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		ReadOnly: true,
		Timeout:  lockTimeout,
	})
	if err != nil {
		return nil, &AccessError{Op: "open", Err: err}
	}
	return &Bolt{db: db, bucket: []byte(bucket)}, nil
}

// Close releases the store handle.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// Begin starts a read transaction and returns a cursor positioned before
// the newest record. The caller must Close the cursor to release the
// transaction.
func (b *Bolt) Begin() (*Cursor, error) {
	tx, err := b.db.Begin(false)
	if err != nil {
		return nil, &AccessError{Op: "begin read transaction", Err: err}
	}
	bkt := tx.Bucket(b.bucket)
	if bkt == nil {
		_ = tx.Rollback()
		return nil, &AccessError{Op: "open bucket", Err: fmt.Errorf("bucket %q not found", b.bucket)}
	}
	return &Cursor{tx: tx, cursor: bkt.Cursor()}, nil
}

// Cursor walks block records from newest to oldest. Values are copied
// out of the store's memory map, so they stay valid after Close.
type Cursor struct {
	tx     *bolt.Tx
	cursor *bolt.Cursor
}

// Last positions the cursor on the most recently inserted record and
// returns its value. ok is false when the store is empty.
func (c *Cursor) Last() ([]byte, bool, error) {
	key, value := c.cursor.Last()
	if key == nil {
		return nil, false, nil
	}
	return copyValue(value), true, nil
}

// Prev steps the cursor one record toward older history. ok is false
// once the beginning of the store is reached.
func (c *Cursor) Prev() ([]byte, bool, error) {
	key, value := c.cursor.Prev()
	if key == nil {
		return nil, false, nil
	}
	return copyValue(value), true, nil
}

// Close ends the read transaction.
func (c *Cursor) Close() error {
	return c.tx.Rollback()
}

func copyValue(value []byte) []byte {
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
