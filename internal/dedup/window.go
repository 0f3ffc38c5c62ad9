// Package dedup provides a bounded membership window over recently
// processed block hashes.
package dedup

import "fmt"

// Window is a fixed-capacity FIFO set of block hashes. Inserting past
// capacity evicts the oldest hash. It is a heuristic duplicate filter for
// a single run: once a hash is evicted the record it belongs to may be
// processed again. It makes no guarantee over unbounded history and must
// not be treated as authoritative deduplication.
//
// Not safe for concurrent use; each extraction run owns its own window.
type Window struct {
	slots   []string
	members map[string]int
	next    int
	filled  bool
}

// NewWindow builds a window holding up to capacity hashes.
func NewWindow(capacity int) (*Window, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("hash window capacity must be positive, got %d", capacity)
	}
	return &Window{
		slots:   make([]string, capacity),
		members: make(map[string]int, capacity),
	}, nil
}

// Contains reports whether the hash is still inside the window.
func (w *Window) Contains(hash string) bool {
	return w.members[hash] > 0
}

// Insert records a hash, evicting the oldest one when the window is full.
func (w *Window) Insert(hash string) {
	if w.filled {
		evicted := w.slots[w.next]
		if n := w.members[evicted]; n <= 1 {
			delete(w.members, evicted)
		} else {
			w.members[evicted] = n - 1
		}
	}

	w.slots[w.next] = hash
	w.members[hash]++

	w.next++
	if w.next == len(w.slots) {
		w.next = 0
		w.filled = true
	}
}

// Len returns the number of hashes currently held.
func (w *Window) Len() int {
	if w.filled {
		return len(w.slots)
	}
	return w.next
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return len(w.slots)
}
