package cache

import "sync/atomic"

// Snapshot is a lock-free container for an immutable value that is swapped in
// whole and read without coordination.
type Snapshot[T any] struct{ v atomic.Value }

type box[T any] struct{ val T }

// Load returns the stored value and whether one has been stored yet.
func (s *Snapshot[T]) Load() (T, bool) {
	v := s.v.Load()
	if v == nil {
		var zero T
		return zero, false
	}
	return v.(box[T]).val, true
}

// Store atomically swaps in the new value.
func (s *Snapshot[T]) Store(val T) {
	s.v.Store(box[T]{val: val})
}
