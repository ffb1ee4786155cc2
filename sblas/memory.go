// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package sblas

import (
	"fmt"
	"sync"
)

// Arena is the device-memory allocator attached to a context. It tracks a
// byte budget rather than owning a fixed slab: allocations are ordinary Go
// slices, but the arena enforces an optional limit so callers can exercise
// the memory-failure paths the same way a real device allocator would.
//
// An Arena with limit 0 never fails.
type Arena struct {
	mu    sync.Mutex
	limit int64
	used  int64
	peak  int64
}

// ErrArenaExhausted is returned when an allocation would exceed the
// arena's limit.
var ErrArenaExhausted = fmt.Errorf("sblas: arena exhausted")

// NewArena creates an arena with the given byte limit. limit <= 0 means
// unlimited.
func NewArena(limit int64) *Arena {
	if limit < 0 {
		limit = 0
	}
	return &Arena{limit: limit}
}

// SetLimit replaces the arena's byte limit. limit <= 0 means unlimited.
// Memory already in use is unaffected.
func (a *Arena) SetLimit(limit int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	a.limit = limit
}

// Limit returns the current byte limit (0 = unlimited).
func (a *Arena) Limit() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limit
}

// InUse returns the number of bytes currently reserved.
func (a *Arena) InUse() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}

// Peak returns the high-water mark of reserved bytes.
func (a *Arena) Peak() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.peak
}

// Reserve claims n bytes against the limit. It is paired with Release.
func (a *Arena) Reserve(n int64) error {
	if n < 0 {
		return fmt.Errorf("sblas: negative reservation %d", n)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.limit > 0 && a.used+n > a.limit {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use",
			ErrArenaExhausted, n, a.used, a.limit)
	}
	a.used += n
	if a.used > a.peak {
		a.peak = a.used
	}
	return nil
}

// Release returns n bytes to the arena.
func (a *Arena) Release(n int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.used -= n
	if a.used < 0 {
		a.used = 0
	}
}

// AllocSlice reserves elems*sizeof(T) bytes from the arena and returns a
// zeroed device buffer. The caller releases the same byte count when done.
func AllocSlice[T Element](a *Arena, elems int64) ([]T, error) {
	if elems <= 0 {
		return nil, nil
	}
	if err := a.Reserve(elems * ElementSize[T]()); err != nil {
		return nil, err
	}
	return make([]T, elems), nil
}
