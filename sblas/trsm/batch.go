// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package trsm

import "github.com/openaccel/go-streamblas/sblas"

// Batch describes how the instances of one operand are laid out in device
// memory. It is a tagged variant: Strided places instances at a fixed
// stride from a single base, PointerList references each instance through a
// pointer table. The dispatcher type-switches on the tag where the two
// differ (nullness rules, address computation).
type Batch[T sblas.Element] interface {
	// Count returns the number of instances.
	Count() int

	// At returns the resolved base slice for instance i, including the
	// layout's offset. It returns nil for a null base.
	At(i int) []T

	// null reports whether the layout's base reference is null. For
	// PointerList only the table itself is checked; per-instance entries
	// are the caller's responsibility, matching the convention that nulls
	// inside device-resident tables are not host-detectable.
	null() bool
}

// Strided lays instances out at Base[Offset+i*Stride:]. A non-batched
// operand is the Count==1, Stride==0 special case.
type Strided[T sblas.Element] struct {
	Base   []T
	Offset int64
	Stride int64
	N      int
}

func (s Strided[T]) Count() int { return s.N }

func (s Strided[T]) At(i int) []T {
	if s.Base == nil {
		return nil
	}
	off := s.Offset + int64(i)*s.Stride
	if off < 0 || off > int64(len(s.Base)) {
		return nil
	}
	return s.Base[off:]
}

func (s Strided[T]) null() bool { return s.Base == nil }

// PointerList references instance i through Ptrs[i], each advanced by a
// shared Offset.
type PointerList[T sblas.Element] struct {
	Ptrs   [][]T
	Offset int64
	N      int
}

func (p PointerList[T]) Count() int { return p.N }

func (p PointerList[T]) At(i int) []T {
	if p.Ptrs == nil || i >= len(p.Ptrs) || p.Ptrs[i] == nil {
		return nil
	}
	if p.Offset < 0 || p.Offset > int64(len(p.Ptrs[i])) {
		return nil
	}
	return p.Ptrs[i][p.Offset:]
}

func (p PointerList[T]) null() bool { return p.Ptrs == nil }
