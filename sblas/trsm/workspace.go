// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package trsm

import "github.com/openaccel/go-streamblas/sblas"

// BlockDim is the diagonal block size of the blocked solve: the triangular
// operand is partitioned into BlockDim×BlockDim diagonal blocks whose
// explicit inverses drive the multiply chain. Triangles with K <= BlockDim
// take the substitution path and need no workspace.
const BlockDim = 128

// ptrBytes is the size of one entry in a device pointer table.
const ptrBytes = 8

// WorkspaceSizes carries the exact byte counts of the five workspace parts
// for one call. Pointer-table sizes are zero for non-batched calls, and
// InvABytes is zero when the caller already owns a sufficient inverse
// buffer.
type WorkspaceSizes struct {
	// XTmpBytes is the temporary-result buffer for the multiply chain.
	XTmpBytes int64

	// XTmpArrBytes is the pointer table over per-instance temp buffers.
	XTmpArrBytes int64

	// InvABytes is the block-inverse buffer: BlockDim*K elements per
	// instance, one BlockDim×BlockDim slot per diagonal block.
	InvABytes int64

	// InvAArrBytes is the pointer table over per-instance inverse buffers.
	InvAArrBytes int64

	// XTmpBackupBytes is the minimal-memory fallback requirement: the
	// stripe-sized temp buffer that trades workspace for extra launches.
	XTmpBackupBytes int64
}

// WorkspaceSize computes the workspace requirement for a solve of the given
// shape. It is a pure function: no device memory is touched.
//
// The returned status is StatusSuccess when the sizes are exact,
// StatusContinue when the shape takes a default path needing no workspace
// (single-block triangles, and single-column non-transpose left solves up
// to two blocks), and StatusInvalidSize for negative extents.
//
// For fixed side/trans/batchCount, every returned size is monotonic in
// (m, n): callers may query once at the largest anticipated shape and reuse
// the buffers for any smaller solve. suppliedInvABytes reports an inverse
// buffer the caller already owns; when it covers the requirement the
// inverse need is reported as zero and the supplied buffer is reused.
func WorkspaceSize[T sblas.Element](side sblas.Side, trans sblas.Transpose,
	m, n, batchCount int64, suppliedInvABytes int64) (WorkspaceSizes, sblas.Status) {

	var sizes WorkspaceSizes
	if m < 0 || n < 0 || batchCount < 0 {
		return sizes, sblas.StatusInvalidSize
	}
	if m == 0 || n == 0 || batchCount == 0 {
		return sizes, sblas.StatusSuccess
	}

	k := m
	if side == sblas.Right {
		k = n
	}

	// Substitution paths need no scratch at all.
	if k <= BlockDim {
		return sizes, sblas.StatusContinue
	}
	if side == sblas.Left && trans == sblas.NoTranspose && n == 1 && k <= 2*BlockDim {
		// Skinny non-transpose solves stay on the substitution kernel.
		return sizes, sblas.StatusContinue
	}

	elem := sblas.ElementSize[T]()
	sizes.XTmpBytes = m * n * elem * batchCount
	if side == sblas.Left {
		sizes.XTmpBackupBytes = m * min(n, BlockDim) * elem * batchCount
	} else {
		sizes.XTmpBackupBytes = min(m, BlockDim) * n * elem * batchCount
	}

	invA := BlockDim * k * elem * batchCount
	if suppliedInvABytes < invA {
		sizes.InvABytes = invA
	}

	if batchCount > 1 {
		sizes.XTmpArrBytes = batchCount * ptrBytes
		if sizes.InvABytes > 0 {
			sizes.InvAArrBytes = batchCount * ptrBytes
		}
	}
	return sizes, sblas.StatusSuccess
}

// WorkspaceMaxSize returns upper bounds on the temp, inverse, and backup
// buffer sizes over every shape (m', n') with m' <= m and n' <= n and both
// transpose settings. It applies the generic formula with no default-path
// shortcuts, so it dominates WorkspaceSize for the whole shape range.
func WorkspaceMaxSize[T sblas.Element](side sblas.Side, m, n, batchCount int64) (
	xTmpBytes, invABytes, xTmpBackupBytes int64, status sblas.Status) {

	if m < 0 || n < 0 || batchCount < 0 {
		return 0, 0, 0, sblas.StatusInvalidSize
	}
	k := m
	if side == sblas.Right {
		k = n
	}
	elem := sblas.ElementSize[T]()
	xTmpBytes = m * n * elem * batchCount
	invABytes = BlockDim * k * elem * batchCount
	if side == sblas.Left {
		xTmpBackupBytes = m * min(n, BlockDim) * elem * batchCount
	} else {
		xTmpBackupBytes = min(m, BlockDim) * n * elem * batchCount
	}
	return xTmpBytes, invABytes, xTmpBackupBytes, sblas.StatusSuccess
}

// Workspace is the scratch bundle for one in-flight call tree. It is
// exclusively owned by that call: concurrent calls must not alias the same
// bundle. The pointer tables are populated per instance by the batch
// dispatcher.
type Workspace[T sblas.Element] struct {
	XTmp    []T
	XTmpArr [][]T
	InvA    []T
	InvAArr [][]T

	// InvASupplied marks InvA as holding caller-computed block inverses;
	// the solve reuses them instead of running the inverter.
	InvASupplied bool

	reserved int64
}

// AllocWorkspace reserves a bundle matching sizes from the arena. Release
// must be called on the same arena when the call tree completes.
func AllocWorkspace[T sblas.Element](arena *sblas.Arena, sizes WorkspaceSizes) (*Workspace[T], error) {
	elem := sblas.ElementSize[T]()
	total := sizes.XTmpBytes + sizes.XTmpArrBytes + sizes.InvABytes + sizes.InvAArrBytes
	if err := arena.Reserve(total); err != nil {
		return nil, err
	}
	ws := &Workspace[T]{reserved: total}
	if sizes.XTmpBytes > 0 {
		ws.XTmp = make([]T, sizes.XTmpBytes/elem)
	}
	if sizes.XTmpArrBytes > 0 {
		ws.XTmpArr = make([][]T, sizes.XTmpArrBytes/ptrBytes)
	}
	if sizes.InvABytes > 0 {
		ws.InvA = make([]T, sizes.InvABytes/elem)
	}
	if sizes.InvAArrBytes > 0 {
		ws.InvAArr = make([][]T, sizes.InvAArrBytes/ptrBytes)
	}
	return ws, nil
}

// Release returns the bundle's reservation to the arena.
func (w *Workspace[T]) Release(arena *sblas.Arena) {
	if w == nil || w.reserved == 0 {
		return
	}
	arena.Release(w.reserved)
	w.reserved = 0
}
