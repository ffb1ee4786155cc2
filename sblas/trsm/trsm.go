// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package trsm

import (
	"github.com/openaccel/go-streamblas/sblas"
	"github.com/openaccel/go-streamblas/sblas/kernel"
)

// Solve computes op(A)·X = alpha·B (side == Left) or X·op(A) = alpha·B
// (side == Right), overwriting B with X. A is the K×K triangular operand
// (K = m for Left, K = n for Right) and B is m×n, both column-major.
// alpha follows the context's pointer mode. Workspace, when the shape needs
// any, comes from the context's arena.
//
// The call validates synchronously and enqueues asynchronously: a
// StatusSuccess return means the whole solve is on the stream, not that it
// has run. Synchronize the stream before reading B.
func Solve[T sblas.Element, I sblas.Index](ctx *sblas.Context,
	side sblas.Side, uplo sblas.Uplo, trans sblas.Transpose, diag sblas.Diagonal,
	m, n I, alpha *T, a []T, lda I, b []T, ldb I) sblas.Status {

	return SolveWithWorkspace(ctx, side, uplo, trans, diag, m, n, alpha,
		a, lda, b, ldb, nil, SolveOptions{})
}

// SolveWithWorkspace is Solve with an explicit workspace bundle and
// options. ws may be nil to use the arena. A supplied ws must satisfy
// WorkspaceSize for the call's shape; an undersized bundle fails with
// StatusMemoryError before anything is enqueued.
func SolveWithWorkspace[T sblas.Element, I sblas.Index](ctx *sblas.Context,
	side sblas.Side, uplo sblas.Uplo, trans sblas.Transpose, diag sblas.Diagonal,
	m, n I, alpha *T, a []T, lda I, b []T, ldb I,
	ws *Workspace[T], opts SolveOptions) sblas.Status {

	aBatch := Strided[T]{Base: a, N: 1}
	bBatch := Strided[T]{Base: b, N: 1}
	return SolveBatch(ctx, side, uplo, trans, diag, int64(m), int64(n), alpha,
		aBatch, int64(lda), bBatch, int64(ldb), ws, opts)
}

// SolveStridedBatched solves batchCount independent instances whose
// operands sit at fixed strides from shared bases: instance i uses
// a[i*strideA:] and b[i*strideB:].
func SolveStridedBatched[T sblas.Element, I sblas.Index](ctx *sblas.Context,
	side sblas.Side, uplo sblas.Uplo, trans sblas.Transpose, diag sblas.Diagonal,
	m, n I, alpha *T, a []T, lda I, strideA int64, b []T, ldb I, strideB int64,
	batchCount I) sblas.Status {

	aBatch := Strided[T]{Base: a, Stride: strideA, N: int(batchCount)}
	bBatch := Strided[T]{Base: b, Stride: strideB, N: int(batchCount)}
	return SolveBatch(ctx, side, uplo, trans, diag, int64(m), int64(n), alpha,
		aBatch, int64(lda), bBatch, int64(ldb), nil, SolveOptions{})
}

// SolveBatched solves batchCount independent instances referenced through
// pointer tables: instance i uses a[i] and b[i].
func SolveBatched[T sblas.Element, I sblas.Index](ctx *sblas.Context,
	side sblas.Side, uplo sblas.Uplo, trans sblas.Transpose, diag sblas.Diagonal,
	m, n I, alpha *T, a [][]T, lda I, b [][]T, ldb I, batchCount I) sblas.Status {

	aBatch := PointerList[T]{Ptrs: a, N: int(batchCount)}
	bBatch := PointerList[T]{Ptrs: b, N: int(batchCount)}
	return SolveBatch(ctx, side, uplo, trans, diag, int64(m), int64(n), alpha,
		aBatch, int64(lda), bBatch, int64(ldb), nil, SolveOptions{})
}

// SolveBatch is the full-control entry point: operands are described by
// Batch layouts (strided or pointer-list, with offsets for sub-matrix
// solves), and the workspace bundle may be caller-owned. The other Solve
// variants are thin wrappers over it.
func SolveBatch[T sblas.Element](ctx *sblas.Context,
	side sblas.Side, uplo sblas.Uplo, trans sblas.Transpose, diag sblas.Diagonal,
	m, n int64, alpha *T, a Batch[T], lda int64, b Batch[T], ldb int64,
	ws *Workspace[T], opts SolveOptions) sblas.Status {

	if a.Count() != b.Count() {
		return sblas.StatusInvalidValue
	}
	count := int64(b.Count())

	status := validateSolve(ctx, side, uplo, trans, diag, m, n, alpha, a, lda, b, ldb, count)
	if status != sblas.StatusContinue {
		return status
	}

	if l := ctx.Logger(); l != nil {
		l.Debug("trsm",
			"side", side.String(), "uplo", uplo.String(),
			"trans", trans.String(), "diag", diag.String(),
			"m", m, "n", n, "lda", lda, "ldb", ldb,
			"batch_count", count, "pointer_mode", ctx.PointerMode().String())
	}

	mi, ni := int(m), int(n)
	ldai, ldbi := int(lda), int(ldb)
	bc := int(count)
	k := mi
	if side == sblas.Right {
		k = ni
	}

	// Host-mode zero alpha: the result is the zero matrix and A is never
	// read, even when its pointer is invalid.
	var zero T
	if av, ok := sblas.HostScalar(ctx, alpha); ok && av == zero {
		for i := 0; i < bc; i++ {
			bi := b.At(i)
			ctx.Stream().Launch(func() error {
				kernel.ZeroMatrix(mi, ni, bi, ldbi)
				return nil
			})
		}
		return sblas.StatusSuccess
	}

	st := &callState[T]{}
	deferredAlpha := false
	if av, ok := sblas.HostScalar(ctx, alpha); ok {
		st.alpha = av
	} else {
		// Device-resident alpha: dereferenced on-stream only.
		deferredAlpha = true
	}

	var suppliedInvABytes int64
	if ws != nil && ws.InvASupplied {
		suppliedInvABytes = int64(len(ws.InvA)) * sblas.ElementSize[T]()
	}
	sizes, szStatus := WorkspaceSize[T](side, trans, m, n, count, suppliedInvABytes)
	if szStatus != sblas.StatusSuccess && szStatus != sblas.StatusContinue {
		return szStatus
	}

	launchAlphaRead := func() {
		if !deferredAlpha {
			return
		}
		ctx.Stream().Launch(func() error {
			st.alpha = *alpha
			st.zero = st.alpha == zero
			return nil
		})
	}

	// Substitution path: single-block triangles need no workspace.
	if szStatus == sblas.StatusContinue {
		launchAlphaRead()
		for i := 0; i < bc; i++ {
			solveSubstitution(ctx, st, side, uplo, trans, diag,
				mi, ni, a.At(i), ldai, b.At(i), ldbi)
		}
		return sblas.StatusSuccess
	}

	// Workspace acquisition: caller bundle or arena, never both.
	fullInst := mi * ni
	stripeW := ni
	if side == sblas.Left {
		stripeW = min(ni, BlockDim)
	}
	stripeH := mi
	if side == sblas.Right {
		stripeH = min(mi, BlockDim)
	}
	stripeInst := mi * stripeW
	if side == sblas.Right {
		stripeInst = stripeH * ni
	}
	invInst := BlockDim * k

	var optimal bool
	if ws != nil {
		var st2 sblas.Status
		optimal, st2 = planSuppliedWorkspace(ws, opts.Policy, bc, fullInst, stripeInst, invInst)
		if st2 != sblas.StatusSuccess {
			return st2
		}
	} else {
		alloc := sizes
		switch opts.Policy {
		case PolicyMinimalMemory:
			alloc.XTmpBytes = alloc.XTmpBackupBytes
			optimal = false
		default:
			optimal = true
		}
		var err error
		ws, err = AllocWorkspace[T](ctx.Arena(), alloc)
		if err != nil && opts.Policy == PolicyAuto {
			// Fall back to the stripe-sized temporary.
			alloc.XTmpBytes = alloc.XTmpBackupBytes
			optimal = false
			ws, err = AllocWorkspace[T](ctx.Arena(), alloc)
		}
		if err != nil {
			return sblas.StatusMemoryError
		}
		// The stream's in-order execution guarantees the launches drain
		// before any later call can be handed the same bytes.
		defer ws.Release(ctx.Arena())
	}

	launchAlphaRead()

	xtmpInst := stripeInst
	stripe := stripeW
	if side == sblas.Right {
		stripe = stripeH
	}
	if optimal {
		xtmpInst = fullInst
		if side == sblas.Left {
			stripe = ni
		} else {
			stripe = mi
		}
	}

	for i := 0; i < bc; i++ {
		ai := a.At(i)
		bi := b.At(i)
		xtmp := ws.XTmp[i*xtmpInst : (i+1)*xtmpInst]
		inv := ws.InvA[i*invInst : (i+1)*invInst]
		if i < len(ws.XTmpArr) {
			ws.XTmpArr[i] = xtmp
		}
		if i < len(ws.InvAArr) {
			ws.InvAArr[i] = inv
		}

		if !ws.InvASupplied {
			if st2 := invertDiagonalBlocks(ctx, st, uplo, diag, k, ai, ldai, inv); st2 != sblas.StatusSuccess {
				return st2
			}
		}
		solveBlocked(ctx, st, side, uplo, trans, mi, ni, ai, ldai, bi, ldbi, inv, xtmp, stripe)
	}
	return sblas.StatusSuccess
}

// planSuppliedWorkspace checks a caller-owned bundle against the call's
// needs and picks the memory path. It reports optimal=true when the bundle
// covers the full temporary result.
func planSuppliedWorkspace[T sblas.Element](ws *Workspace[T], policy MemoryPolicy,
	bc, fullInst, stripeInst, invInst int) (bool, sblas.Status) {

	capXTmp := len(ws.XTmp)
	if len(ws.InvA) < bc*invInst {
		return false, sblas.StatusMemoryError
	}
	switch policy {
	case PolicyOptimal:
		if capXTmp < bc*fullInst {
			return false, sblas.StatusMemoryError
		}
		return true, sblas.StatusSuccess
	case PolicyMinimalMemory:
		if capXTmp < bc*stripeInst {
			return false, sblas.StatusMemoryError
		}
		return false, sblas.StatusSuccess
	default:
		if capXTmp >= bc*fullInst {
			return true, sblas.StatusSuccess
		}
		if capXTmp >= bc*stripeInst {
			return false, sblas.StatusSuccess
		}
		return false, sblas.StatusMemoryError
	}
}
