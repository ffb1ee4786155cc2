// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package trsm

import (
	"github.com/openaccel/go-streamblas/sblas"
	"github.com/openaccel/go-streamblas/sblas/kernel"
)

// MemoryPolicy selects between the workspace-backed single-pass solve and
// the stripe-by-stripe minimal-memory solve.
type MemoryPolicy int

const (
	// PolicyAuto uses the optimal path when the workspace (or arena)
	// covers the full temporary result, and falls back to minimal memory
	// otherwise.
	PolicyAuto MemoryPolicy = iota

	// PolicyOptimal requires the full-size temporary and fails with a
	// memory error rather than falling back.
	PolicyOptimal

	// PolicyMinimalMemory always processes the right-hand side in
	// BlockDim-wide stripes, trading workspace for extra launches.
	PolicyMinimalMemory
)

// SolveOptions carries per-call tuning for the solve variants.
type SolveOptions struct {
	Policy MemoryPolicy
}

// callState is shared by every launch of one call tree. It is written
// either synchronously before the first launch (host pointer mode) or by
// the first launched closure (device pointer mode); stream ordering makes
// it visible to every later closure.
type callState[T sblas.Element] struct {
	alpha T

	// zero records a device-resident alpha that turned out to be zero:
	// the output is a plain zero-fill and no launch may read A.
	zero bool
}

// solveSubstitution enqueues the direct substitution path for a triangle
// that fits in one block. No workspace is used.
func solveSubstitution[T sblas.Element](ctx *sblas.Context, st *callState[T],
	side sblas.Side, uplo sblas.Uplo, trans sblas.Transpose, diag sblas.Diagonal,
	m, n int, a []T, lda int, b []T, ldb int) {

	ctx.Stream().Launch(func() error {
		kernel.SolveSubstitution(side, uplo, trans, diag, m, n, st.alpha, a, lda, b, ldb)
		return nil
	})
}

// solveBlocked enqueues the blocked solve for one instance: scale B by
// alpha, then per stripe walk the diagonal blocks in dependency order,
// multiplying by the inverted block and rank-updating the unsolved
// remainder, accumulating into xtmp before the stripe's write-back.
//
// invA must hold the block inverses (from invertDiagonalBlocks or supplied
// by the caller). stripe is the right-hand-side width (side == Left) or
// height (side == Right) processed per pass; the optimal path passes the
// full extent.
func solveBlocked[T sblas.Element](ctx *sblas.Context, st *callState[T],
	side sblas.Side, uplo sblas.Uplo, trans sblas.Transpose,
	m, n int, a []T, lda int, b []T, ldb int, invA []T, xtmp []T, stripe int) {

	stream := ctx.Stream()

	// Apply alpha up front; the rest of the chain works at scale 1.
	stream.Launch(func() error {
		if st.zero {
			kernel.ZeroMatrix(m, n, b, ldb)
			return nil
		}
		kernel.ScaleMatrix(m, n, st.alpha, b, ldb)
		return nil
	})

	k := m
	if side == sblas.Right {
		k = n
	}
	blocks := numBlocks(k)

	// The four tags fix the substitution direction once: forward when the
	// effective operand op(A) sits on the side whose first block has no
	// dependencies.
	forward := (side == sblas.Left) == ((uplo == sblas.Lower) == (trans == sblas.NoTranspose))

	one := sblas.One[T]()
	negOne := -one

	launchGemm := func(transA, transB sblas.Transpose, gm, gn, gk int,
		galpha T, ga []T, glda int, gb []T, gldb int, gbeta T, gc []T, gldc int) {
		stream.Launch(func() error {
			if st.zero {
				return nil
			}
			kernel.Gemm(transA, transB, gm, gn, gk, galpha, ga, glda, gb, gldb, gbeta, gc, gldc)
			return nil
		})
	}

	if side == sblas.Left {
		for cs := 0; cs < n; cs += stripe {
			w := min(stripe, n-cs)
			bStripe := b[cs*ldb:]
			for bi := 0; bi < blocks; bi++ {
				i := bi
				if !forward {
					i = blocks - 1 - bi
				}
				start, nb := blockExtent(k, i)

				// xtmp[start:, :] = op(invA_i) * B[start:, stripe]
				launchGemm(trans, sblas.NoTranspose, nb, w, nb,
					one, invA[i*invBlockStride:], BlockDim,
					bStripe[start:], ldb,
					zeroOf[T](), xtmp[start:], m)

				// Rank-update the unsolved rows against the solved block.
				rs, rlen := remainder(k, start, start+nb, forward)
				if rlen > 0 {
					var ablk []T
					if trans == sblas.NoTranspose {
						ablk = a[start*lda+rs:]
					} else {
						ablk = a[rs*lda+start:]
					}
					launchGemm(trans, sblas.NoTranspose, rlen, w, nb,
						negOne, ablk, lda,
						xtmp[start:], m,
						one, bStripe[rs:], ldb)
				}
			}
			cm, cw := m, w
			stream.Launch(func() error {
				if st.zero {
					return nil
				}
				kernel.CopyMatrix(cm, cw, xtmp, cm, bStripe, ldb)
				return nil
			})
		}
		return
	}

	// side == Right: X * op(A) = B, walking column blocks of A.
	for rs := 0; rs < m; rs += stripe {
		h := min(stripe, m-rs)
		bStripe := b[rs:]
		for bj := 0; bj < blocks; bj++ {
			j := bj
			if !forward {
				j = blocks - 1 - bj
			}
			start, nb := blockExtent(k, j)

			// xtmp[:, start:] = B[stripe, start:] * op(invA_j)
			launchGemm(sblas.NoTranspose, trans, h, nb, nb,
				one, bStripe[start*ldb:], ldb,
				invA[j*invBlockStride:], BlockDim,
				zeroOf[T](), xtmp[start*h:], h)

			cs, clen := remainder(k, start, start+nb, forward)
			if clen > 0 {
				var ablk []T
				if trans == sblas.NoTranspose {
					ablk = a[cs*lda+start:]
				} else {
					ablk = a[start*lda+cs:]
				}
				launchGemm(sblas.NoTranspose, trans, h, clen, nb,
					negOne, xtmp[start*h:], h,
					ablk, lda,
					one, bStripe[cs*ldb:], ldb)
			}
		}
		ch, cn := h, n
		stream.Launch(func() error {
			if st.zero {
				return nil
			}
			kernel.CopyMatrix(ch, cn, xtmp, ch, bStripe, ldb)
			return nil
		})
	}
}

// remainder returns the unsolved index range after processing the block
// [start, end) in the given direction.
func remainder(k, start, end int, forward bool) (rs, rlen int) {
	if forward {
		return end, k - end
	}
	return 0, start
}

func zeroOf[T sblas.Element]() T {
	var zero T
	return zero
}
