// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package trsm

import (
	"fmt"

	"github.com/openaccel/go-streamblas/sblas"
	"github.com/openaccel/go-streamblas/sblas/kernel"
)

// invBlockStride is the distance between consecutive inverse blocks in the
// inverse buffer. Every diagonal block, including a final partial one,
// occupies a full BlockDim×BlockDim slot with leading dimension BlockDim.
const invBlockStride = BlockDim * BlockDim

// numBlocks returns the diagonal block count for a K×K triangle.
func numBlocks(k int) int {
	return (k + BlockDim - 1) / BlockDim
}

// blockExtent returns the row range [start, start+nb) of diagonal block i.
func blockExtent(k, i int) (start, nb int) {
	start = i * BlockDim
	nb = min(BlockDim, k-start)
	return start, nb
}

// invertDiagonalBlocks enqueues one inversion kernel per diagonal block of
// the K×K triangular operand, writing inverse block i into
// invA[i*invBlockStride:]. The remainder block, when K is not a multiple of
// BlockDim, is inverted into its slot at its partial extent.
//
// It fails with a resource error, before enqueueing anything, if invA was
// not sized per WorkspaceSize.
func invertDiagonalBlocks[T sblas.Element](ctx *sblas.Context, st *callState[T],
	uplo sblas.Uplo, diag sblas.Diagonal, k int, a []T, lda int, invA []T) sblas.Status {

	// The inverse buffer is a BlockDim×K column-major matrix: block i's
	// slot starts at column i*BlockDim and the final partial block only
	// occupies its nb columns, so BlockDim*K elements always suffice.
	blocks := numBlocks(k)
	if len(invA) < BlockDim*k {
		return sblas.StatusMemoryError
	}

	for i := 0; i < blocks; i++ {
		i := i
		start, nb := blockExtent(k, i)
		dst := invA[i*invBlockStride:]
		ctx.Stream().Launch(func() error {
			if st.zero {
				return nil
			}
			diagOff := start*lda + start
			if diagOff >= len(a) {
				return fmt.Errorf("trsm: triangular operand out of range at block %d", i)
			}
			kernel.InvertTriangle(uplo, diag, nb, a[diagOff:], lda, dst, BlockDim)
			return nil
		})
	}
	return sblas.StatusSuccess
}
