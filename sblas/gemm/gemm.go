// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

// Package gemm provides the general matrix-multiply entry points:
// C = alpha*op(A)*op(B) + beta*C in single and strided-batched variants.
package gemm

import (
	"github.com/openaccel/go-streamblas/sblas"
	"github.com/openaccel/go-streamblas/sblas/kernel"
)

// Gemm computes C = alpha*op(A)*op(B) + beta*C with op(A) m×k, op(B) k×n,
// and C m×n, all column-major. alpha and beta follow the context's pointer
// mode. Work is enqueued asynchronously on the context's stream.
func Gemm[T sblas.Element, I sblas.Index](ctx *sblas.Context,
	transA, transB sblas.Transpose, m, n, k I,
	alpha *T, a []T, lda I, b []T, ldb I, beta *T, c []T, ldc I) sblas.Status {

	return GemmStridedBatched(ctx, transA, transB, m, n, k,
		alpha, a, lda, 0, b, ldb, 0, beta, c, ldc, 0, I(1))
}

// GemmStridedBatched runs batchCount independent multiplies at fixed
// strides from shared bases.
func GemmStridedBatched[T sblas.Element, I sblas.Index](ctx *sblas.Context,
	transA, transB sblas.Transpose, m, n, k I,
	alpha *T, a []T, lda I, strideA int64,
	b []T, ldb I, strideB int64,
	beta *T, c []T, ldc I, strideC int64, batchCount I) sblas.Status {

	mi, ni, ki := int64(m), int64(n), int64(k)
	ldai, ldbi, ldci := int64(lda), int64(ldb), int64(ldc)
	bc := int64(batchCount)

	status := validateGemm(ctx, transA, transB, mi, ni, ki,
		alpha, a == nil, ldai, b == nil, ldbi, beta, c == nil, ldci, bc)
	if status != sblas.StatusContinue {
		return status
	}

	if l := ctx.Logger(); l != nil {
		l.Debug("gemm",
			"transA", transA.String(), "transB", transB.String(),
			"m", mi, "n", ni, "k", ki,
			"lda", ldai, "ldb", ldbi, "ldc", ldci, "batch_count", bc)
	}

	hostMode := ctx.PointerMode() == sblas.PointerModeHost
	var alphaV, betaV T
	if hostMode {
		alphaV, betaV = *alpha, *beta
	}

	for i := 0; i < int(bc); i++ {
		ai := instance(a, int64(i)*strideA)
		bi := instance(b, int64(i)*strideB)
		ci := instance(c, int64(i)*strideC)
		ctx.Stream().Launch(func() error {
			av, bv := alphaV, betaV
			if !hostMode {
				av, bv = *alpha, *beta
			}
			kernel.Gemm(transA, transB, int(mi), int(ni), int(ki),
				av, ai, int(ldai), bi, int(ldbi), bv, ci, int(ldci))
			return nil
		})
	}
	return sblas.StatusSuccess
}

// instance resolves a strided-batched base slice for one instance without
// faulting on legally-nil bases.
func instance[T sblas.Element](s []T, off int64) []T {
	if s == nil || off <= 0 {
		return s
	}
	if off > int64(len(s)) {
		return nil
	}
	return s[off:]
}

// validateGemm applies the standard argument policy: shape, then enums,
// then quick return, then handle and pointer checks.
func validateGemm[T sblas.Element](ctx *sblas.Context,
	transA, transB sblas.Transpose, m, n, k int64,
	alpha *T, aNil bool, lda int64, bNil bool, ldb int64,
	beta *T, cNil bool, ldc int64, batchCount int64) sblas.Status {

	rowsA, rowsB := m, k
	if transA != sblas.NoTranspose {
		rowsA = k
	}
	if transB != sblas.NoTranspose {
		rowsB = n
	}
	if m < 0 || n < 0 || k < 0 || batchCount < 0 ||
		lda < max(rowsA, 1) || ldb < max(rowsB, 1) || ldc < max(m, 1) {
		return sblas.StatusInvalidSize
	}

	if !transA.Valid() || !transB.Valid() {
		return sblas.StatusInvalidValue
	}

	if m == 0 || n == 0 || batchCount == 0 {
		return sblas.StatusSuccess
	}

	if ctx == nil {
		return sblas.StatusInvalidHandle
	}

	if alpha == nil || beta == nil {
		return sblas.StatusInvalidPointer
	}

	if ctx.PointerMode() == sblas.PointerModeHost {
		var zero T
		one := sblas.One[T]()
		if (*alpha == zero || k == 0) && *beta == one {
			return sblas.StatusSuccess
		}
		// A and B are not touched when alpha scales them away.
		if *alpha != zero && k > 0 && (aNil || bNil) {
			return sblas.StatusInvalidPointer
		}
	}
	if cNil {
		return sblas.StatusInvalidPointer
	}

	return sblas.StatusContinue
}
