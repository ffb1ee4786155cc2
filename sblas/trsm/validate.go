// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package trsm

import "github.com/openaccel/go-streamblas/sblas"

// validateSolve applies the argument policy for all solve variants. The
// check order is part of the contract, since later checks assume earlier
// ones passed:
//
//  1. shape validity (negative extents, insufficient leading dimensions)
//  2. enumeration validity
//  3. quick return on any zero extent
//  4. nil context
//  5. nil required operands, with the device-mode and zero-alpha
//     exemptions for the triangular operand
//  6. nil alpha
//
// It returns StatusContinue when the caller should proceed with the solve,
// StatusSuccess for a quick return, and an error status otherwise.
func validateSolve[T sblas.Element](ctx *sblas.Context,
	side sblas.Side, uplo sblas.Uplo, trans sblas.Transpose, diag sblas.Diagonal,
	m, n int64, alpha *T, a Batch[T], lda int64, b Batch[T], ldb int64,
	batchCount int64) sblas.Status {

	k := m
	if side == sblas.Right {
		k = n
	}
	if m < 0 || n < 0 || batchCount < 0 || lda < k || ldb < m {
		return sblas.StatusInvalidSize
	}

	if !side.Valid() || !uplo.Valid() || !trans.Valid() || !diag.Valid() {
		return sblas.StatusInvalidValue
	}

	if m == 0 || n == 0 || batchCount == 0 {
		return sblas.StatusSuccess
	}

	if ctx == nil {
		return sblas.StatusInvalidHandle
	}

	if b.null() {
		return sblas.StatusInvalidPointer
	}
	if a.null() {
		// A nil triangular operand is only detectable in host pointer
		// mode, and is legal there when alpha is known to be zero (the
		// solve never reads A).
		if ctx.PointerMode() == sblas.PointerModeHost {
			av, ok := sblas.HostScalar(ctx, alpha)
			var zero T
			if !ok || av != zero {
				return sblas.StatusInvalidPointer
			}
		}
	}

	if alpha == nil {
		return sblas.StatusInvalidPointer
	}

	return sblas.StatusContinue
}
