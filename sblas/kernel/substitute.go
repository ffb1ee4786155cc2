// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package kernel

import "github.com/openaccel/go-streamblas/sblas"

// SolveSubstitution solves op(A)·X = alpha·B (side == Left) or
// X·op(A) = alpha·B (side == Right) in place by forward/back substitution,
// overwriting B with X. A is the K×K triangular operand (K = m for Left,
// K = n for Right), column-major with leading dimension lda.
//
// This is the direct path used when the triangular dimension fits in a
// single block; it needs no workspace. alpha == 0 zero-fills B without
// reading A. For diag == Unit the stored diagonal is never read.
func SolveSubstitution[T sblas.Element](side sblas.Side, uplo sblas.Uplo,
	trans sblas.Transpose, diag sblas.Diagonal, m, n int,
	alpha T, a []T, lda int, b []T, ldb int) {

	if m <= 0 || n <= 0 {
		return
	}

	var zero T
	if alpha == zero {
		ZeroMatrix(m, n, b, ldb)
		return
	}
	ScaleMatrix(m, n, alpha, b, ldb)

	// aop reads element (i, j) of op(A).
	aop := func(i, j int) T {
		switch trans {
		case sblas.NoTranspose:
			return a[j*lda+i]
		case sblas.Trans:
			return a[i*lda+j]
		default:
			return sblas.Conj(a[i*lda+j])
		}
	}
	unit := diag == sblas.Unit

	if side == sblas.Left {
		// op(A) is lower triangular when the stored triangle and the
		// transpose agree; that fixes the substitution direction.
		opLower := (uplo == sblas.Lower) == (trans == sblas.NoTranspose)
		for j := 0; j < n; j++ {
			col := b[j*ldb:]
			if opLower {
				for i := 0; i < m; i++ {
					x := col[i]
					for p := 0; p < i; p++ {
						x -= aop(i, p) * col[p]
					}
					if !unit {
						x /= aop(i, i)
					}
					col[i] = x
				}
			} else {
				for i := m - 1; i >= 0; i-- {
					x := col[i]
					for p := i + 1; p < m; p++ {
						x -= aop(i, p) * col[p]
					}
					if !unit {
						x /= aop(i, i)
					}
					col[i] = x
				}
			}
		}
		return
	}

	// side == Right: X·op(A) = B, solved column-block by column-block.
	// Column j of X depends on prior columns when op(A) is upper
	// triangular, later columns when lower.
	opUpper := (uplo == sblas.Upper) == (trans == sblas.NoTranspose)
	if opUpper {
		for j := 0; j < n; j++ {
			col := b[j*ldb:]
			for p := 0; p < j; p++ {
				apj := aop(p, j)
				if apj == zero {
					continue
				}
				prev := b[p*ldb:]
				for i := 0; i < m; i++ {
					col[i] -= prev[i] * apj
				}
			}
			if !unit {
				d := aop(j, j)
				for i := 0; i < m; i++ {
					col[i] /= d
				}
			}
		}
	} else {
		for j := n - 1; j >= 0; j-- {
			col := b[j*ldb:]
			for p := j + 1; p < n; p++ {
				apj := aop(p, j)
				if apj == zero {
					continue
				}
				prev := b[p*ldb:]
				for i := 0; i < m; i++ {
					col[i] -= prev[i] * apj
				}
			}
			if !unit {
				d := aop(j, j)
				for i := 0; i < m; i++ {
					col[i] /= d
				}
			}
		}
	}
}
