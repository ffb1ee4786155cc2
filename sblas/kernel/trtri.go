// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package kernel

import "github.com/openaccel/go-streamblas/sblas"

// InvertTriangle computes inv = A^-1 for an n×n triangular block, both
// column-major. The untouched triangle of inv is zero-filled so the result
// can be consumed as a dense GEMM operand. For diag == Unit the stored
// diagonal of A is never read and the inverse diagonal is exactly one.
//
// The inversion is substitution-based: column j of the inverse solves
// A·x = e_j within the triangle.
func InvertTriangle[T sblas.Element](uplo sblas.Uplo, diag sblas.Diagonal,
	n int, a []T, lda int, inv []T, ldinv int) {

	if n <= 0 {
		return
	}

	ZeroMatrix(n, n, inv, ldinv)
	one := sblas.One[T]()
	unit := diag == sblas.Unit

	if uplo == sblas.Lower {
		for j := 0; j < n; j++ {
			col := inv[j*ldinv:]
			if unit {
				col[j] = one
			} else {
				col[j] = one / a[j*lda+j]
			}
			for i := j + 1; i < n; i++ {
				var sum T
				for p := j; p < i; p++ {
					sum += a[p*lda+i] * col[p]
				}
				if unit {
					col[i] = -sum
				} else {
					col[i] = -sum / a[i*lda+i]
				}
			}
		}
		return
	}

	// Upper triangle: back substitution per column.
	for j := n - 1; j >= 0; j-- {
		col := inv[j*ldinv:]
		if unit {
			col[j] = one
		} else {
			col[j] = one / a[j*lda+j]
		}
		for i := j - 1; i >= 0; i-- {
			var sum T
			for p := i + 1; p <= j; p++ {
				sum += a[p*lda+i] * col[p]
			}
			if unit {
				col[i] = -sum
			} else {
				col[i] = -sum / a[i*lda+i]
			}
		}
	}
}
