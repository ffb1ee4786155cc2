// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package kernel

import "github.com/openaccel/go-streamblas/sblas"

// Gemm computes C = alpha*op(A)*op(B) + beta*C in column-major storage.
// op(A) is m×k, op(B) is k×n, C is m×n. beta == 0 zero-fills C without
// reading it, and alpha == 0 skips reads of A and B entirely.
//
// Columns of C are partitioned across the worker pool when the problem is
// large enough; the partitioning only splits disjoint output columns, so
// results are identical to sequential execution.
func Gemm[T sblas.Element](transA, transB sblas.Transpose, m, n, k int,
	alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int) {

	if m <= 0 || n <= 0 {
		return
	}

	var zero T
	if alpha == zero {
		ScaleMatrix(m, n, beta, c, ldc)
		return
	}

	if m*n*k >= parallelThreshold() {
		pool().ParallelFor(n, func(jStart, jEnd int) {
			gemmColumns(transA, transB, m, jStart, jEnd, k, alpha, a, lda, b, ldb, beta, c, ldc)
		})
		return
	}
	gemmColumns(transA, transB, m, 0, n, k, alpha, a, lda, b, ldb, beta, c, ldc)
}

// gemmColumns computes columns [jStart, jEnd) of the Gemm result.
func gemmColumns[T sblas.Element](transA, transB sblas.Transpose,
	m, jStart, jEnd, k int,
	alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int) {

	var zero T
	one := sblas.One[T]()

	for j := jStart; j < jEnd; j++ {
		col := c[j*ldc:]

		switch beta {
		case zero:
			for i := 0; i < m; i++ {
				col[i] = zero
			}
		case one:
			// leave C in place
		default:
			for i := 0; i < m; i++ {
				col[i] *= beta
			}
		}

		for p := 0; p < k; p++ {
			var bpj T
			switch transB {
			case sblas.NoTranspose:
				bpj = b[j*ldb+p]
			case sblas.Trans:
				bpj = b[p*ldb+j]
			default:
				bpj = sblas.Conj(b[p*ldb+j])
			}
			if bpj == zero {
				continue
			}
			scale := alpha * bpj

			switch transA {
			case sblas.NoTranspose:
				arow := a[p*lda:]
				for i := 0; i < m; i++ {
					col[i] += scale * arow[i]
				}
			case sblas.Trans:
				for i := 0; i < m; i++ {
					col[i] += scale * a[i*lda+p]
				}
			default:
				for i := 0; i < m; i++ {
					col[i] += scale * sblas.Conj(a[i*lda+p])
				}
			}
		}
	}
}
