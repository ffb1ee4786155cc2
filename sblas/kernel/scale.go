// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package kernel

import "github.com/openaccel/go-streamblas/sblas"

// ScaleMatrix computes A = alpha*A for an m×n column-major matrix.
// alpha == 0 zero-fills without reading A, so the matrix may hold
// uninitialized values.
func ScaleMatrix[T sblas.Element](m, n int, alpha T, a []T, lda int) {
	if m <= 0 || n <= 0 {
		return
	}
	var zero T
	one := sblas.One[T]()
	switch alpha {
	case one:
		return
	case zero:
		for j := 0; j < n; j++ {
			col := a[j*lda:]
			for i := 0; i < m; i++ {
				col[i] = zero
			}
		}
	default:
		for j := 0; j < n; j++ {
			col := a[j*lda:]
			for i := 0; i < m; i++ {
				col[i] *= alpha
			}
		}
	}
}

// ZeroMatrix zero-fills an m×n column-major matrix.
func ZeroMatrix[T sblas.Element](m, n int, a []T, lda int) {
	var zero T
	ScaleMatrix(m, n, zero, a, lda)
}

// CopyMatrix copies an m×n column-major matrix between buffers with
// independent leading dimensions.
func CopyMatrix[T sblas.Element](m, n int, src []T, lds int, dst []T, ldd int) {
	if m <= 0 || n <= 0 {
		return
	}
	for j := 0; j < n; j++ {
		copy(dst[j*ldd:j*ldd+m], src[j*lds:j*lds+m])
	}
}
