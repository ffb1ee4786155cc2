// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package kernel

import "github.com/openaccel/go-streamblas/sblas"

// Spmv computes y = alpha*A*x + beta*y where A is an n×n symmetric matrix
// in packed column-major storage (upper: A(i,j) at ap[i+j(j+1)/2]; lower:
// A(i,j) at ap[i-j+j(2n-j+1)/2]). beta == 0 zero-fills y without reading
// it, and alpha == 0 skips reads of ap and x.
func Spmv[T sblas.Real](uplo sblas.Uplo, n int, alpha T, ap []T,
	x []T, incx int, beta T, y []T, incy int) {

	if n <= 0 {
		return
	}

	yAt := func(i int) int {
		if incy < 0 {
			return (i - n + 1) * incy
		}
		return i * incy
	}
	xAt := func(i int) int {
		if incx < 0 {
			return (i - n + 1) * incx
		}
		return i * incx
	}

	var zero T
	one := sblas.One[T]()
	switch beta {
	case one:
	case zero:
		for i := 0; i < n; i++ {
			y[yAt(i)] = zero
		}
	default:
		for i := 0; i < n; i++ {
			y[yAt(i)] *= beta
		}
	}
	if alpha == zero {
		return
	}

	if uplo == sblas.Upper {
		for j := 0; j < n; j++ {
			base := j * (j + 1) / 2
			xj := alpha * x[xAt(j)]
			var sum T
			for i := 0; i < j; i++ {
				y[yAt(i)] += xj * ap[base+i]
				sum += ap[base+i] * x[xAt(i)]
			}
			y[yAt(j)] += xj*ap[base+j] + alpha*sum
		}
		return
	}

	for j := 0; j < n; j++ {
		base := j*(2*n-j+1)/2 - j
		xj := alpha * x[xAt(j)]
		var sum T
		y[yAt(j)] += xj * ap[base+j]
		for i := j + 1; i < n; i++ {
			y[yAt(i)] += xj * ap[base+i]
			sum += ap[base+i] * x[xAt(i)]
		}
		y[yAt(j)] += alpha * sum
	}
}
