// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

// Package spmv provides the symmetric packed matrix-vector entry points:
// y = alpha*A*x + beta*y with A in packed triangular storage, in single and
// strided-batched variants.
package spmv

import (
	"github.com/openaccel/go-streamblas/sblas"
	"github.com/openaccel/go-streamblas/sblas/kernel"
)

// Spmv computes y = alpha*A*x + beta*y for an n×n symmetric matrix in
// packed column-major storage. alpha and beta follow the context's pointer
// mode; work is enqueued asynchronously.
func Spmv[T sblas.Real, I sblas.Index](ctx *sblas.Context, uplo sblas.Uplo,
	n I, alpha *T, ap []T, x []T, incx I, beta *T, y []T, incy I) sblas.Status {

	return SpmvStridedBatched(ctx, uplo, n, alpha, ap, 0, x, incx, 0, beta, y, incy, 0, I(1))
}

// SpmvStridedBatched runs batchCount independent multiplies at fixed
// strides from shared bases.
func SpmvStridedBatched[T sblas.Real, I sblas.Index](ctx *sblas.Context,
	uplo sblas.Uplo, n I, alpha *T, ap []T, strideAP int64,
	x []T, incx I, strideX int64, beta *T, y []T, incy I, strideY int64,
	batchCount I) sblas.Status {

	ni := int64(n)
	incxi, incyi := int64(incx), int64(incy)
	bc := int64(batchCount)

	status := validateSpmv(ctx, uplo, ni, alpha, ap == nil, x == nil, incxi,
		beta, y == nil, incyi, bc)
	if status != sblas.StatusContinue {
		return status
	}

	if l := ctx.Logger(); l != nil {
		l.Debug("spmv", "uplo", uplo.String(), "n", ni,
			"incx", incxi, "incy", incyi, "batch_count", bc)
	}

	hostMode := ctx.PointerMode() == sblas.PointerModeHost
	var alphaV, betaV T
	if hostMode {
		alphaV, betaV = *alpha, *beta
	}

	for i := 0; i < int(bc); i++ {
		api := instance(ap, int64(i)*strideAP)
		xi := instance(x, int64(i)*strideX)
		yi := instance(y, int64(i)*strideY)
		ctx.Stream().Launch(func() error {
			av, bv := alphaV, betaV
			if !hostMode {
				av, bv = *alpha, *beta
			}
			kernel.Spmv(uplo, int(ni), av, api, xi, int(incxi), bv, yi, int(incyi))
			return nil
		})
	}
	return sblas.StatusSuccess
}

func instance[T sblas.Real](s []T, off int64) []T {
	if s == nil || off <= 0 {
		return s
	}
	if off > int64(len(s)) {
		return nil
	}
	return s[off:]
}

func validateSpmv[T sblas.Real](ctx *sblas.Context, uplo sblas.Uplo, n int64,
	alpha *T, apNil, xNil bool, incx int64, beta *T, yNil bool, incy int64,
	batchCount int64) sblas.Status {

	if n < 0 || batchCount < 0 || incx == 0 || incy == 0 {
		return sblas.StatusInvalidSize
	}

	if !uplo.Valid() {
		return sblas.StatusInvalidValue
	}

	if n == 0 || batchCount == 0 {
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
		if *alpha == zero && *beta == one {
			return sblas.StatusSuccess
		}
		if *alpha != zero && (apNil || xNil) {
			return sblas.StatusInvalidPointer
		}
	}
	if yNil {
		return sblas.StatusInvalidPointer
	}

	return sblas.StatusContinue
}
