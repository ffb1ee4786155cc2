// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

// Package sblas provides stream-offloaded BLAS routines with explicit
// workspace management.
//
// All work is enqueued onto a Stream: an in-order asynchronous execution
// queue that models an accelerator stream. Entry points validate their
// arguments synchronously, enqueue kernel launches, and return without
// blocking; callers synchronize explicitly when they need results.
//
// Basic usage:
//
//	ctx := sblas.NewContext()
//	defer ctx.Close()
//
//	// C = alpha*A*B + beta*C, column-major with leading dimensions.
//	status := gemm.Gemm(ctx, sblas.NoTranspose, sblas.NoTranspose,
//	    m, n, k, &alpha, a, lda, b, ldb, &beta, c, ldc)
//	if status != sblas.StatusSuccess {
//	    ...
//	}
//	if err := ctx.Stream().Sync(); err != nil {
//	    ...
//	}
//
// Scalar arguments (alpha, beta) are passed by pointer and interpreted
// according to the context's pointer mode: in PointerModeHost they are read
// synchronously by host code, in PointerModeDevice they are read only by
// enqueued kernels at execution time.
//
// The triangular-solve family lives in the trsm subpackage, the
// matrix-multiply and symmetric packed matrix-vector entry points in the
// gemm and spmv subpackages, and the low-level kernels in the kernel
// subpackage.
package sblas
