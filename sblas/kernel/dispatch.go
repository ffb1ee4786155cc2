// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"github.com/openaccel/go-streamblas/sblas"
	"github.com/openaccel/go-streamblas/sblas/workerpool"
)

// Parallelism thresholds, tuned per dispatch level. Below the threshold
// (in multiply-add operations, m*n*k) the stripe-partitioning overhead
// costs more than it saves.
const (
	parallelOpsScalar = 32 * 32 * 32
	parallelOpsVector = 64 * 64 * 64
)

// parallelThreshold returns the op count above which Gemm partitions
// columns across the worker pool.
func parallelThreshold() int {
	switch sblas.CurrentLevel() {
	case sblas.DispatchAVX2, sblas.DispatchAVX512, sblas.DispatchNEON:
		return parallelOpsVector
	default:
		return parallelOpsScalar
	}
}

// pool returns the shared worker pool used for stripe partitioning.
func pool() *workerpool.Pool {
	return workerpool.Default()
}
