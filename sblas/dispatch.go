// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package sblas

import "os"

// DispatchLevel identifies the host vector capability used to pick kernel
// blocking parameters. Kernels in this module are portable Go; the level
// only steers tile sizes and parallelism thresholds.
type DispatchLevel int

const (
	// DispatchScalar assumes no wide vectors.
	DispatchScalar DispatchLevel = iota

	// DispatchAVX2 indicates 256-bit vectors on amd64.
	DispatchAVX2

	// DispatchAVX512 indicates 512-bit vectors on amd64.
	DispatchAVX512

	// DispatchNEON indicates 128-bit vectors on arm64.
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel is set by init() in the dispatch_*.go files.
var currentLevel DispatchLevel

// CurrentLevel returns the detected capability level.
func CurrentLevel() DispatchLevel { return currentLevel }

// CurrentName returns the human-readable name of the capability level.
func CurrentName() string { return currentLevel.String() }

// NoSimdEnv reports whether the SBLAS_NO_SIMD environment variable is set,
// forcing scalar blocking parameters regardless of CPU capabilities.
// Useful for testing and debugging.
func NoSimdEnv() bool {
	v := os.Getenv("SBLAS_NO_SIMD")
	return v != "" && v != "0"
}
