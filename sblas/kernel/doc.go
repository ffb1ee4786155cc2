// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

// Package kernel provides the device-side compute kernels consumed by the
// routine layer: general matrix multiply, single-block triangular
// inversion, in-place substitution solves, and matrix scale/copy/zero.
//
// All kernels operate on column-major storage with explicit leading
// dimensions and are generic over the supported element types. They are
// plain synchronous functions; the routine layer wraps them in stream
// launches. Large multiplies are partitioned into disjoint column stripes
// over a worker pool, which never changes results.
package kernel
