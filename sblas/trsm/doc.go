// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

// Package trsm implements the triangular-solve family: op(A)·X = alpha·B or
// X·op(A) = alpha·B with A triangular, overwriting B with X, in single,
// strided-batched, and pointer-batched variants.
//
// Large triangles are decomposed into 128×128 diagonal blocks whose explicit
// inverses turn the solve into a chain of matrix multiplies; the chain needs
// scratch memory whose exact byte counts come from WorkspaceSize. Callers
// may let the context's arena provide the workspace, or size it once at the
// largest anticipated shape (WorkspaceMaxSize is monotonic, so one query
// covers all smaller solves) and pass it in explicitly:
//
//	sizes, _ := trsm.WorkspaceSize[float64](sblas.Left, sblas.NoTranspose,
//	    m, n, 1, 0)
//	ws, _ := trsm.AllocWorkspace[float64](ctx.Arena(), sizes)
//	defer ws.Release(ctx.Arena())
//
//	status := trsm.SolveWithWorkspace(ctx, sblas.Left, sblas.Lower,
//	    sblas.NoTranspose, sblas.NonUnit, m, n, &alpha,
//	    a, lda, b, ldb, ws, trsm.SolveOptions{})
//
// Triangles that fit in a single block are solved by direct substitution
// with no workspace at all.
package trsm
