// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/openaccel/go-streamblas/sblas"
)

func randMatrix(rng *rand.Rand, rows, cols, ld int) []float64 {
	m := make([]float64, ld*cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			m[j*ld+i] = rng.Float64()*2 - 1
		}
	}
	return m
}

func TestGemm(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const m, n, k = 17, 11, 9
	a := randMatrix(rng, m, k, m)
	b := randMatrix(rng, k, n, k)
	c := randMatrix(rng, m, n, m)
	c0 := make([]float64, len(c))
	copy(c0, c)

	alpha, beta := 1.5, 0.5
	ctx := sblas.NewContext()
	defer ctx.Close()
	status := Gemm(ctx, sblas.NoTranspose, sblas.NoTranspose, m, n, k,
		&alpha, a, m, b, k, &beta, c, m)
	if status != sblas.StatusSuccess {
		t.Fatalf("status %v", status)
	}
	if err := ctx.Stream().Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			var sum float64
			for p := 0; p < k; p++ {
				sum += a[p*m+i] * b[j*k+p]
			}
			want := alpha*sum + beta*c0[j*m+i]
			if math.Abs(c[j*m+i]-want) > 1e-12*float64(k) {
				t.Fatalf("c[%d,%d] = %v, want %v", i, j, c[j*m+i], want)
			}
		}
	}
}

func TestGemmStridedBatched(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const m, n, k, bc = 8, 6, 5, 3
	const sa, sb, sc = m*k + 3, k*n + 1, m*n + 2

	a := make([]float64, sa*bc)
	b := make([]float64, sb*bc)
	c := make([]float64, sc*bc)
	for i := range a {
		a[i] = rng.Float64()
	}
	for i := range b {
		b[i] = rng.Float64()
	}

	alpha, beta := 1.0, 0.0
	ctx := sblas.NewContext()
	defer ctx.Close()
	status := GemmStridedBatched(ctx, sblas.NoTranspose, sblas.NoTranspose, m, n, k,
		&alpha, a, m, sa, b, k, sb, &beta, c, m, sc, bc)
	if status != sblas.StatusSuccess {
		t.Fatalf("status %v", status)
	}
	if err := ctx.Stream().Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	for inst := 0; inst < bc; inst++ {
		ai, bi, ci := a[inst*sa:], b[inst*sb:], c[inst*sc:]
		for j := 0; j < n; j++ {
			for i := 0; i < m; i++ {
				var sum float64
				for p := 0; p < k; p++ {
					sum += ai[p*m+i] * bi[j*k+p]
				}
				if math.Abs(ci[j*m+i]-sum) > 1e-12*float64(k) {
					t.Fatalf("instance %d c[%d,%d] = %v, want %v", inst, i, j, ci[j*m+i], sum)
				}
			}
		}
	}
}

func TestGemmDeviceScalars(t *testing.T) {
	// Device-mode scalars are read on-stream: mutate them after the call
	// but before a second one to confirm each launch sees its own value.
	ctx := sblas.NewContext()
	defer ctx.Close()
	ctx.SetPointerMode(sblas.PointerModeDevice)

	a := []float64{1, 2}
	b := []float64{3}
	c := []float64{0, 0}
	alpha, beta := 1.0, 0.0
	if status := Gemm(ctx, sblas.NoTranspose, sblas.NoTranspose, 2, 1, 1,
		&alpha, a, 2, b, 1, &beta, c, 2); status != sblas.StatusSuccess {
		t.Fatalf("status %v", status)
	}
	if err := ctx.Stream().Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if c[0] != 3 || c[1] != 6 {
		t.Fatalf("c = %v, want [3 6]", c)
	}

	alpha = 2.0
	if status := Gemm(ctx, sblas.NoTranspose, sblas.NoTranspose, 2, 1, 1,
		&alpha, a, 2, b, 1, &beta, c, 2); status != sblas.StatusSuccess {
		t.Fatalf("status %v", status)
	}
	if err := ctx.Stream().Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if c[0] != 6 || c[1] != 12 {
		t.Fatalf("c = %v, want [6 12]", c)
	}
}

func TestGemmBadArgs(t *testing.T) {
	ctx := sblas.NewContext()
	defer ctx.Close()
	alpha, beta := 1.0, 0.0
	a := make([]float64, 4)
	b := make([]float64, 4)
	c := make([]float64, 4)

	call := func(ctx2 *sblas.Context, m, n, k int, al, be *float64,
		av, bv, cv []float64, lda, ldb, ldc int) sblas.Status {
		return Gemm(ctx2, sblas.NoTranspose, sblas.NoTranspose, m, n, k,
			al, av, lda, bv, ldb, be, cv, ldc)
	}

	if got := call(ctx, -1, 2, 2, &alpha, &beta, a, b, c, 2, 2, 2); got != sblas.StatusInvalidSize {
		t.Errorf("m=-1: %v", got)
	}
	if got := call(ctx, 2, 2, 2, &alpha, &beta, a, b, c, 1, 2, 2); got != sblas.StatusInvalidSize {
		t.Errorf("small lda: %v", got)
	}
	if got := Gemm(ctx, sblas.TransposeBoth, sblas.NoTranspose, 2, 2, 2,
		&alpha, a, 2, b, 2, &beta, c, 2); got != sblas.StatusInvalidValue {
		t.Errorf("sentinel transA: %v", got)
	}
	if got := call(nil, 2, 2, 2, &alpha, &beta, a, b, c, 2, 2, 2); got != sblas.StatusInvalidHandle {
		t.Errorf("nil ctx: %v", got)
	}
	if got := call(ctx, 2, 2, 2, nil, &beta, a, b, c, 2, 2, 2); got != sblas.StatusInvalidPointer {
		t.Errorf("nil alpha: %v", got)
	}
	if got := call(ctx, 2, 2, 2, &alpha, &beta, nil, b, c, 2, 2, 2); got != sblas.StatusInvalidPointer {
		t.Errorf("nil a: %v", got)
	}
	if got := call(ctx, 2, 2, 2, &alpha, &beta, a, b, nil, 2, 2, 2); got != sblas.StatusInvalidPointer {
		t.Errorf("nil c: %v", got)
	}

	// Quick returns precede pointer checks.
	if got := call(ctx, 0, 2, 2, nil, nil, nil, nil, nil, 1, 2, 2); got != sblas.StatusSuccess {
		t.Errorf("m=0: %v", got)
	}

	// alpha == 0 with beta == 1 is a no-op even with nil operands.
	zero, one := 0.0, 1.0
	if got := call(ctx, 2, 2, 2, &zero, &one, nil, nil, nil, 2, 2, 2); got != sblas.StatusSuccess {
		t.Errorf("no-op: %v", got)
	}
	// alpha == 0 with a real beta still needs C but not A or B.
	if got := call(ctx, 2, 2, 2, &zero, &beta, nil, nil, c, 2, 2, 2); got != sblas.StatusSuccess {
		t.Errorf("alpha=0 scale: %v", got)
	}
	if err := ctx.Stream().Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
}

func TestGemmKZero(t *testing.T) {
	// k == 0 reduces to C *= beta; A and B may be nil in host mode.
	ctx := sblas.NewContext()
	defer ctx.Close()
	alpha, beta := 1.5, 0.5
	c := []float64{2, 4}
	if got := Gemm(ctx, sblas.NoTranspose, sblas.NoTranspose, 2, 1, 0,
		&alpha, nil, 2, nil, 1, &beta, c, 2); got != sblas.StatusSuccess {
		t.Fatalf("status %v", got)
	}
	if err := ctx.Stream().Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if c[0] != 1 || c[1] != 2 {
		t.Errorf("c = %v, want [1 2]", c)
	}
}
