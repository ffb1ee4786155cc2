// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package spmv

import (
	"math"
	"math/rand"
	"testing"

	"github.com/openaccel/go-streamblas/sblas"
)

// symPack builds a random dense symmetric n×n matrix and its packed uplo
// triangle.
func symPack(rng *rand.Rand, uplo sblas.Uplo, n int) (dense, ap []float64) {
	dense = make([]float64, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			v := rng.Float64()*2 - 1
			dense[j*n+i] = v
			dense[i*n+j] = v
		}
	}
	ap = make([]float64, n*(n+1)/2)
	idx := 0
	for j := 0; j < n; j++ {
		lo, hi := 0, j+1
		if uplo == sblas.Lower {
			lo, hi = j, n
		}
		for i := lo; i < hi; i++ {
			ap[idx] = dense[j*n+i]
			idx++
		}
	}
	return dense, ap
}

func TestSpmv(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	const n = 13
	for _, uplo := range []sblas.Uplo{sblas.Upper, sblas.Lower} {
		dense, ap := symPack(rng, uplo, n)
		x := make([]float64, n)
		y := make([]float64, n)
		for i := 0; i < n; i++ {
			x[i] = rng.Float64()
			y[i] = rng.Float64()
		}
		y0 := make([]float64, n)
		copy(y0, y)

		alpha, beta := 1.25, 0.5
		ctx := sblas.NewContext()
		status := Spmv(ctx, uplo, n, &alpha, ap, x, 1, &beta, y, 1)
		if status != sblas.StatusSuccess {
			t.Fatalf("status %v", status)
		}
		if err := ctx.Stream().Sync(); err != nil {
			t.Fatalf("sync: %v", err)
		}
		ctx.Close()

		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < n; j++ {
				sum += dense[j*n+i] * x[j]
			}
			want := alpha*sum + beta*y0[i]
			if math.Abs(y[i]-want) > 1e-12*float64(n) {
				t.Fatalf("uplo %v: y[%d] = %v, want %v", uplo, i, y[i], want)
			}
		}
	}
}

func TestSpmvStridedBatched(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	const n, bc = 7, 3
	packed := n * (n + 1) / 2
	strideAP, strideX, strideY := int64(packed+2), int64(n+1), int64(n+3)

	denses := make([][]float64, bc)
	ap := make([]float64, int(strideAP)*bc)
	x := make([]float64, int(strideX)*bc)
	y := make([]float64, int(strideY)*bc)
	y0 := make([]float64, len(y))
	for i := range x {
		x[i] = rng.Float64()
	}
	for i := range y {
		y[i] = rng.Float64()
	}
	copy(y0, y)
	for inst := 0; inst < bc; inst++ {
		d, p := symPack(rng, sblas.Upper, n)
		denses[inst] = d
		copy(ap[int64(inst)*strideAP:], p)
	}

	alpha, beta := 2.0, 1.0
	ctx := sblas.NewContext()
	defer ctx.Close()
	status := SpmvStridedBatched(ctx, sblas.Upper, n, &alpha, ap, strideAP,
		x, 1, strideX, &beta, y, 1, strideY, bc)
	if status != sblas.StatusSuccess {
		t.Fatalf("status %v", status)
	}
	if err := ctx.Stream().Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	for inst := 0; inst < bc; inst++ {
		xi := x[int64(inst)*strideX:]
		yi := y[int64(inst)*strideY:]
		y0i := y0[int64(inst)*strideY:]
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < n; j++ {
				sum += denses[inst][j*n+i] * xi[j]
			}
			want := alpha*sum + beta*y0i[i]
			if math.Abs(yi[i]-want) > 1e-12*float64(n) {
				t.Fatalf("instance %d y[%d] = %v, want %v", inst, i, yi[i], want)
			}
		}
	}
}

func TestSpmvBadArgs(t *testing.T) {
	ctx := sblas.NewContext()
	defer ctx.Close()
	alpha, beta := 1.0, 0.0
	ap := make([]float64, 6)
	x := make([]float64, 3)
	y := make([]float64, 3)

	if got := Spmv(ctx, sblas.Upper, -1, &alpha, ap, x, 1, &beta, y, 1); got != sblas.StatusInvalidSize {
		t.Errorf("n=-1: %v", got)
	}
	if got := Spmv(ctx, sblas.Upper, 3, &alpha, ap, x, 0, &beta, y, 1); got != sblas.StatusInvalidSize {
		t.Errorf("incx=0: %v", got)
	}
	if got := Spmv(ctx, sblas.UploFull, 3, &alpha, ap, x, 1, &beta, y, 1); got != sblas.StatusInvalidValue {
		t.Errorf("sentinel uplo: %v", got)
	}
	if got := Spmv[float64](nil, sblas.Upper, 3, &alpha, ap, x, 1, &beta, y, 1); got != sblas.StatusInvalidHandle {
		t.Errorf("nil ctx: %v", got)
	}
	if got := Spmv(ctx, sblas.Upper, 3, nil, ap, x, 1, &beta, y, 1); got != sblas.StatusInvalidPointer {
		t.Errorf("nil alpha: %v", got)
	}
	if got := Spmv(ctx, sblas.Upper, 3, &alpha, nil, x, 1, &beta, y, 1); got != sblas.StatusInvalidPointer {
		t.Errorf("nil ap: %v", got)
	}
	if got := Spmv(ctx, sblas.Upper, 3, &alpha, ap, x, 1, &beta, nil, 1); got != sblas.StatusInvalidPointer {
		t.Errorf("nil y: %v", got)
	}
	if got := Spmv[float64](ctx, sblas.Upper, 0, nil, nil, nil, 1, nil, nil, 1); got != sblas.StatusSuccess {
		t.Errorf("n=0 quick return: %v", got)
	}

	// alpha == 0, beta == 1 is a no-op needing no operands.
	zero, one := 0.0, 1.0
	if got := Spmv(ctx, sblas.Upper, 3, &zero, nil, nil, 1, &one, nil, 1); got != sblas.StatusSuccess {
		t.Errorf("no-op: %v", got)
	}

	// Negative increments walk the vectors backwards and are legal.
	if got := Spmv(ctx, sblas.Upper, 3, &alpha, ap, x, -1, &beta, y, -1); got != sblas.StatusSuccess {
		t.Errorf("negative incs: %v", got)
	}
	if err := ctx.Stream().Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
}
