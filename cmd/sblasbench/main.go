// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

// sblasbench times the solve and multiply entry points on synthetic
// problems and reports effective GFLOPS.
//
// Examples:
//
//	sblasbench trsm -m 1024 -n 1024 --side left --uplo lower --iters 10
//	sblasbench gemm -m 512 -n 512 -k 512 --contexts 4
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/openaccel/go-streamblas/sblas"
	"github.com/openaccel/go-streamblas/sblas/gemm"
	"github.com/openaccel/go-streamblas/sblas/trsm"
)

var (
	flagM, flagN, flagK int
	flagIters           int
	flagColdIters       int
	flagContexts        int
	flagSide            string
	flagUplo            string
	flagTrans           string
	flagDiag            string
	flagMinimalMem      bool
)

func main() {
	root := &cobra.Command{
		Use:           "sblasbench",
		Short:         "benchmark stream-offloaded BLAS routines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVarP(&flagM, "m", "m", 1024, "row count")
	root.PersistentFlags().IntVarP(&flagN, "n", "n", 1024, "column count")
	root.PersistentFlags().IntVar(&flagIters, "iters", 10, "timed iterations")
	root.PersistentFlags().IntVar(&flagColdIters, "cold-iters", 2, "warmup iterations")
	root.PersistentFlags().IntVar(&flagContexts, "contexts", 1, "concurrent execution contexts")

	trsmCmd := &cobra.Command{
		Use:   "trsm",
		Short: "benchmark the blocked triangular solve",
		RunE:  runTrsm,
	}
	trsmCmd.Flags().StringVar(&flagSide, "side", "left", "left or right")
	trsmCmd.Flags().StringVar(&flagUplo, "uplo", "lower", "upper or lower")
	trsmCmd.Flags().StringVar(&flagTrans, "trans", "n", "n, t, or c")
	trsmCmd.Flags().StringVar(&flagDiag, "diag", "nonunit", "unit or nonunit")
	trsmCmd.Flags().BoolVar(&flagMinimalMem, "minimal-mem", false, "force the stripe path")

	gemmCmd := &cobra.Command{
		Use:   "gemm",
		Short: "benchmark the general matrix multiply",
		RunE:  runGemm,
	}
	gemmCmd.Flags().IntVarP(&flagK, "k", "k", 1024, "inner dimension")

	root.AddCommand(trsmCmd, gemmCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sblasbench:", err)
		os.Exit(1)
	}
}

func runTrsm(cmd *cobra.Command, args []string) error {
	side, uplo, trans, diag, err := parseTrsmTags()
	if err != nil {
		return err
	}
	m, n := flagM, flagN
	k := m
	if side == sblas.Right {
		k = n
	}
	// One solve is K*M*N flops over the triangle.
	flops := float64(k) * float64(m) * float64(n)

	secs, err := runContexts(func(ctx *sblas.Context, rng *rand.Rand) (time.Duration, error) {
		a := make([]float64, k*k)
		b := make([]float64, m*n)
		initTriangle(rng, a, k, uplo)
		for i := range b {
			b[i] = rng.Float64()
		}
		alpha := 1.0

		opts := trsm.SolveOptions{}
		if flagMinimalMem {
			opts.Policy = trsm.PolicyMinimalMemory
		}
		var elapsed time.Duration
		for it := 0; it < flagColdIters+flagIters; it++ {
			start := time.Now()
			status := trsm.SolveWithWorkspace(ctx, side, uplo, trans, diag,
				m, n, &alpha, a, k, b, m, nil, opts)
			if !status.OK() {
				return 0, fmt.Errorf("trsm: %s", status)
			}
			if err := ctx.Stream().Sync(); err != nil {
				return 0, err
			}
			if it >= flagColdIters {
				elapsed += time.Since(start)
			}
		}
		return elapsed, nil
	})
	if err != nil {
		return err
	}
	report(cmd, "trsm", flops, secs)
	return nil
}

func runGemm(cmd *cobra.Command, args []string) error {
	m, n, k := flagM, flagN, flagK
	flops := 2 * float64(m) * float64(n) * float64(k)

	secs, err := runContexts(func(ctx *sblas.Context, rng *rand.Rand) (time.Duration, error) {
		a := make([]float64, m*k)
		b := make([]float64, k*n)
		c := make([]float64, m*n)
		for i := range a {
			a[i] = rng.Float64()
		}
		for i := range b {
			b[i] = rng.Float64()
		}
		alpha, beta := 1.0, 0.0

		var elapsed time.Duration
		for it := 0; it < flagColdIters+flagIters; it++ {
			start := time.Now()
			status := gemm.Gemm(ctx, sblas.NoTranspose, sblas.NoTranspose,
				m, n, k, &alpha, a, m, b, k, &beta, c, m)
			if !status.OK() {
				return 0, fmt.Errorf("gemm: %s", status)
			}
			if err := ctx.Stream().Sync(); err != nil {
				return 0, err
			}
			if it >= flagColdIters {
				elapsed += time.Since(start)
			}
		}
		return elapsed, nil
	})
	if err != nil {
		return err
	}
	report(cmd, "gemm", flops, secs)
	return nil
}

// runContexts runs the benchmark body on flagContexts independent contexts
// concurrently and returns the per-iteration seconds observed by each.
func runContexts(body func(*sblas.Context, *rand.Rand) (time.Duration, error)) ([]float64, error) {
	secs := make([]float64, flagContexts)
	var g errgroup.Group
	for i := 0; i < flagContexts; i++ {
		i := i
		g.Go(func() error {
			ctx := sblas.NewContext()
			defer ctx.Close()
			elapsed, err := body(ctx, rand.New(rand.NewSource(int64(i)+1)))
			if err != nil {
				return err
			}
			secs[i] = elapsed.Seconds() / float64(flagIters)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return secs, nil
}

func report(cmd *cobra.Command, name string, flops float64, secs []float64) {
	mean := lo.Sum(secs) / float64(len(secs))
	best := lo.Min(secs)
	cmd.Printf("%s: m=%d n=%d contexts=%d\n", name, flagM, flagN, flagContexts)
	cmd.Printf("  mean %.3f ms  best %.3f ms  %.2f GFLOPS (best)\n",
		mean*1e3, best*1e3, flops/best/1e9)
}

func parseTrsmTags() (sblas.Side, sblas.Uplo, sblas.Transpose, sblas.Diagonal, error) {
	side := sblas.Left
	if flagSide == "right" {
		side = sblas.Right
	} else if flagSide != "left" {
		return 0, 0, 0, 0, fmt.Errorf("bad --side %q", flagSide)
	}
	uplo := sblas.Lower
	if flagUplo == "upper" {
		uplo = sblas.Upper
	} else if flagUplo != "lower" {
		return 0, 0, 0, 0, fmt.Errorf("bad --uplo %q", flagUplo)
	}
	var trans sblas.Transpose
	switch flagTrans {
	case "n":
		trans = sblas.NoTranspose
	case "t":
		trans = sblas.Trans
	case "c":
		trans = sblas.ConjTrans
	default:
		return 0, 0, 0, 0, fmt.Errorf("bad --trans %q", flagTrans)
	}
	diag := sblas.NonUnit
	if flagDiag == "unit" {
		diag = sblas.Unit
	} else if flagDiag != "nonunit" {
		return 0, 0, 0, 0, fmt.Errorf("bad --diag %q", flagDiag)
	}
	return side, uplo, trans, diag, nil
}

// initTriangle fills the referenced triangle with a diagonally dominant
// random matrix so the solve stays well conditioned.
func initTriangle(rng *rand.Rand, a []float64, k int, uplo sblas.Uplo) {
	for j := 0; j < k; j++ {
		for i := 0; i < k; i++ {
			inTri := i >= j
			if uplo == sblas.Upper {
				inTri = i <= j
			}
			if inTri {
				a[j*k+i] = rng.Float64()*2 - 1
			}
		}
		a[j*k+j] = float64(k) + rng.Float64()
	}
}
