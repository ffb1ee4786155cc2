// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool used by the kernel
// package to partition matrix stripes across CPUs. A Pool is created once
// and reused across many kernel invocations; per-call goroutine spawning
// would dominate execution time for the launch-heavy blocked algorithms in
// this library.
//
// Workers only ever receive disjoint output ranges, so pooled execution
// never changes numerical results.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation
// and persist until Close.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers. If numWorkers <= 0, uses
// GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int { return p.numWorkers }

// Close shuts down the pool. Pending work completes. Safe to call twice.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn over [0, n) split into contiguous ranges, one per
// worker, and blocks until all ranges complete. fn receives half-open
// [start, end) bounds. A closed pool falls back to sequential execution.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p == nil || p.closed.Load() {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * chunk
		end := min(start+chunk, n)
		if start >= n {
			wg.Done()
			continue
		}
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// Default returns a process-wide shared pool sized to GOMAXPROCS, created
// on first use and never closed.
func Default() *Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = New(0)
	})
	return defaultPool
}
