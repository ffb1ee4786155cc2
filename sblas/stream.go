// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package sblas

import (
	"fmt"
	"sync"
)

// Stream is an in-order asynchronous execution queue modeling an
// accelerator stream. Launch never blocks; kernels run one at a time, in
// launch order, on a dedicated goroutine, so a fixed launch sequence always
// produces bit-identical results.
//
// A kernel error is sticky: once a launched function returns a non-nil
// error, subsequent launches are discarded and Sync (and Err) report the
// first error verbatim.
type Stream struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func() error
	err    error
	busy   bool
	closed bool
}

// NewStream creates a stream and starts its executor.
func NewStream() *Stream {
	s := &Stream{}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

func (s *Stream) run() {
	s.mu.Lock()
	for {
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 && s.closed {
			s.mu.Unlock()
			return
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		if s.err != nil {
			// Poisoned stream: drain without executing.
			s.cond.Broadcast()
			continue
		}
		s.busy = true
		s.mu.Unlock()

		err := runKernel(fn)

		s.mu.Lock()
		s.busy = false
		if err != nil && s.err == nil {
			s.err = err
		}
		s.cond.Broadcast()
	}
}

// runKernel executes one launched function, converting panics (out-of-range
// device accesses and the like) into runtime errors so they surface through
// Sync instead of tearing down the process.
func runKernel(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sblas: kernel fault: %v", r)
		}
	}()
	return fn()
}

// Launch enqueues fn for asynchronous in-order execution. Launching onto a
// closed stream is a no-op.
func (s *Stream) Launch(fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, fn)
	s.cond.Signal()
}

// Sync blocks until every previously launched kernel has completed and
// returns the stream's sticky error, if any.
func (s *Stream) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.queue) > 0 || s.busy {
		s.cond.Wait()
	}
	return s.err
}

// Err returns the sticky error without synchronizing.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close drains outstanding work and stops the executor. The stream must not
// be used afterwards.
func (s *Stream) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cond.Broadcast()
	for len(s.queue) > 0 || s.busy {
		s.cond.Wait()
	}
	s.mu.Unlock()
}
