// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package sblas

import "log/slog"

// PointerMode selects where scalar arguments (alpha, beta) are resident.
type PointerMode int

const (
	// PointerModeHost means scalars are host-resident: entry points may read
	// them synchronously during validation.
	PointerModeHost PointerMode = iota

	// PointerModeDevice means scalars are device-resident: they are passed
	// by address and dereferenced only by enqueued kernels. Host code must
	// never read them synchronously.
	PointerModeDevice
)

func (m PointerMode) String() string {
	if m == PointerModeDevice {
		return "device"
	}
	return "host"
}

// Context is the execution-context value object threaded through every
// call: an execution stream, the scalar pointer mode, and a device-memory
// arena. There is no global state; concurrent calls on separate contexts
// are independent.
//
// A Context is not safe for concurrent use by multiple goroutines issuing
// calls with shared workspace; see the trsm package for the workspace
// ownership rules.
type Context struct {
	stream *Stream
	mode   PointerMode
	arena  *Arena
	logger *slog.Logger
}

// NewContext creates a context with a fresh stream, host pointer mode, and
// an unlimited arena.
func NewContext() *Context {
	return &Context{
		stream: NewStream(),
		arena:  NewArena(0),
	}
}

// Stream returns the context's execution stream.
func (c *Context) Stream() *Stream { return c.stream }

// Arena returns the context's device-memory arena.
func (c *Context) Arena() *Arena { return c.arena }

// PointerMode returns the current scalar pointer mode.
func (c *Context) PointerMode() PointerMode { return c.mode }

// SetPointerMode changes the scalar pointer mode for subsequent calls.
func (c *Context) SetPointerMode(m PointerMode) { c.mode = m }

// SetLogger attaches a logger used by entry points for call tracing.
// A nil logger (the default) disables tracing.
func (c *Context) SetLogger(l *slog.Logger) { c.logger = l }

// Logger returns the attached logger, or nil.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Close drains and stops the context's stream.
func (c *Context) Close() {
	c.stream.Close()
}

// HostScalar reads *p if the context is in host pointer mode. The second
// result is false in device mode (or for a nil context), in which case the
// value must only be read on-stream.
func HostScalar[T Element](c *Context, p *T) (T, bool) {
	var zero T
	if c == nil || c.mode != PointerModeHost || p == nil {
		return zero, false
	}
	return *p, true
}
