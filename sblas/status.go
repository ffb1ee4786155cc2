// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package sblas

// Status is the result code returned by every public entry point.
//
// Usage errors (StatusInvalidHandle, StatusInvalidPointer,
// StatusInvalidValue, StatusInvalidSize) are detected synchronously before
// any work is enqueued. StatusMemoryError is a resource error: the call can
// be retried after the caller provides or permits a larger workspace.
// Kernel failures are not encoded in Status; they surface as errors from
// Stream.Sync.
type Status int

const (
	// StatusSuccess indicates the call validated and fully enqueued its work.
	StatusSuccess Status = iota

	// StatusInvalidHandle indicates a nil execution context.
	StatusInvalidHandle

	// StatusInvalidPointer indicates a required operand or scalar was nil.
	StatusInvalidPointer

	// StatusInvalidValue indicates an out-of-range enumeration argument.
	StatusInvalidValue

	// StatusInvalidSize indicates a negative dimension or an insufficient
	// leading dimension.
	StatusInvalidSize

	// StatusMemoryError indicates workspace acquisition failed.
	StatusMemoryError

	// StatusInternalError indicates an unexpected internal failure.
	StatusInternalError

	// StatusContinue is an internal sentinel: validation passed and the
	// caller of the validator should proceed, or a sizing query fell back
	// to default sizing. It is never returned from a public entry point.
	StatusContinue
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidHandle:
		return "invalid handle"
	case StatusInvalidPointer:
		return "invalid pointer"
	case StatusInvalidValue:
		return "invalid value"
	case StatusInvalidSize:
		return "invalid size"
	case StatusMemoryError:
		return "memory error"
	case StatusInternalError:
		return "internal error"
	case StatusContinue:
		return "continue"
	default:
		return "unknown status"
	}
}

// OK reports whether s is StatusSuccess.
func (s Status) OK() bool { return s == StatusSuccess }
