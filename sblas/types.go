// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package sblas

// Element is the set of scalar types the library is instantiated for.
// The constraint deliberately lists exact types rather than underlying
// types: Conj and the kernels type-switch on them.
type Element interface {
	float32 | float64 | complex64 | complex128
}

// Real is the floating-point subset of Element.
type Real interface {
	float32 | float64
}

// Index is the set of integer widths accepted for dimensions, leading
// dimensions, and batch counts. Entry points are generic over Index so the
// 32-bit and 64-bit API families share one implementation.
type Index interface {
	~int32 | ~int64 | ~int
}

// Side selects whether the triangular operand multiplies from the left or
// the right.
type Side int

const (
	Left Side = iota
	Right

	// SideBoth is a sentinel shared with the other tag enumerations.
	// It is not a valid argument to any routine.
	SideBoth
)

// String returns the single-character BLAS name for the side.
func (s Side) String() string {
	switch s {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "?"
	}
}

// Valid reports whether s is a defined side (not the shared sentinel).
func (s Side) Valid() bool { return s == Left || s == Right }

// Uplo selects which triangle of a matrix is referenced.
type Uplo int

const (
	Upper Uplo = iota
	Lower

	// UploFull is a sentinel; no routine in this package accepts it.
	UploFull
)

func (u Uplo) String() string {
	switch u {
	case Upper:
		return "U"
	case Lower:
		return "L"
	default:
		return "?"
	}
}

// Valid reports whether u is a defined fill (not the shared sentinel).
func (u Uplo) Valid() bool { return u == Upper || u == Lower }

// Transpose selects the operation applied to a matrix operand.
type Transpose int

const (
	NoTranspose Transpose = iota
	Trans
	ConjTrans

	// TransposeBoth is a sentinel shared with the other tag enumerations.
	TransposeBoth
)

func (t Transpose) String() string {
	switch t {
	case NoTranspose:
		return "N"
	case Trans:
		return "T"
	case ConjTrans:
		return "C"
	default:
		return "?"
	}
}

// Valid reports whether t is a defined operation (not the shared sentinel).
func (t Transpose) Valid() bool {
	return t == NoTranspose || t == Trans || t == ConjTrans
}

// Diagonal declares whether a triangular operand has an implicit unit
// diagonal. For Unit, the stored diagonal entries are never read.
type Diagonal int

const (
	NonUnit Diagonal = iota
	Unit

	// DiagonalBoth is a sentinel shared with the other tag enumerations.
	DiagonalBoth
)

func (d Diagonal) String() string {
	switch d {
	case NonUnit:
		return "N"
	case Unit:
		return "U"
	default:
		return "?"
	}
}

// Valid reports whether d is a defined diagonal kind (not the shared sentinel).
func (d Diagonal) Valid() bool { return d == NonUnit || d == Unit }

// Conj returns the complex conjugate of x. For real element types it is the
// identity.
func Conj[T Element](x T) T {
	switch v := any(x).(type) {
	case complex64:
		return any(complex(real(v), -imag(v))).(T)
	case complex128:
		return any(complex(real(v), -imag(v))).(T)
	default:
		return x
	}
}

// One returns the multiplicative identity of T.
func One[T Element]() T {
	var one T
	switch any(one).(type) {
	case float32:
		return any(float32(1)).(T)
	case float64:
		return any(float64(1)).(T)
	case complex64:
		return any(complex64(1)).(T)
	default:
		return any(complex128(1)).(T)
	}
}

// ElementSize returns sizeof(T) in bytes.
func ElementSize[T Element]() int64 {
	var x T
	switch any(x).(type) {
	case float32:
		return 4
	case float64:
		return 8
	case complex64:
		return 8
	default:
		return 16
	}
}
