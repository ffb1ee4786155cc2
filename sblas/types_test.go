// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

package sblas

import "testing"

func TestConj(t *testing.T) {
	if got := Conj(complex64(3 + 4i)); got != 3-4i {
		t.Errorf("Conj(3+4i) = %v", got)
	}
	if got := Conj(complex128(1 - 2i)); got != 1+2i {
		t.Errorf("Conj(1-2i) = %v", got)
	}
	if got := Conj(float32(5)); got != 5 {
		t.Errorf("Conj(5) = %v", got)
	}
	if got := Conj(float64(-7)); got != -7 {
		t.Errorf("Conj(-7) = %v", got)
	}
}

func TestElementSize(t *testing.T) {
	if ElementSize[float32]() != 4 || ElementSize[float64]() != 8 ||
		ElementSize[complex64]() != 8 || ElementSize[complex128]() != 16 {
		t.Error("ElementSize mismatch")
	}
}

func TestEnumValidity(t *testing.T) {
	if SideBoth.Valid() || UploFull.Valid() || TransposeBoth.Valid() || DiagonalBoth.Valid() {
		t.Error("sentinels must be invalid")
	}
	if !Left.Valid() || !Right.Valid() || !Upper.Valid() || !Lower.Valid() ||
		!NoTranspose.Valid() || !Trans.Valid() || !ConjTrans.Valid() ||
		!Unit.Valid() || !NonUnit.Valid() {
		t.Error("defined values must be valid")
	}
}

func TestEnumStrings(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{Left.String(), "L"}, {Right.String(), "R"},
		{Upper.String(), "U"}, {Lower.String(), "L"},
		{NoTranspose.String(), "N"}, {Trans.String(), "T"}, {ConjTrans.String(), "C"},
		{NonUnit.String(), "N"}, {Unit.String(), "U"},
		{SideBoth.String(), "?"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("String() = %q, want %q", c.got, c.want)
		}
	}
}

func TestHostScalar(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	v := 2.5
	if got, ok := HostScalar(ctx, &v); !ok || got != 2.5 {
		t.Errorf("HostScalar host mode = %v, %v", got, ok)
	}

	ctx.SetPointerMode(PointerModeDevice)
	if _, ok := HostScalar(ctx, &v); ok {
		t.Error("HostScalar must refuse device mode")
	}
	if _, ok := HostScalar[float64](nil, &v); ok {
		t.Error("HostScalar must refuse nil context")
	}
}
