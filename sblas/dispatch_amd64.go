// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

//go:build amd64

package sblas

import "golang.org/x/sys/cpu"

func init() {
	if NoSimdEnv() {
		currentLevel = DispatchScalar
		return
	}
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ:
		currentLevel = DispatchAVX512
	case cpu.X86.HasAVX2 && cpu.X86.HasFMA:
		currentLevel = DispatchAVX2
	default:
		currentLevel = DispatchScalar
	}
}
