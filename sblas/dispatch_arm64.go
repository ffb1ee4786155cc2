// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package sblas

func init() {
	// NEON is architecturally guaranteed on arm64.
	if NoSimdEnv() {
		currentLevel = DispatchScalar
		return
	}
	currentLevel = DispatchNEON
}
