// Copyright 2025 The go-streamblas Authors. SPDX-License-Identifier: Apache-2.0

//go:build !amd64 && !arm64

package sblas

func init() {
	currentLevel = DispatchScalar
}
