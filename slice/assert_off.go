// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

//go:build !debug

package slice

// assertLockWord is a no-op in production. Enable with -tags debug for
// runtime protocol-misuse checks.
func assertLockWord(string, bool, uint32) {}

// assertSamePosition is a no-op in production. Enable with -tags debug
// for the originalPosition-equivalent reuse sanity check.
func assertSamePosition(string, Slice, Slice) {}
