// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package alloc

import "math/bits"

// minClassBytes is the smallest size class SyncRecycle tracks; requests
// smaller than this still consume a slot of this size so the free list
// stays small.
const minClassBytes = 16

// numSizeClasses bounds the free-list table. A request larger than the
// largest class (minClassBytes << (numSizeClasses-1)) bypasses the free
// list entirely and always bump-allocates.
const numSizeClasses = 24

// sizeClass rounds length up to the next power-of-two size class and
// returns its index into the free-list table, or ok=false if length
// exceeds the largest tracked class.
func sizeClass(length uint32) (class int, rounded uint32, ok bool) {
	if length <= minClassBytes {
		return 0, minClassBytes, true
	}
	rounded = uint32(1) << bits.Len32(length-1)
	class = bits.Len32(rounded/minClassBytes) - 1
	if class < 0 || class >= numSizeClasses {
		return 0, 0, false
	}
	return class, rounded, true
}
