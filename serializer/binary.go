// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package serializer

import (
	"github.com/OrHayat/Oak/valueops"
)

// Bytes is the Serializer[[]byte] for raw byte values: a little-endian
// uint32 length prefix followed by the bytes verbatim, so a value
// round-trips exactly even when the slice's payload is larger than it.
// It is the serializer valueops.Put/Read examples and the bench harness
// (cmd/oakbench) use by default.
type Bytes struct{}

// Size returns 4 + len(v): the length prefix plus the bytes.
func (Bytes) Size(v []byte) int { return 4 + len(v) }

// Serialize writes len(v) at payload offset 0 and copies v after it.
func (Bytes) Serialize(v []byte, dst valueops.WritableView) {
	dst.PutUint32(0, uint32(len(v)))
	copy(dst.Slice(4, 4+len(v)), v)
}

// Deserialize copies the prefixed bytes out into a freshly allocated
// []byte, since the view aliases block memory that must not outlive the
// verb's closure.
func (Bytes) Deserialize(src valueops.View) []byte {
	n := int(src.Uint32(0))
	out := make([]byte, n)
	copy(out, src.Slice(4, 4+n))
	return out
}

// Uint64 serializes a single little-endian uint64, grounded on the
// View/WritableView fixed-width accessors (valueops/view.go).
type Uint64 struct{}

// Size is always 8.
func (Uint64) Size(uint64) int { return 8 }

// Serialize writes v as a little-endian uint64 at payload offset 0.
func (Uint64) Serialize(v uint64, dst valueops.WritableView) {
	dst.PutUint32(0, uint32(v))
	dst.PutUint32(4, uint32(v>>32))
}

// Deserialize reads a little-endian uint64 back out of src.
func (Uint64) Deserialize(src valueops.View) uint64 {
	lo := uint64(src.Uint32(0))
	hi := uint64(src.Uint32(4))
	return lo | hi<<32
}
