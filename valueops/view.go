// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package valueops

import (
	"encoding/binary"

	"github.com/OrHayat/Oak"
)

// View is a read-only, bounds-checked window over a value's payload
// bytes, handed to a read/transform closure. Every accessor panics with
// oak.ErrOutOfBounds when addressed outside [0, Len()); the panic
// unwinds through the verb's deferred unlock and out to the caller, per
// §7's "immediately-raised error" error kind.
type View struct {
	buf []byte
}

// Len returns the payload length in bytes.
func (v View) Len() int { return len(v.buf) }

// Bytes returns the raw payload slice. The returned slice aliases the
// block's bytes; callers must not retain it past the closure's return.
func (v View) Bytes() []byte { return v.bounds(0, len(v.buf)) }

// Byte returns the payload byte at i.
func (v View) Byte(i int) byte { return v.bounds(i, i+1)[0] }

// Int32 reads a little-endian int32 at payload offset i.
func (v View) Int32(i int) int32 {
	return int32(binary.LittleEndian.Uint32(v.bounds(i, i+4)))
}

// Uint32 reads a little-endian uint32 at payload offset i.
func (v View) Uint32(i int) uint32 {
	return binary.LittleEndian.Uint32(v.bounds(i, i+4))
}

// Int64 reads a little-endian int64 at payload offset i.
func (v View) Int64(i int) int64 {
	return int64(binary.LittleEndian.Uint64(v.bounds(i, i+8)))
}

// Slice returns the payload bytes in [beg, end).
func (v View) Slice(beg, end int) []byte { return v.bounds(beg, end) }

func (v View) bounds(beg, end int) []byte {
	if beg < 0 || end > len(v.buf) || beg > end {
		panic(oak.ErrOutOfBounds)
	}
	return v.buf[beg:end]
}

// WritableView extends View with in-place mutation, handed to
// compute/put closures while the header holds WRITE.
type WritableView struct {
	View
}

// PutByte writes b at payload offset i.
func (v WritableView) PutByte(i int, b byte) {
	v.bounds(i, i+1)[0] = b
}

// PutInt32 writes a little-endian int32 at payload offset i.
func (v WritableView) PutInt32(i int, x int32) {
	binary.LittleEndian.PutUint32(v.bounds(i, i+4), uint32(x))
}

// PutUint32 writes a little-endian uint32 at payload offset i.
func (v WritableView) PutUint32(i int, x uint32) {
	binary.LittleEndian.PutUint32(v.bounds(i, i+4), x)
}

// PutInt64 writes a little-endian int64 at payload offset i.
func (v WritableView) PutInt64(i int, x int64) {
	binary.LittleEndian.PutUint64(v.bounds(i, i+8), uint64(x))
}

// Capacity returns the writable payload capacity in bytes — the limit
// put compares a serializer's requested size against.
func (v WritableView) Capacity() int { return v.Len() }
