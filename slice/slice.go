// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package slice

import "github.com/OrHayat/Oak"

// Flavor distinguishes the two BlockAllocator strategies a Slice was
// carved from, since SeqExpand slices never carry a meaningful
// generation and are never freed.
type Flavor uint8

const (
	// SeqExpand slices back immutable data (keys): append-only bump
	// allocation, no free list, no generation protocol.
	SeqExpand Flavor = iota
	// SyncRecycle slices back mutable values: bump allocation plus a
	// size-classed free list, gated by the generation protocol.
	SyncRecycle
)

// Slice is a value-type handle to bytes inside a block.Pool. It carries
// enough information to re-derive its byte view without consulting any
// external map, and is freely copyable: copying a Slice never alters
// ownership of the underlying bytes.
type Slice struct {
	BlockID    oak.BlockID
	Offset     uint32
	Length     uint32
	Generation oak.Generation
	Flavor     Flavor
	readOnly   bool
}

// New constructs a Slice descriptor. It does not allocate or touch any
// bytes; callers obtain a populated Slice from an Allocator.
func New(blockID oak.BlockID, offset, length uint32, gen oak.Generation, flavor Flavor) Slice {
	return Slice{BlockID: blockID, Offset: offset, Length: length, Generation: gen, Flavor: flavor}
}

// Duplicate returns a copy of the Slice. Since Slice is already a plain
// value type, Duplicate is just a named copy — it exists to satisfy the
// External Interfaces contract (§6) collaborators depend on.
func (s Slice) Duplicate() Slice {
	return s
}

// ReadOnly returns a copy of the Slice marked read-only. Verbs that
// accept a read-only Slice must refuse write-mode operations on it.
func (s Slice) ReadOnly() Slice {
	s.readOnly = true
	return s
}

// IsReadOnly reports whether this descriptor was derived via ReadOnly.
func (s Slice) IsReadOnly() bool {
	return s.readOnly
}

// AllocatedLength returns the total slice length (header, if any, plus
// payload).
func (s Slice) AllocatedLength() uint32 {
	return s.Length
}

// AssociateAllocation stamps a new generation onto the descriptor. It is
// used by collaborators (the ordered index) to publish a descriptor
// whose generation differs from what a stale copy still carries —
// this is the ABA hazard every verb's attach step detects. Rebinding the
// generation must never also move the descriptor's position; in a
// debug build assertSamePosition panics if it does.
func (s Slice) AssociateAllocation(gen oak.Generation) Slice {
	next := s
	next.Generation = gen
	assertSamePosition("AssociateAllocation", s, next)
	return next
}

// HasHeader reports whether this Slice's bytes begin with a ValueHeader.
// Keys (SeqExpand, allocated with isValue=false) have no header.
func (s Slice) HasHeader(isValue bool) bool {
	return isValue
}

// PayloadOffset returns the offset, relative to the slice's own bytes,
// where the payload begins: 0 for keys, HeaderSize for values.
func (s Slice) PayloadOffset(isValue bool) uint32 {
	if isValue {
		return HeaderSize
	}
	return 0
}

// PayloadLength returns the payload length for this slice, given
// whether it carries a header.
func (s Slice) PayloadLength(isValue bool) uint32 {
	return s.Length - s.PayloadOffset(isValue)
}
