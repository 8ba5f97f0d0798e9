// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package alloc implements the BlockAllocator contract over a
// block.Pool: SeqExpand (append-only, for keys) and SyncRecycle
// (bump plus a size-classed free list, for values).
package alloc

import "github.com/OrHayat/Oak/slice"

// Allocator is the contract both allocation strategies satisfy.
type Allocator interface {
	// Allocate hands out a fresh slice of userLength payload bytes. If
	// isValue, HeaderSize bytes are added and the header is
	// initialized to (FREE, gen). Returns oak.ErrOutOfMemory, wrapping
	// the underlying cause, if the backing pool cannot grow a new
	// block to satisfy the request.
	Allocate(userLength uint32, isValue bool) (slice.Slice, error)
	// Free returns a slice to the allocator's reclamation path.
	// SeqExpand's Free is a no-op; SyncRecycle requires the slice's
	// header to be observably DELETED first.
	Free(s slice.Slice) error
	// Attach resolves a descriptor to a byte view without copying.
	Attach(s slice.Slice) ([]byte, error)
	// Allocated reports cumulative bytes handed out by bump
	// allocation, ignoring later frees.
	Allocated() uint64
}
