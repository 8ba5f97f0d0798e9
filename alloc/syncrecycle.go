// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"sync"

	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/block"
	"github.com/OrHayat/Oak/slice"
)

// SyncRecycle bump-allocates like SeqExpand but additionally maintains a
// bounded set of free lists keyed by rounded size class. Allocate first
// pops a matching free slice; on miss it falls back to bump. It is the
// allocator behind mutable values, since only SyncRecycle slices carry
// a meaningful generation.
type SyncRecycle struct {
	pool    *block.Pool
	growMu  sync.Mutex
	classes [numSizeClasses]freelist
}

type freelist struct {
	mu    sync.Mutex
	items []slice.Slice
}

func (fl *freelist) pop() (slice.Slice, bool) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	n := len(fl.items)
	if n == 0 {
		return slice.Slice{}, false
	}
	s := fl.items[n-1]
	fl.items = fl.items[:n-1]
	return s, true
}

func (fl *freelist) push(s slice.Slice) {
	fl.mu.Lock()
	fl.items = append(fl.items, s)
	fl.mu.Unlock()
}

var _ Allocator = (*SyncRecycle)(nil)

// NewSyncRecycle returns a SyncRecycle allocator over pool.
func NewSyncRecycle(pool *block.Pool) *SyncRecycle {
	return &SyncRecycle{pool: pool}
}

// Allocate always carries a value header: SyncRecycle backs mutable
// values only, so isValue is implied true regardless of the argument,
// matching §3's "Creation" lifecycle (the header must exist before a
// generation can be stamped).
func (a *SyncRecycle) Allocate(userLength uint32, isValue bool) (slice.Slice, error) {
	class, rounded, trackable := sizeClass(userLength)
	if trackable {
		if s, ok := a.classes[class].pop(); ok {
			// The slot spans the whole size class; the descriptor covers
			// only the requested payload so views stay bounded by it.
			s.Length = userLength + slice.HeaderSize
			return a.reinit(s)
		}
	}

	total := userLength + slice.HeaderSize
	if trackable {
		total = rounded + slice.HeaderSize
	}

	for {
		blk := a.pool.Latest()
		if blk != nil {
			if offset, ok := blk.TryBump(total); ok {
				gen := oak.Generation(1)
				buf := blk.Bytes()[offset : offset+total]
				slice.Init(buf, gen)
				return slice.New(blk.ID, offset, userLength+slice.HeaderSize, gen, slice.SyncRecycle), nil
			}
		}
		if err := a.growPast(blk); err != nil {
			return slice.Slice{}, err
		}
	}
}

// reinit bumps the generation of a recycled slice and reinitializes its
// header to (FREE, gen). Wrapping is tolerated per §9; a 32-bit
// generation wrapping back to a value a live stale descriptor still
// holds is astronomically unlikely at any realistic allocation rate.
func (a *SyncRecycle) reinit(s slice.Slice) (slice.Slice, error) {
	buf, ok := a.pool.Attach(s.BlockID, s.Offset, s.Length)
	if !ok {
		return slice.Slice{}, oak.ErrBlockNotFound
	}
	h := slice.Wrap(buf)
	next := h.Generation() + 1
	slice.Init(buf, next)
	return s.AssociateAllocation(next), nil
}

func (a *SyncRecycle) growPast(observed *block.Block) error {
	a.growMu.Lock()
	defer a.growMu.Unlock()
	if a.pool.Latest() != observed {
		return nil
	}
	_, err := a.pool.Grow()
	return err
}

// Free returns s to its size-classed free list. The header must already
// be observably DELETED — ValueOperations.Delete is responsible for
// that transition before handing the slice here; Free re-checks rather
// than trusting the caller, since it is the sole authority over free
// list admission (§9, "Open question" resolution).
func (a *SyncRecycle) Free(s slice.Slice) error {
	buf, ok := a.pool.Attach(s.BlockID, s.Offset, s.Length)
	if !ok {
		return oak.ErrBlockNotFound
	}
	h := slice.Wrap(buf)
	if !h.State().Deleted {
		return oak.ErrNotDeleted
	}
	class, _, trackable := sizeClass(s.PayloadLength(true))
	if !trackable {
		return nil
	}
	a.classes[class].push(s)
	return nil
}

func (a *SyncRecycle) Attach(s slice.Slice) ([]byte, error) {
	buf, ok := a.pool.Attach(s.BlockID, s.Offset, s.Length)
	if !ok {
		return nil, oak.ErrBlockNotFound
	}
	return buf, nil
}

func (a *SyncRecycle) Allocated() uint64 {
	return a.pool.Allocated()
}
