// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"sync"

	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/block"
	"github.com/OrHayat/Oak/slice"
)

// SeqExpand bump-allocates within the current block until exhausted,
// then requests a new block from the pool. It keeps no free list:
// Free is a no-op, matching its use for immutable data such as keys.
type SeqExpand struct {
	pool   *block.Pool
	growMu sync.Mutex
}

var _ Allocator = (*SeqExpand)(nil)

// NewSeqExpand returns a SeqExpand allocator over pool. pool must
// already have at least one block, or the first Allocate call grows it.
func NewSeqExpand(pool *block.Pool) *SeqExpand {
	return &SeqExpand{pool: pool}
}

func (a *SeqExpand) Allocate(userLength uint32, isValue bool) (slice.Slice, error) {
	total := userLength
	if isValue {
		total += slice.HeaderSize
	}

	// Bump by a multiple of 8 so every slice starts word-aligned.
	bump := (total + 7) &^ 7

	for {
		blk := a.pool.Latest()
		if blk != nil {
			if offset, ok := blk.TryBump(bump); ok {
				s := slice.New(blk.ID, offset, total, oak.GenerationNone, slice.SeqExpand)
				if isValue {
					slice.Init(blk.Bytes()[offset:offset+total], oak.GenerationNone)
				}
				return s, nil
			}
		}
		if err := a.growPast(blk); err != nil {
			return slice.Slice{}, err
		}
	}
}

// growPast grows the pool by one block, unless another goroutine has
// already done so since observed (the stale blk snapshot is the
// linearization point: if pool.Latest() has moved on, someone else won
// the race and the caller simply retries its bump against the new
// block).
func (a *SeqExpand) growPast(observed *block.Block) error {
	a.growMu.Lock()
	defer a.growMu.Unlock()
	if a.pool.Latest() != observed {
		return nil
	}
	_, err := a.pool.Grow()
	return err
}

// Free is a no-op: SeqExpand slices are never recycled.
func (a *SeqExpand) Free(slice.Slice) error {
	return nil
}

func (a *SeqExpand) Attach(s slice.Slice) ([]byte, error) {
	buf, ok := a.pool.Attach(s.BlockID, s.Offset, s.Length)
	if !ok {
		return nil, oak.ErrBlockNotFound
	}
	return buf, nil
}

func (a *SeqExpand) Allocated() uint64 {
	return a.pool.Allocated()
}
