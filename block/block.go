// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package block implements the BlockPool: ownership of large contiguous
// byte regions, each identified by a monotonically assigned id, drawn
// from a pluggable arena.Source on demand.
package block

import (
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/arena"
)

// Block is a contiguous byte region owned by a Pool. Once allocated, a
// Block is never moved or resized; Bump only ever grows towards Cap.
type Block struct {
	ID   oak.BlockID
	mem  arena.Arena
	buf  []byte
	bump atomic.Uint32
}

// Cap returns the block's total capacity in bytes.
func (b *Block) Cap() uint32 {
	return uint32(len(b.buf))
}

// Bytes returns the full backing region for this block. Callers address
// offsets into it directly; there is no copying.
func (b *Block) Bytes() []byte {
	return b.buf
}

// TryBump attempts to advance the block's cursor by length bytes via
// CAS, returning the offset the caller now owns. ok is false if length
// would overflow the block's capacity.
func (b *Block) TryBump(length uint32) (offset uint32, ok bool) {
	for {
		cur := b.bump.Load()
		next := cur + length
		if next > b.Cap() {
			return 0, false
		}
		if b.bump.CompareAndSwap(cur, next) {
			return cur, true
		}
	}
}

// Allocated reports the cumulative bytes handed out by bump allocation
// in this block, regardless of any later free-list recycling.
func (b *Block) Allocated() uint64 {
	return uint64(b.bump.Load())
}

// Pool owns one or more Blocks drawn from an arena.Source. It hands out
// fresh Blocks on Grow and never reclaims a Block's id; a Block is only
// returned to its arena (via Close) after the pool itself is closed.
type Pool struct {
	source     arena.Source
	blockSize  uint32
	nextID     atomic.Uint32
	mu         sync.RWMutex
	blocks     []*Block
}

// New returns a Pool whose Blocks are blockSize bytes, drawn from
// source. Block ids are assigned starting at 1; 0 is reserved as the
// "not associated" sentinel (oak.BlockID zero value).
func New(source arena.Source, blockSize uint32) *Pool {
	p := &Pool{source: source, blockSize: blockSize}
	return p
}

// BlockSize returns the fixed capacity of every Block this Pool grows.
func (p *Pool) BlockSize() uint32 {
	return p.blockSize
}

// Grow allocates and registers a new Block, returning its id. A
// source.New failure is surfaced as oak.ErrOutOfMemory, wrapping the
// underlying cause (an mmap errno, a heap allocation failure, ...),
// unless the source already reports a configuration/platform error of
// its own (ErrInvalidBlockSize, ErrUnsupportedArena), which is
// propagated unchanged rather than mislabeled as resource exhaustion.
func (p *Pool) Grow() (oak.BlockID, error) {
	a, err := p.source.New(p.blockSize)
	if err != nil {
		if errors.Is(err, oak.ErrInvalidBlockSize) || errors.Is(err, oak.ErrUnsupportedArena) {
			return 0, err
		}
		return 0, errors.Mark(errors.Wrapf(err, "oak: block pool failed to grow"), oak.ErrOutOfMemory)
	}
	// Assign the id under the same lock as the append, so blocks[id-1]
	// is always the block with that id even when Grow races itself.
	p.mu.Lock()
	id := oak.BlockID(p.nextID.Add(1))
	blk := &Block{ID: id, mem: a, buf: a.Bytes()}
	p.blocks = append(p.blocks, blk)
	p.mu.Unlock()
	return id, nil
}

// Get returns the Block for id, or nil if it has never been grown.
func (p *Pool) Get(id oak.BlockID) *Block {
	if id == 0 {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	idx := int(id) - 1
	if idx < 0 || idx >= len(p.blocks) {
		return nil
	}
	return p.blocks[idx]
}

// Latest returns the most recently grown Block, or nil if the pool is
// empty.
func (p *Pool) Latest() *Block {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.blocks) == 0 {
		return nil
	}
	return p.blocks[len(p.blocks)-1]
}

// Attach resolves (blockID, offset, length) to a byte view without
// copying. It is the sole read path collaborators outside this package
// use to reach block bytes.
func (p *Pool) Attach(id oak.BlockID, offset, length uint32) ([]byte, bool) {
	b := p.Get(id)
	if b == nil {
		return nil, false
	}
	if uint64(offset)+uint64(length) > uint64(b.Cap()) {
		return nil, false
	}
	return b.buf[offset : offset+length], true
}

// Allocated sums cumulative bump-allocated bytes across every Block in
// the pool. It never decreases, even as slices are freed and recycled.
func (p *Pool) Allocated() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var total uint64
	for _, b := range p.blocks {
		total += b.Allocated()
	}
	return total
}

// Close releases every Block's arena back to the host. The pool must
// not be used afterwards.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for _, b := range p.blocks {
		if err := b.mem.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.blocks = nil
	return firstErr
}
