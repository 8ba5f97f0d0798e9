// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package block_test

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/arena"
	"github.com/OrHayat/Oak/block"
)

// failingSource always reports a raw resource-exhaustion error, the way
// an out-of-memory unix.Mmap errno would, to confirm Pool.Grow maps it
// to oak.ErrOutOfMemory rather than passing it through unmarked.
type failingSource struct{}

func (failingSource) New(uint32) (arena.Arena, error) {
	return nil, errors.New("cannot allocate memory")
}

func TestPoolGrowAssignsSequentialIDs(t *testing.T) {
	p := block.New(arena.NewHeapSource(), 128)

	id1, err := p.Grow()
	require.NoError(t, err)
	require.EqualValues(t, 1, id1)

	id2, err := p.Grow()
	require.NoError(t, err)
	require.EqualValues(t, 2, id2)

	require.Equal(t, p.Get(id2), p.Latest())
}

func TestPoolGetUnknownBlockIsNil(t *testing.T) {
	p := block.New(arena.NewHeapSource(), 128)
	require.Nil(t, p.Get(0))
	require.Nil(t, p.Get(99))
}

func TestBlockTryBumpRespectsCapacity(t *testing.T) {
	p := block.New(arena.NewHeapSource(), 16)
	_, err := p.Grow()
	require.NoError(t, err)
	blk := p.Latest()

	off, ok := blk.TryBump(10)
	require.True(t, ok)
	require.EqualValues(t, 0, off)

	off, ok = blk.TryBump(10)
	require.False(t, ok)
	require.EqualValues(t, 0, off)

	off, ok = blk.TryBump(6)
	require.True(t, ok)
	require.EqualValues(t, 10, off)
}

func TestBlockTryBumpConcurrentIsDisjoint(t *testing.T) {
	p := block.New(arena.NewHeapSource(), 4096)
	_, err := p.Grow()
	require.NoError(t, err)
	blk := p.Latest()

	const n = 256
	offsets := make([]uint32, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			off, ok := blk.TryBump(16)
			require.True(t, ok)
			offsets[i] = off
		}(i)
	}
	wg.Wait()

	seen := make(map[uint32]bool, n)
	for _, off := range offsets {
		require.False(t, seen[off], "offset %d handed out twice", off)
		seen[off] = true
	}
}

func TestPoolAttachBoundsCheck(t *testing.T) {
	p := block.New(arena.NewHeapSource(), 32)
	id, err := p.Grow()
	require.NoError(t, err)

	_, ok := p.Attach(id, 0, 32)
	require.True(t, ok)

	_, ok = p.Attach(id, 16, 32)
	require.False(t, ok)

	_, ok = p.Attach(id+1, 0, 1)
	require.False(t, ok)
}

func TestPoolGrowMapsSourceFailureToOutOfMemory(t *testing.T) {
	p := block.New(failingSource{}, 128)
	_, err := p.Grow()
	require.Error(t, err)
	require.True(t, errors.Is(err, oak.ErrOutOfMemory))
}

func TestPoolGrowPropagatesInvalidBlockSizeUnmarked(t *testing.T) {
	p := block.New(arena.NewHeapSource(), 1)
	_, err := p.Grow()
	require.Error(t, err)
	require.True(t, errors.Is(err, oak.ErrInvalidBlockSize))
	require.False(t, errors.Is(err, oak.ErrOutOfMemory))
}

func TestPoolAllocatedSumsAcrossBlocks(t *testing.T) {
	p := block.New(arena.NewHeapSource(), 64)
	_, err := p.Grow()
	require.NoError(t, err)
	p.Latest().TryBump(20)

	_, err = p.Grow()
	require.NoError(t, err)
	p.Latest().TryBump(30)

	require.EqualValues(t, 50, p.Allocated())
}
