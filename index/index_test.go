// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package index_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/alloc"
	"github.com/OrHayat/Oak/arena"
	"github.com/OrHayat/Oak/block"
	"github.com/OrHayat/Oak/hashfunc"
	"github.com/OrHayat/Oak/index"
	"github.com/OrHayat/Oak/serializer"
	"github.com/OrHayat/Oak/slice"
	"github.com/OrHayat/Oak/valueops"
)

func TestIndexPublishLookupRemove(t *testing.T) {
	ix := index.New(hashfunc.FNV1a{})

	s1 := slice.New(1, 0, 20, 1, slice.SyncRecycle)
	s2 := slice.New(1, 20, 20, 1, slice.SyncRecycle)

	ix.Publish([]byte("b"), s2)
	ix.Publish([]byte("a"), s1)

	got, ok := ix.Lookup([]byte("a"))
	require.True(t, ok)
	require.Equal(t, s1, got)

	require.Equal(t, 2, ix.Len())

	removed, ok := ix.Remove([]byte("a"))
	require.True(t, ok)
	require.Equal(t, s1, removed)

	_, ok = ix.Lookup([]byte("a"))
	require.False(t, ok)
	require.Equal(t, 1, ix.Len())
}

func TestIndexOverwritePublishesNewDescriptor(t *testing.T) {
	ix := index.New(nil)
	s1 := slice.New(1, 0, 8, 1, slice.SyncRecycle)
	s2 := s1.AssociateAllocation(2)

	ix.Publish([]byte("k"), s1)
	ix.Publish([]byte("k"), s2)

	got, ok := ix.Lookup([]byte("k"))
	require.True(t, ok)
	require.Equal(t, s2, got)
}

func TestIndexLookupMissingKey(t *testing.T) {
	ix := index.New(nil)
	_, ok := ix.Lookup([]byte("nope"))
	require.False(t, ok)
}

// End-to-end: publish a freshly allocated value slice, look it up back
// out of the index, and round-trip it through valueops — exercising the
// "publication happens-before" assumption the value-slice core assumes
// of its ordered-index collaborator.
func TestIndexRoundTripsThroughValueOps(t *testing.T) {
	pool := block.New(arena.NewHeapSource(), 256)
	a := alloc.NewSyncRecycle(pool)
	ix := index.New(hashfunc.XXHash{})

	s, err := a.Allocate(16, true)
	require.NoError(t, err)

	code, err := valueops.Put(a, s, []byte("hello"), serializer.Bytes{}, nil)
	require.NoError(t, err)
	require.Equal(t, oak.TRUE, code)

	ix.Publish([]byte("greeting"), s)

	got, ok := ix.Lookup([]byte("greeting"))
	require.True(t, ok)

	res, err := valueops.Read(a, got, func(v valueops.View) []byte {
		return serializer.Bytes{}.Deserialize(v)
	})
	require.NoError(t, err)
	require.Equal(t, oak.TRUE, res.Code)
	require.Equal(t, []byte("hello"), res.Value)

	delCode, err := valueops.Delete(a, got)
	require.NoError(t, err)
	require.Equal(t, oak.TRUE, delCode)

	removed, ok := ix.Remove([]byte("greeting"))
	require.True(t, ok)
	require.Equal(t, s, removed)
}

func TestIndexConcurrentPublishAndLookup(t *testing.T) {
	ix := index.New(nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			ix.Publish([]byte{byte(i)}, slice.New(1, uint32(i), 8, 1, slice.SyncRecycle))
		}
		close(done)
	}()
	for i := 0; i < 200; i++ {
		ix.Lookup([]byte{byte(i)})
	}
	<-done
	require.LessOrEqual(t, ix.Len(), 256)
}
