// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/alloc"
	"github.com/OrHayat/Oak/arena"
	"github.com/OrHayat/Oak/block"
	"github.com/OrHayat/Oak/serializer"
	"github.com/OrHayat/Oak/valueops"
)

func TestBytesRoundTrips(t *testing.T) {
	pool := block.New(arena.NewHeapSource(), 256)
	a := alloc.NewSyncRecycle(pool)
	s, err := a.Allocate(32, true)
	require.NoError(t, err)

	code, err := valueops.Put(a, s, []byte("hello off-heap"), serializer.Bytes{}, nil)
	require.NoError(t, err)
	require.Equal(t, oak.TRUE, code)

	res, err := valueops.Read(a, s, func(v valueops.View) []byte {
		return serializer.Bytes{}.Deserialize(v)
	})
	require.NoError(t, err)
	require.Equal(t, []byte("hello off-heap"), res.Value)
}

func TestUint64RoundTrips(t *testing.T) {
	pool := block.New(arena.NewHeapSource(), 256)
	a := alloc.NewSyncRecycle(pool)
	s, err := a.Allocate(8, true)
	require.NoError(t, err)

	_, err = valueops.Put(a, s, uint64(0x1122334455667788), serializer.Uint64{}, nil)
	require.NoError(t, err)

	res, err := valueops.Read(a, s, func(v valueops.View) uint64 {
		return serializer.Uint64{}.Deserialize(v)
	})
	require.NoError(t, err)
	require.EqualValues(t, 0x1122334455667788, res.Value)
}

type point struct {
	X, Y int32
}

func TestGobRoundTrips(t *testing.T) {
	pool := block.New(arena.NewHeapSource(), 256)
	a := alloc.NewSyncRecycle(pool)
	s, err := a.Allocate(64, true)
	require.NoError(t, err)

	want := point{X: 3, Y: -7}
	_, err = valueops.Put(a, s, want, serializer.Gob[point]{}, nil)
	require.NoError(t, err)

	res, err := valueops.Read(a, s, func(v valueops.View) point {
		return serializer.Gob[point]{}.Deserialize(v)
	})
	require.NoError(t, err)
	require.Equal(t, want, res.Value)
}
