// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package arena

import "github.com/OrHayat/Oak"

// NewMmapSource is unavailable on non-unix platforms; it reports
// ErrUnsupportedArena rather than silently falling back to the heap
// source, so callers who explicitly asked for mmap notice.
func NewMmapSource() Source {
	return mmapSource{}
}

type mmapSource struct{}

func (mmapSource) New(capacity uint32) (Arena, error) {
	return nil, oak.ErrUnsupportedArena
}
