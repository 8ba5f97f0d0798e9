// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package index implements a minimal ordered collaborator over
// slice.Slice descriptors: a sorted []entry with binary-search lookup
// and copy-on-grow insert. It exists only to be a runnable stand-in for
// the ordered index the value-slice core's scope (§1) explicitly
// excludes — real ordering at scale, range scans, and transactions are
// out of scope here too. Its sole job is to exercise the "publication
// happens-before" assumption of the value-slice core's design notes: a slice descriptor
// published into an entry must be visible, in full, to any goroutine
// that subsequently observes that entry.
package index

import (
	"bytes"
	"sort"
	"sync"

	"github.com/OrHayat/Oak/hashfunc"
	"github.com/OrHayat/Oak/slice"
)

type entry struct {
	key   []byte
	value slice.Slice
}

// Index is a sorted, copy-on-grow key index. It is not a B-tree: insert
// and delete are O(n); it is sized for demonstrating publication and
// lookup semantics, not for production key counts.
type Index struct {
	mu      sync.RWMutex
	entries []entry
	hash    hashfunc.Hash
}

// New returns an empty Index. hash is carried through per §6's "Hash
// function interface" (consumed, not used inside the value-slice core)
// and exposed via Shard for a caller that wants to bucket keys before
// hitting the index.
func New(hash hashfunc.Hash) *Index {
	if hash == nil {
		hash = hashfunc.XXHash{}
	}
	return &Index{hash: hash}
}

func (ix *Index) search(key []byte) (int, bool) {
	i := sort.Search(len(ix.entries), func(i int) bool {
		return bytes.Compare(ix.entries[i].key, key) >= 0
	})
	if i < len(ix.entries) && bytes.Equal(ix.entries[i].key, key) {
		return i, true
	}
	return i, false
}

// Lookup returns the slice descriptor published for key, and whether
// key is present. The returned Slice is a plain value copy: publication
// into the index happens-before any Lookup that observes it, per the
// core's design notes, since both sides synchronize through mu.
func (ix *Index) Lookup(key []byte) (slice.Slice, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	i, ok := ix.search(key)
	if !ok {
		return slice.Slice{}, false
	}
	return ix.entries[i].value, true
}

// Publish inserts or overwrites the slice descriptor for key. A
// descriptor passed to Publish must already be associated with its
// allocation's generation (slice.Slice.AssociateAllocation); Publish
// does not itself allocate or stamp a generation.
func (ix *Index) Publish(key []byte, s slice.Slice) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	i, ok := ix.search(key)
	if ok {
		ix.entries[i].value = s
		return
	}
	ix.entries = append(ix.entries, entry{})
	copy(ix.entries[i+1:], ix.entries[i:])
	ix.entries[i] = entry{key: append([]byte(nil), key...), value: s}
}

// Remove deletes key's entry from the index, if present, returning the
// slice descriptor it held so the caller can hand it to the allocator's
// Free (the value-slice core itself never calls Free on the caller's
// behalf outside of ValueOperations.Delete's own internal bookkeeping).
func (ix *Index) Remove(key []byte) (slice.Slice, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	i, ok := ix.search(key)
	if !ok {
		return slice.Slice{}, false
	}
	s := ix.entries[i].value
	ix.entries = append(ix.entries[:i], ix.entries[i+1:]...)
	return s, true
}

// Len reports the number of published entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Shard hashes key with the Index's configured Hash function. It has no
// effect on Lookup/Publish/Remove; it exists so a caller building
// concurrent shards on top of a single Index type has something to
// bucket by, per §6's "carried through ThreadContext equivalents"
// language for the consumed hash interface.
func (ix *Index) Shard(key []byte, shards uint64) uint64 {
	if shards == 0 {
		return 0
	}
	return ix.hash.Sum64(key) % shards
}
