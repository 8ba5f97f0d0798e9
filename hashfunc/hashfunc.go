// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package hashfunc implements the consumed Hash function interface
// (§6): hash(K) -> U. Neither implementation is used by the core —
// alloc, slice, and valueops never import this package — it exists so
// the minimal index/ collaborator (§10.4) has a concrete hash for
// Index.Shard; the index itself keeps one sorted list, not buckets.
package hashfunc

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
)

// Hash maps a key's byte representation to a uint64 bucket tag.
type Hash interface {
	Sum64(key []byte) uint64
}

// FNV1a is the standard library's 64-bit FNV-1a, grounded on the
// original's use of a simple non-cryptographic hash for entry
// dispersion (com.yahoo.oak relies on the key comparator, but a
// hash-sharded index needs its own dispersion function).
type FNV1a struct{}

// Sum64 hashes key with FNV-1a.
func (FNV1a) Sum64(key []byte) uint64 {
	h := fnv.New64a()
	h.Write(key)
	return h.Sum64()
}

// XXHash wraps cespare/xxhash/v2, the dependency this expansion's
// domain stack wires in as the default hash behind Index.Shard (§10.3).
type XXHash struct{}

// Sum64 hashes key with xxhash.
func (XXHash) Sum64(key []byte) uint64 {
	return xxhash.Sum64(key)
}
