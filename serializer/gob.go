// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package serializer

import (
	"bytes"
	"encoding/gob"

	"github.com/OrHayat/Oak/valueops"
)

// Gob is a valueops.Serializer built on encoding/gob, for values whose
// shape isn't known ahead of time as a fixed-width layout. Size encodes
// v into a scratch buffer to learn its length; Serialize re-encodes and
// copies, since the Serializer contract (valueops/serializer.go) keeps
// Size and Serialize independent calls with no shared state between
// them.
type Gob[T any] struct{}

// Size gob-encodes v into a throwaway buffer and returns its length.
// Panics if v is not gob-encodable, matching the rest of this package's
// contract that a Serializer is handed values its caller already knows
// how to encode.
func (Gob[T]) Size(v T) int {
	buf, err := encodeGob(v)
	if err != nil {
		panic(err)
	}
	return buf.Len()
}

// Serialize gob-encodes v and copies it into dst. dst.Capacity() is
// guaranteed by the caller (valueops.Put) to be at least Size(v).
func (Gob[T]) Serialize(v T, dst valueops.WritableView) {
	buf, err := encodeGob(v)
	if err != nil {
		panic(err)
	}
	copy(dst.Bytes(), buf.Bytes())
}

// Deserialize decodes a gob-encoded T out of src. The view aliases
// block memory that must not outlive the verb's closure, but
// gob.NewDecoder reads it eagerly before returning.
func (Gob[T]) Deserialize(src valueops.View) T {
	var v T
	dec := gob.NewDecoder(bytes.NewReader(src.Bytes()))
	if err := dec.Decode(&v); err != nil {
		panic(err)
	}
	return v
}

func encodeGob[T any](v T) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return &buf, nil
}
