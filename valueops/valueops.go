// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package valueops

import (
	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/alloc"
	"github.com/OrHayat/Oak/slice"
)

// attach resolves s to its byte view via a, validates the generation,
// and returns the decoded header plus the payload view. It is the only
// place ABA is detected (§4.2): every verb calls it before touching
// payload bytes.
//
// stale is true on a generation mismatch (RETRY); deleted is true when
// the header is already DELETED (FALSE). Both are mutually exclusive
// with a usable (header, payload) pair.
func attach(a alloc.Allocator, s slice.Slice) (h slice.Header, payload []byte, stale, deleted bool, err error) {
	buf, aerr := a.Attach(s)
	if aerr != nil {
		err = aerr
		return
	}
	h = slice.Wrap(buf)
	if h.Generation() != s.Generation {
		stale = true
		return
	}
	if h.State().Deleted {
		deleted = true
		return
	}
	payload = buf[slice.HeaderSize:]
	return
}

// blockedCode classifies a failed LockRead/LockWrite by re-reading the
// header's terminal tag: DELETED means the key is logically absent
// (FALSE); MOVED means the value was relocated by a concurrent put and
// the caller must re-lookup (RETRY) — a MOVED slice is never FALSE.
func blockedCode(h slice.Header) oak.Code {
	st := h.State()
	if st.Moved {
		return oak.RETRY
	}
	return oak.FALSE
}

// Read acquires the READ lock, calls reader with a bounds-checked view
// over the payload, releases READ, and returns OK + the closure's
// result. reader addressing outside [0, payload length) panics with
// oak.ErrOutOfBounds; the deferred UnlockRead still runs.
func Read[T any](a alloc.Allocator, s slice.Slice, reader func(View) T) (Result[T], error) {
	h, payload, stale, deleted, err := attach(a, s)
	if err != nil {
		return Result[T]{}, err
	}
	if stale {
		return retryResult[T](), nil
	}
	if deleted {
		return falseResult[T](), nil
	}
	if !h.LockRead() {
		if blockedCode(h) == oak.RETRY {
			return retryResult[T](), nil
		}
		return falseResult[T](), nil
	}
	defer h.UnlockRead()

	v := reader(View{buf: payload})
	return trueResult(v), nil
}

// Transform is equivalent to Read but writes into a caller-provided
// Result to avoid an allocation on the hot path, mirroring
// ThreadContext's scratch-result convention (§4.4).
func Transform[T any](out *Result[T], a alloc.Allocator, s slice.Slice, reader func(View) T) error {
	r, err := Read(a, s, reader)
	if err != nil {
		return err
	}
	*out = r
	return nil
}

// Compute acquires WRITE, runs mutator against a bounds-checked
// writable view, releases WRITE, and returns OK. Used for in-place
// read-modify-write without redefining the value's shape.
func Compute(a alloc.Allocator, s slice.Slice, mutator func(WritableView)) (oak.Code, error) {
	if s.IsReadOnly() {
		return oak.RETRY, oak.ErrReadOnly
	}
	h, payload, stale, deleted, err := attach(a, s)
	if err != nil {
		return oak.RETRY, err
	}
	if stale {
		return oak.RETRY, nil
	}
	if deleted {
		return oak.FALSE, nil
	}
	if !h.LockWrite() {
		return blockedCode(h), nil
	}
	defer h.UnlockWrite()

	mutator(WritableView{View{buf: payload}})
	return oak.TRUE, nil
}

// PutCallbacks lets the caller react to a put that could not fit in
// place; the verb itself never allocates a replacement slice (§4.3) —
// that is the out-of-scope index layer's job.
type PutCallbacks interface {
	// Moved is invoked after the header has transitioned to MOVED and
	// WRITE has been released, signaling the caller must reallocate
	// and republish a new slice for this key.
	Moved(old slice.Slice)
}

// Put attaches, acquires WRITE, and either serializes newValue in place
// (when it fits the slice's current payload capacity) or marks the
// header MOVED and invokes callbacks.Moved, leaving reallocation to the
// caller. callbacks may be nil.
func Put[T any](a alloc.Allocator, s slice.Slice, newValue T, ser Serializer[T], callbacks PutCallbacks) (oak.Code, error) {
	if s.IsReadOnly() {
		return oak.RETRY, oak.ErrReadOnly
	}
	h, payload, stale, deleted, err := attach(a, s)
	if err != nil {
		return oak.RETRY, err
	}
	if stale {
		return oak.RETRY, nil
	}
	if deleted {
		return oak.FALSE, nil
	}
	if !h.LockWrite() {
		return blockedCode(h), nil
	}

	moved := false
	defer func() {
		if !moved {
			h.UnlockWrite()
		}
	}()

	size := ser.Size(newValue)
	if size <= len(payload) {
		ser.Serialize(newValue, WritableView{View{buf: payload}})
		return oak.TRUE, nil
	}

	moved = true
	h.MarkMoved()
	if callbacks != nil {
		callbacks.Moved(s)
	}
	return oak.TRUE, nil
}

// Delete attaches, acquires WRITE, transitions the header directly to
// DELETED, hands the slice to the allocator's reclamation path, and
// returns OK. A second Delete on the same generation observes the
// header already DELETED and returns FALSE — delete's idempotence
// within a generation (§8).
//
// WRITE is released implicitly by LogicalDelete's CAS from writeBit to
// deletedBit (§9's resolution of the free-while-read-locked open
// question): by the time Free is called, the header is already
// observably DELETED and admission to the free list is safe.
func Delete(a alloc.Allocator, s slice.Slice) (oak.Code, error) {
	if s.IsReadOnly() {
		return oak.RETRY, oak.ErrReadOnly
	}
	h, _, stale, deleted, err := attach(a, s)
	if err != nil {
		return oak.RETRY, err
	}
	if stale {
		return oak.RETRY, nil
	}
	if deleted {
		return oak.FALSE, nil
	}
	if !h.LockWrite() {
		return blockedCode(h), nil
	}
	// Holding WRITE rules out a concurrent delete; LogicalDelete always
	// succeeds here, but the check keeps this call site correct if that
	// invariant is ever loosened.
	if !h.LogicalDelete() {
		return oak.FALSE, nil
	}
	if err := a.Free(s); err != nil {
		return oak.TRUE, err
	}
	return oak.TRUE, nil
}
