// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package slice implements the Slice descriptor and the ValueHeader
// lock/generation protocol that gates every value-operation verb.
package slice

import (
	"sync/atomic"
	"unsafe"

	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/internal/spin"
)

// HeaderSize is the fixed-size prefix of every value slice: a lock
// state word followed by a generation tag.
const HeaderSize = 8

const (
	writeBit    uint32 = 1 << 31
	deletedBit  uint32 = 1 << 30
	movedBit    uint32 = 1 << 29
	readerMask  uint32 = movedBit - 1
	tagMask     uint32 = writeBit | deletedBit | movedBit
)

// State is a snapshot of a header's lock word, decoded for inspection.
type State struct {
	Write    bool
	Deleted  bool
	Moved    bool
	Readers  uint32
}

// Header is a view over the first HeaderSize bytes of a value slice's
// backing bytes. It does not own those bytes; the caller (alloc.Allocator
// via its Attach) is responsible for the view's lifetime.
type Header struct {
	lock *uint32
	gen  *uint32
}

// Wrap interprets buf[0:HeaderSize] as a Header. buf must be at least
// HeaderSize bytes and must not be moved for the life of the Header.
func Wrap(buf []byte) Header {
	if len(buf) < HeaderSize {
		panic(oak.ErrOutOfBounds)
	}
	return Header{
		lock: (*uint32)(unsafe.Pointer(&buf[0])),
		gen:  (*uint32)(unsafe.Pointer(&buf[4])),
	}
}

// Init writes a fresh (FREE, gen) header, as done by an Allocator on
// first allocation or on recycling after a free.
func Init(buf []byte, gen oak.Generation) {
	h := Wrap(buf)
	atomic.StoreUint32(h.gen, uint32(gen))
	atomic.StoreUint32(h.lock, 0)
}

// Generation reads the header's current generation tag.
func (h Header) Generation() oak.Generation {
	return oak.Generation(atomic.LoadUint32(h.gen))
}

// State decodes the current lock word.
func (h Header) State() State {
	s := atomic.LoadUint32(h.lock)
	return decodeState(s)
}

func decodeState(s uint32) State {
	return State{
		Write:   s&writeBit != 0,
		Deleted: s&deletedBit != 0,
		Moved:   s&movedBit != 0,
		Readers: s & readerMask,
	}
}

// LockRead acquires a read lock, spinning-then-yielding while the
// header is WRITE-held. It returns false if the header is DELETED or
// MOVED: a reader must not block behind a terminal state.
func (h Header) LockRead() bool {
	var b spin.Backoff
	for {
		cur := atomic.LoadUint32(h.lock)
		if cur&(deletedBit|movedBit) != 0 {
			return false
		}
		if cur&writeBit != 0 {
			b.Wait()
			continue
		}
		next := cur + 1
		if next&readerMask == 0 {
			panic("oak: reader count overflow")
		}
		if atomic.CompareAndSwapUint32(h.lock, cur, next) {
			return true
		}
		b.Wait()
	}
}

// UnlockRead releases one reader. Release publishes all payload writes
// observed under the matching WRITE to any subsequent LockRead.
func (h Header) UnlockRead() {
	for {
		cur := atomic.LoadUint32(h.lock)
		assertLockWord("UnlockRead", cur&readerMask != 0, cur)
		next := cur - 1
		if atomic.CompareAndSwapUint32(h.lock, cur, next) {
			return
		}
	}
}

// LockWrite acquires the exclusive write lock. It only succeeds from
// FREE (reader count zero, no tag bits); there is no upgrade from READ.
// It returns false if the header is DELETED or MOVED.
func (h Header) LockWrite() bool {
	var b spin.Backoff
	for {
		cur := atomic.LoadUint32(h.lock)
		if cur&(deletedBit|movedBit) != 0 {
			return false
		}
		if cur != 0 {
			b.Wait()
			continue
		}
		if atomic.CompareAndSwapUint32(h.lock, 0, writeBit) {
			return true
		}
		b.Wait()
	}
}

// UnlockWrite releases the write lock back to FREE.
func (h Header) UnlockWrite() {
	cur := atomic.LoadUint32(h.lock)
	assertLockWord("UnlockWrite", cur&writeBit != 0, cur)
	atomic.StoreUint32(h.lock, 0)
}

// LogicalDelete transitions the header to DELETED. The caller must hold
// WRITE, or the header must be FREE (the pre-publication case, where a
// slice is discarded before any reader or writer has ever attached).
// A second LogicalDelete on an already-DELETED header is a no-op that
// reports false, giving delete's idempotence (§8) a single call site.
func (h Header) LogicalDelete() bool {
	for {
		cur := atomic.LoadUint32(h.lock)
		if cur&deletedBit != 0 {
			return false
		}
		assertLockWord("LogicalDelete", cur == 0 || cur == writeBit, cur)
		if atomic.CompareAndSwapUint32(h.lock, cur, deletedBit) {
			return true
		}
	}
}

// MarkMoved transitions a WRITE-held header directly to MOVED and
// releases the write lock in the same step, used by put when the new
// value no longer fits the slice's payload capacity. A MOVED slice is
// not logically absent: callers must not treat it as FALSE.
func (h Header) MarkMoved() {
	for {
		cur := atomic.LoadUint32(h.lock)
		assertLockWord("MarkMoved", cur == writeBit, cur)
		if atomic.CompareAndSwapUint32(h.lock, cur, movedBit) {
			return
		}
	}
}
