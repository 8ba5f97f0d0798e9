// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package threadctx implements the consumed ThreadContext collaborator
// (§4.4): a per-call scratch bundle that holds reusable slice
// descriptors so a caller driving many value operations in a loop does
// not allocate a fresh Context on every iteration. It is out of the
// core's scope — valueops and alloc never import it — and no other
// package in this module imports it either; it is offered to callers
// as a pool-of-scratch-buffers helper.
package threadctx

import (
	"sync"

	"github.com/OrHayat/Oak/slice"
	"github.com/OrHayat/Oak/valueops"
)

// Context is one thread's (or one goroutine's) reusable scratch space:
// one key descriptor, one value descriptor, and a Result[[]byte] slot
// big enough for the common case of reading a value out without
// allocating a new Result per call.
type Context struct {
	Key    slice.Slice
	Value  slice.Slice
	Result valueops.Result[[]byte]
}

// Reset clears the bundle back to its zero value, letting a pooled
// Context be reused for an unrelated key/value pair without leaking the
// previous lookup's descriptors.
func (c *Context) Reset() {
	*c = Context{}
}

// Pool hands out *Context values backed by a sync.Pool (§10.2).
type Pool struct {
	pool sync.Pool
}

// NewPool constructs an empty Pool. The zero value of Pool is also
// usable; NewPool exists for symmetry with the rest of the package
// constructors in this module.
func NewPool() *Pool {
	return &Pool{}
}

// Get returns a Context ready for use, either freshly allocated or
// recycled from a prior Put. The underlying sync.Pool has no New func
// set, so a zero-value Pool works too: a miss falls back to allocating
// a fresh Context here instead of type-asserting sync.Pool's untyped
// nil.
func (p *Pool) Get() *Context {
	if v := p.pool.Get(); v != nil {
		return v.(*Context)
	}
	return new(Context)
}

// Put resets ctx and returns it to the pool.
func (p *Pool) Put(ctx *Context) {
	ctx.Reset()
	p.pool.Put(ctx)
}
