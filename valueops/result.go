// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package valueops implements the public verb layer — read, transform,
// put, compute, delete — built on top of slice.Slice, slice.Header, and
// an alloc.Allocator. Every verb performs the attach protocol first and
// releases its lock on every exit path, including a panicking user
// closure, via defer.
package valueops

import "github.com/OrHayat/Oak"

// Result is the outcome of a verb that produces a value (Read,
// Transform). Code is RETRY or FALSE when Value is the zero value; it
// is TRUE when the verb ran the user closure and Value holds its
// return.
type Result[T any] struct {
	Code  oak.Code
	Value T
}

func retryResult[T any]() Result[T] { return Result[T]{Code: oak.RETRY} }
func falseResult[T any]() Result[T] { return Result[T]{Code: oak.FALSE} }
func trueResult[T any](v T) Result[T] { return Result[T]{Code: oak.TRUE, Value: v} }
