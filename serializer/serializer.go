// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package serializer provides binary and gob implementations of
// valueops.Serializer: a couple of concrete codecs shipped alongside
// the abstract wire interface they implement.
package serializer
