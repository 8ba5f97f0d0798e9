package oak

import "github.com/cockroachdb/errors"

// Sentinel errors shared across the allocator, slice, and value-operations
// packages. Wrapping uses fmt.Errorf("...: %w", err) as usual; cockroachdb's
// errors.Is/errors.Mark let these survive a wrap across package boundaries.
var (
	// ErrOutOfMemory is returned by an Allocator when no block can
	// satisfy a request and the pool cannot grow.
	ErrOutOfMemory = errors.New("oak: out of memory")
	// ErrOutOfBounds is the panic value raised when a user closure
	// addresses a payload index outside [0, length).
	ErrOutOfBounds = errors.New("oak: index out of bounds")
	// ErrNotDeleted is returned by Free when handed a slice whose
	// header is not observably DELETED.
	ErrNotDeleted = errors.New("oak: slice is not deleted")
	// ErrAlreadyLocked names the protocol misuse of locking a header
	// that is already held. No code in this module returns it; the
	// debug-build checks in package slice panic with a message instead.
	ErrAlreadyLocked = errors.New("oak: lock already held")
	// ErrNotLocked names the protocol misuse of unlocking a header that
	// isn't in the expected lock state. No code in this module returns
	// it; the debug-build checks in package slice panic with a message
	// instead.
	ErrNotLocked = errors.New("oak: lock not held")
	// ErrInvalidBlockSize is returned by a BlockPool configured with a
	// non-positive or undersized block capacity.
	ErrInvalidBlockSize = errors.New("oak: invalid block size")
	// ErrUnsupportedArena is returned by an Arena factory that cannot
	// satisfy the requested capacity or platform.
	ErrUnsupportedArena = errors.New("oak: unsupported arena")
	// ErrBlockNotFound is returned by Attach when a descriptor names a
	// block id the pool never grew, or a range outside its capacity.
	ErrBlockNotFound = errors.New("oak: block not found")
	// ErrReadOnly is returned by a write verb (Compute, Put, Delete)
	// handed a Slice derived via Slice.ReadOnly.
	ErrReadOnly = errors.New("oak: slice is read-only")
)
