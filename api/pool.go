// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Abstract pooling API for recyclable persistent buffers.

package api

import "time"

// Pool hands out heap buffers of at least a requested size, reusing
// previously released buffers whose capacity suffices.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Pool interface {
	// Acquire returns a buffer with capacity >= minSize and logical size
	// exactly minSize. Acquire never fails: storage exhaustion is a
	// runtime abort, not a reported error.
	Acquire(minSize uint32) Buffer

	// AcquireFrom acquires len(data) bytes and copies data in before
	// returning the handle.
	AcquireFrom(data []byte) Buffer

	// Release returns a buffer to the free set. A nil, foreign, or
	// already-free handle is a silent no-op; Release reports whether the
	// buffer actually changed state.
	Release(b Buffer) bool

	// ReleaseAll releases a batch of handles atomically with respect to
	// concurrent acquires.
	ReleaseAll(bs []Buffer) bool

	// InUse reports whether the handle currently holds live content.
	InUse(b Buffer) bool

	// BuffersInUse counts buffers currently acquired.
	BuffersInUse() int

	// BuffersAllocated counts every buffer held by the pool, active or
	// pending.
	BuffersAllocated() int

	// SetCleanupTimeout enables age-based reclamation of buffers that
	// stayed idle longer than d.
	SetCleanupTimeout(d time.Duration)

	// Reset discards every buffer and restores the default configuration.
	Reset()

	// Stats exposes allocation/reuse accounting for observability.
	Stats() PoolStats
}

// PoolStats aggregates buffer allocation/reuse accounting.
type PoolStats struct {
	TotalAlloc int64
	TotalReuse int64
	TotalFreed int64
	InUse      int64
	Allocated  int64
}
