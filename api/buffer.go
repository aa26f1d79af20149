// Package api
// Author: momentics
//
// Contracts for the persistbuf recyclable buffer pool.
//
// Buffers are plain heap allocations recycled through a capacity-sorted
// pool. A handle is exclusive while its buffer is in use; once released
// the handle must not be used to reach the payload.

package api

import "time"

// Buffer is an exclusive handle to a pooled heap allocation.
type Buffer interface {
	// Bytes returns the payload view of logical length.
	// Panics if the buffer is not currently in use.
	Bytes() []byte

	// Len returns the logical size requested by the current acquire.
	Len() int

	// Cap returns the allocated capacity. Fixed at creation.
	Cap() int

	// UsageCount reports how many times this buffer has been acquired.
	UsageCount() uint32

	// LastUsed reports when the buffer was last released.
	// Meaningless while the buffer is in use.
	LastUsed() time.Time

	// Address identifies the underlying storage. Diagnostic use only;
	// never dereference it.
	Address() uintptr
}
