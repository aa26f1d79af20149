// File: pool/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pooled buffer handle. State transitions Free <-> InUse happen only under
// the owning pool's lock; the in-use flag is atomic so handle methods can
// guard payload access without taking that lock.

package pool

import (
	"sync/atomic"
	"time"
	"unsafe"
)

// buffer is the unit of allocation managed by a Pool.
type buffer struct {
	inUse      atomic.Bool
	size       uint32 // logical size: bytes requested by the current acquire
	allocated  uint32 // capacity: fixed at creation, never shrinks
	usageCount uint32
	lastUsed   time.Time // stamped on release
	data       []byte
}

// Bytes returns the payload view of logical length. A released handle
// cannot reach the payload anymore.
func (b *buffer) Bytes() []byte {
	if !b.inUse.Load() {
		panic("persistbuf: payload access on a buffer that is not in use")
	}
	return b.data[:b.size]
}

func (b *buffer) Len() int { return int(b.size) }

func (b *buffer) Cap() int { return int(b.allocated) }

func (b *buffer) UsageCount() uint32 { return b.usageCount }

func (b *buffer) LastUsed() time.Time { return b.lastUsed }

// Address identifies the underlying storage for diagnostic tracking.
func (b *buffer) Address() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b.data)))
}
