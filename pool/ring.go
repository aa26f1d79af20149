// File: pool/ring.go
// Author: momentics <momentics@gmail.com>
//
// Lock-free fixed-capacity ring for handing in-flight buffer handles between
// an acquiring and a releasing goroutine without touching the pool mutex.
// Internal padding minimizes cache contention.

package pool

import (
	"sync/atomic"

	"github.com/momentics/persistbuf/api"
)

// HandleRing is a lock-free ring of buffer handles (power-of-two capacity).
type HandleRing struct {
	slots []api.Buffer
	mask  uint64
	head  uint64
	tail  uint64
	_     [64]byte // Padding for hot/cold separation
}

// NewHandleRing allocates a ring with the given capacity (must be a power
// of two).
func NewHandleRing(capacity uint64) *HandleRing {
	if capacity == 0 || (capacity&(capacity-1)) != 0 {
		panic("handle ring capacity must be power of two")
	}
	return &HandleRing{
		slots: make([]api.Buffer, capacity),
		mask:  capacity - 1,
	}
}

// Enqueue adds a handle; returns false if full.
func (r *HandleRing) Enqueue(h api.Buffer) bool {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	if (tail - head) == uint64(len(r.slots)) {
		return false
	}
	idx := tail & r.mask
	r.slots[idx] = h
	atomic.AddUint64(&r.tail, 1)
	return true
}

// Dequeue removes and returns (handle, ok); ok==false if empty.
func (r *HandleRing) Dequeue() (api.Buffer, bool) {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	if head == tail {
		return nil, false
	}
	idx := head & r.mask
	h := r.slots[idx]
	atomic.AddUint64(&r.head, 1)
	return h, true
}

// Len returns the number of handles in the ring.
func (r *HandleRing) Len() int {
	return int(atomic.LoadUint64(&r.tail) - atomic.LoadUint64(&r.head))
}

// Cap returns the ring capacity.
func (r *HandleRing) Cap() int {
	return len(r.slots)
}

// IsEmpty reports whether the ring holds no handles.
func (r *HandleRing) IsEmpty() bool { return r.Len() == 0 }

// IsFull reports whether the ring is at capacity.
func (r *HandleRing) IsFull() bool { return r.Len() == len(r.slots) }
