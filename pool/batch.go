// Package pool — handle batching.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Batch collects acquired handles so they can be released in one atomic
// critical section. Not thread-safe; a batch belongs to one goroutine.

package pool

import "github.com/momentics/persistbuf/api"

// Batch is a minimal accumulator of buffer handles.
type Batch struct {
	handles []api.Buffer
}

// NewBatch creates a batch with the given capacity hint.
func NewBatch(capacity int) *Batch {
	return &Batch{
		handles: make([]api.Buffer, 0, capacity),
	}
}

// Append adds a handle to the batch.
func (b *Batch) Append(h api.Buffer) {
	b.handles = append(b.handles, h)
}

// Len returns the number of handles in the batch.
func (b *Batch) Len() int {
	return len(b.handles)
}

// Get retrieves the handle at index.
func (b *Batch) Get(idx int) api.Buffer {
	return b.handles[idx]
}

// Underlying returns the underlying slice.
func (b *Batch) Underlying() []api.Buffer {
	return b.handles
}

// ReleaseTo releases every batched handle to p atomically and empties the
// batch, retaining its storage.
func (b *Batch) ReleaseTo(p api.Pool) bool {
	ok := p.ReleaseAll(b.handles)
	b.handles = b.handles[:0]
	return ok
}

// Reset clears the batch retaining underlying storage.
func (b *Batch) Reset() {
	b.handles = b.handles[:0]
}
