// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import "sync"

// AcquireEvent records one TrackAcquire call.
type AcquireEvent struct {
	Addr uintptr
	Size int
	Site string
}

// Tracker is a recording api.AllocTracker for tests.
type Tracker struct {
	mu       sync.Mutex
	Acquires []AcquireEvent
	Releases []uintptr
}

func (t *Tracker) TrackAcquire(addr uintptr, size int, site string) {
	t.mu.Lock()
	t.Acquires = append(t.Acquires, AcquireEvent{Addr: addr, Size: size, Site: site})
	t.mu.Unlock()
}

func (t *Tracker) TrackRelease(addr uintptr) {
	t.mu.Lock()
	t.Releases = append(t.Releases, addr)
	t.mu.Unlock()
}

// Counts returns the number of recorded acquires and releases.
func (t *Tracker) Counts() (acquires, releases int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Acquires), len(t.Releases)
}
