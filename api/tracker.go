// Package api
// Author: momentics
//
// Diagnostic allocation tracking contract.

package api

// AllocTracker observes buffer lifecycle events. A pool invokes it, when
// one is attached, on every acquire and release. Trackers are pure
// observers: they must never influence pool behavior, and they must
// tolerate release events for addresses they have not seen.
type AllocTracker interface {
	// TrackAcquire records that the buffer at addr was handed out.
	// site is an opaque caller-site tag.
	TrackAcquire(addr uintptr, size int, site string)

	// TrackRelease records that the buffer at addr was returned.
	TrackRelease(addr uintptr)
}
