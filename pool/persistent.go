// File: pool/persistent.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The pool engine: capacity-indexed free-list search, buffer lifecycle
// bookkeeping, and lazy age-based garbage collection. Every mutation of
// shared state happens under one pool-wide mutex; a cache-miss allocation or
// a GC sweep serializes concurrent acquire/release for its duration.

package pool

import (
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/momentics/persistbuf/api"
)

// Pool manages persistent, recycled heap buffers.
//
// The registry holds every buffer not yet reclaimed; sizeList holds the same
// buffers sorted ascending by allocated capacity for lower-bound searching.
// The two structures always stay in lockstep.
type Pool struct {
	mu sync.Mutex

	registry map[*buffer]struct{}
	sizeList []*buffer

	policies       policySet
	cleanupTimeout time.Duration
	lastCheck      time.Time

	inUseCount int
	stats      api.PoolStats

	tracker api.AllocTracker
	now     func() time.Time
}

var _ api.Pool = (*Pool)(nil)

// Option configures a Pool.
type Option func(*Pool)

// WithTracker attaches a diagnostic allocation tracker. The pool behaves
// identically with or without one.
func WithTracker(t api.AllocTracker) Option {
	return func(p *Pool) { p.tracker = t }
}

// WithPolicies replaces the default policy set with the given one.
func WithPolicies(ps ...Policy) Option {
	return func(p *Pool) {
		p.policies.resetAll()
		for _, pol := range ps {
			p.policies.set(pol)
		}
	}
}

// New creates a pool with the default configuration: zero-on-create enabled,
// no age-based reclamation.
func New(opts ...Option) *Pool {
	p := &Pool{
		registry: make(map[*buffer]struct{}),
		now:      time.Now,
	}
	p.policies.set(PolicyZeroOnCreate)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire returns a buffer whose capacity is at least minSize, sets its
// logical size to exactly minSize and marks it in-use. A previously released
// buffer is reused when its capacity suffices; otherwise new storage of
// exactly minSize bytes is allocated. Acquire never fails: allocation failure
// aborts the process.
func (p *Pool) Acquire(minSize uint32) api.Buffer {
	var site string
	if p.tracker != nil {
		site = callerSite()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquireLocked(minSize, site)
}

// AcquireFrom acquires len(data) bytes and copies data into the buffer.
// The acquire and the copy-in form a single critical section.
func (p *Pool) AcquireFrom(data []byte) api.Buffer {
	var site string
	if p.tracker != nil {
		site = callerSite()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	b := p.acquireLocked(uint32(len(data)), site)
	copy(b.data, data)
	return b
}

func (p *Pool) acquireLocked(minSize uint32, site string) *buffer {
	// Lower bound on capacity only, then scan forward past in-use entries.
	// The list is capacity-sorted and the scan only advances, so the first
	// free hit is best-fit among the free buffers.
	i := sort.Search(len(p.sizeList), func(i int) bool {
		return p.sizeList[i].allocated >= minSize
	})
	for i < len(p.sizeList) && p.sizeList[i].inUse.Load() {
		i++
	}

	if i < len(p.sizeList) {
		b := p.sizeList[i]
		b.inUse.Store(true)
		b.size = minSize
		b.usageCount++
		p.inUseCount++
		p.stats.TotalReuse++
		// Reused storage is never re-zeroed, regardless of policy.
		if p.tracker != nil {
			p.tracker.TrackAcquire(b.Address(), int(minSize), site)
		}
		return b
	}

	// Full miss: allocate exactly minSize and register the new buffer.
	// make() hands back zeroed storage, so PolicyZeroOnCreate holds for
	// fresh buffers with no extra work; the flag stays observable so Reset
	// can restore the default set.
	b := &buffer{
		size:       minSize,
		allocated:  minSize,
		usageCount: 1,
		data:       make([]byte, minSize),
	}
	b.inUse.Store(true)

	p.registry[b] = struct{}{}
	p.insertSorted(b)
	p.inUseCount++
	p.stats.TotalAlloc++

	if p.policies.active(PolicyDropOld) && p.cleanupTimeout > 0 {
		now := p.now()
		if now.Sub(p.lastCheck) > p.cleanupTimeout {
			p.lastCheck = now
			p.garbageCollect(now)
		}
	}

	if p.tracker != nil {
		p.tracker.TrackAcquire(b.Address(), int(minSize), site)
	}
	return b
}

// insertSorted places b at its lower-bound position so sizeList stays
// ascending by capacity.
func (p *Pool) insertSorted(b *buffer) {
	i := sort.Search(len(p.sizeList), func(i int) bool {
		return p.sizeList[i].allocated >= b.allocated
	})
	p.sizeList = append(p.sizeList, nil)
	copy(p.sizeList[i+1:], p.sizeList[i:])
	p.sizeList[i] = b
}

// Release clears the in-use flag and stamps the buffer's last-used time.
// A nil handle, a handle the pool does not know, or an already-free buffer
// is a silent no-op; Release reports whether the buffer changed state.
func (p *Pool) Release(h api.Buffer) bool {
	b, ok := h.(*buffer)
	if !ok || b == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releaseLocked(b)
}

// ReleaseAll releases every handle in one critical section, so the batch
// becomes observably free all at once with respect to concurrent acquires.
func (p *Pool) ReleaseAll(handles []api.Buffer) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range handles {
		b, ok := h.(*buffer)
		if !ok || b == nil {
			continue
		}
		p.releaseLocked(b)
	}
	return true
}

func (p *Pool) releaseLocked(b *buffer) bool {
	if _, known := p.registry[b]; !known {
		return false
	}
	if !b.inUse.Load() {
		return false
	}
	addr := b.Address()
	b.inUse.Store(false)
	b.lastUsed = p.now()
	p.inUseCount--
	if p.tracker != nil {
		p.tracker.TrackRelease(addr)
	}
	return true
}

// InUse reports whether the handle currently holds live pool content.
func (p *Pool) InUse(h api.Buffer) bool {
	b, ok := h.(*buffer)
	if !ok || b == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, known := p.registry[b]
	return known && b.inUse.Load()
}

// BuffersInUse counts buffers currently acquired.
func (p *Pool) BuffersInUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUseCount
}

// BuffersAllocated counts every buffer held by the pool, active or pending.
func (p *Pool) BuffersAllocated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sizeList)
}

// SetCleanupTimeout instructs the pool to usage-expire buffers: a buffer idle
// for longer than d is released back to the runtime by the next sweep.
// Enables PolicyDropOld and resets the GC clock. d == 0 disables reclamation.
func (p *Pool) SetCleanupTimeout(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleanupTimeout = d
	p.lastCheck = p.now()
	p.policies.set(PolicyDropOld)
}

// EnablePolicy enables a single policy.
func (p *Pool) EnablePolicy(pol Policy) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.policies.set(pol)
}

// SetPolicies clears every enabled policy, then enables exactly the given set.
func (p *Pool) SetPolicies(pols ...Policy) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.policies.resetAll()
	for _, pol := range pols {
		p.policies.set(pol)
	}
}

// DisablePolicy disables a single policy.
func (p *Pool) DisablePolicy(pol Policy) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.policies.clear(pol)
}

// PolicyActive reports whether a policy is currently in effect.
func (p *Pool) PolicyActive(pol Policy) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.policies.active(pol)
}

// Policies lists the currently enabled policies.
func (p *Pool) Policies() []Policy {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.policies.list()
}

// Reset discards every buffer and restores the default configuration:
// zero-on-create only, no reclamation. Registry and capacity index are
// cleared together so neither can hold a buffer the other has dropped.
// Outstanding handles lose payload access.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for b := range p.registry {
		b.inUse.Store(false)
		b.size = 0
		b.data = nil
	}
	clear(p.registry)
	p.sizeList = nil
	p.inUseCount = 0
	p.policies.resetAll()
	p.policies.set(PolicyZeroOnCreate)
	p.cleanupTimeout = 0
	p.lastCheck = time.Time{}
	p.stats = api.PoolStats{}
}

// Stats returns a snapshot of allocation/reuse accounting.
func (p *Pool) Stats() api.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.InUse = int64(p.inUseCount)
	s.Allocated = int64(len(p.sizeList))
	return s
}

// garbageCollect drops every free buffer idle for longer than the cleanup
// timeout and returns its storage to the runtime. Full registry scan plus
// linear index removal; the sweep only ever runs from the allocation-miss
// path, so the cost is paid when the pool is growing anyway.
func (p *Pool) garbageCollect(now time.Time) {
	var drop []*buffer
	for b := range p.registry {
		if !b.inUse.Load() && now.Sub(b.lastUsed) > p.cleanupTimeout {
			drop = append(drop, b)
		}
	}
	for _, b := range drop {
		delete(p.registry, b)
		for i, s := range p.sizeList {
			if s == b {
				p.sizeList = append(p.sizeList[:i], p.sizeList[i+1:]...)
				break
			}
		}
		b.data = nil
		p.stats.TotalFreed++
	}
}

// callerSite produces an opaque caller-site tag for diagnostic tracking.
// Only computed when a tracker is attached.
func callerSite() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return file + ":" + strconv.Itoa(line)
}
