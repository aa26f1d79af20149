// File: trace/tracker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The tracker is invoked from inside the pool's critical section, so the
// event path must stay cheap and non-blocking: events are appended to a FIFO
// under the tracker's own lock and emitted by a sink goroutine.

package trace

import (
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/rs/zerolog"

	"github.com/momentics/persistbuf/api"
)

// Entry describes one live allocation.
type Entry struct {
	Address  uintptr
	Size     int
	Site     string
	Acquired time.Time
}

type eventKind uint8

const (
	eventAcquire eventKind = iota
	eventRelease
)

type event struct {
	kind  eventKind
	entry Entry
}

// Tracker implements api.AllocTracker on top of a zerolog sink.
type Tracker struct {
	mu     sync.Mutex
	log    zerolog.Logger
	live   map[uintptr]Entry
	events *queue.Queue
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

var _ api.AllocTracker = (*Tracker)(nil)

// New creates a tracker that emits events through logger and starts its
// sink goroutine.
func New(logger zerolog.Logger) *Tracker {
	t := &Tracker{
		log:    logger,
		live:   make(map[uintptr]Entry),
		events: queue.New(),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go t.drain()
	return t
}

// TrackAcquire records that the buffer at addr was handed out.
func (t *Tracker) TrackAcquire(addr uintptr, size int, site string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	e := Entry{Address: addr, Size: size, Site: site, Acquired: time.Now()}
	t.live[addr] = e
	t.events.Add(event{kind: eventAcquire, entry: e})
	t.mu.Unlock()
	t.signal()
}

// TrackRelease records that the buffer at addr was returned. An address the
// tracker has never seen is tolerated.
func (t *Tracker) TrackRelease(addr uintptr) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	delete(t.live, addr)
	t.events.Add(event{kind: eventRelease, entry: Entry{Address: addr}})
	t.mu.Unlock()
	t.signal()
}

// Snapshot returns the current live allocations.
func (t *Tracker) Snapshot() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, 0, len(t.live))
	for _, e := range t.live {
		out = append(out, e)
	}
	return out
}

// LiveCount returns the number of tracked live allocations.
func (t *Tracker) LiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Close flushes pending events, stops the sink goroutine and rejects further
// tracking. Closing twice is an error.
func (t *Tracker) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return api.NewError(api.ErrCodeClosed, "tracker already closed")
	}
	t.closed = true
	t.mu.Unlock()
	t.signal()
	<-t.done
	return nil
}

func (t *Tracker) signal() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

func (t *Tracker) drain() {
	for {
		t.mu.Lock()
		var ev event
		have := t.events.Length() > 0
		if have {
			ev = t.events.Remove().(event)
		}
		closed := t.closed
		t.mu.Unlock()

		if have {
			t.emit(ev)
			continue
		}
		if closed {
			close(t.done)
			return
		}
		<-t.wake
	}
}

func (t *Tracker) emit(ev event) {
	switch ev.kind {
	case eventAcquire:
		t.log.Debug().
			Uint64("addr", uint64(ev.entry.Address)).
			Int("size", ev.entry.Size).
			Str("site", ev.entry.Site).
			Msg("buffer acquired")
	case eventRelease:
		t.log.Debug().
			Uint64("addr", uint64(ev.entry.Address)).
			Msg("buffer released")
	}
}
