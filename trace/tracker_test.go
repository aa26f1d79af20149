// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// tracker_test.go — Tracker side-table and sink behavior; the pool must work
// identically with a tracker attached.
package trace_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/momentics/persistbuf/pool"
	"github.com/momentics/persistbuf/trace"
)

func TestTrackerSideTable(t *testing.T) {
	tr := trace.New(zerolog.Nop())
	defer tr.Close()

	tr.TrackAcquire(0x1000, 64, "site-a")
	tr.TrackAcquire(0x2000, 128, "site-b")
	if got := tr.LiveCount(); got != 2 {
		t.Fatalf("live %d, want 2", got)
	}

	tr.TrackRelease(0x1000)
	tr.TrackRelease(0xdead) // never seen: tolerated
	if got := tr.LiveCount(); got != 1 {
		t.Fatalf("live %d, want 1", got)
	}

	snap := tr.Snapshot()
	if len(snap) != 1 || snap[0].Address != 0x2000 || snap[0].Size != 128 || snap[0].Site != "site-b" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestTrackerEmitsEvents(t *testing.T) {
	var out bytes.Buffer
	tr := trace.New(zerolog.New(&out))

	p := pool.New(pool.WithTracker(tr))
	b := p.Acquire(32)
	p.Release(b)

	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	logged := out.String()
	if !strings.Contains(logged, "buffer acquired") || !strings.Contains(logged, "buffer released") {
		t.Fatalf("missing lifecycle events in log output:\n%s", logged)
	}
	if got := tr.LiveCount(); got != 0 {
		t.Fatalf("live %d after full cycle, want 0", got)
	}
}

func TestTrackerCloseSemantics(t *testing.T) {
	tr := trace.New(zerolog.Nop())
	if err := tr.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := tr.Close(); err == nil {
		t.Fatal("second close must fail")
	}
	// Tracking after close is a silent no-op.
	tr.TrackAcquire(0x1, 1, "late")
	if got := tr.LiveCount(); got != 0 {
		t.Fatalf("closed tracker recorded events: live %d", got)
	}
}

func TestTrackerDoesNotAffectPoolSemantics(t *testing.T) {
	tr := trace.New(zerolog.Nop())
	defer tr.Close()

	tracked := pool.New(pool.WithTracker(tr))
	plain := pool.New()

	for _, p := range []*pool.Pool{tracked, plain} {
		a := p.Acquire(10)
		addr := a.Address()
		p.Release(a)
		b := p.Acquire(5)
		if b.Address() != addr || b.Cap() != 10 {
			t.Fatal("reuse contract broken")
		}
	}
}
