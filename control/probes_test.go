// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package control_test

import (
	"testing"
	"time"

	"github.com/momentics/persistbuf/control"
	"github.com/momentics/persistbuf/pool"
)

func TestPoolProbes(t *testing.T) {
	p := pool.New()
	dp := control.NewDebugProbes()
	control.RegisterPoolProbes(dp, p)

	b := p.Acquire(128)
	state := dp.DumpState()
	if state["pool.in_use"] != 1 || state["pool.allocated"] != 1 {
		t.Fatalf("unexpected probe state %+v", state)
	}
	pols, ok := state["pool.policies"].([]string)
	if !ok || len(pols) != 1 || pols[0] != "zero-on-create" {
		t.Fatalf("unexpected policy probe %+v", state["pool.policies"])
	}

	p.Release(b)
	state = dp.DumpState()
	if state["pool.in_use"] != 0 {
		t.Fatalf("in_use probe stale: %+v", state)
	}
}

func TestPlatformProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)
	state := dp.DumpState()
	if _, ok := state["platform.cpus"]; !ok {
		t.Fatal("missing platform.cpus probe")
	}
	if _, ok := state["platform.mem"]; !ok {
		t.Fatal("missing platform.mem probe")
	}
}

func TestMetricsRegistry(t *testing.T) {
	mr := control.NewMetricsRegistry()
	mr.Set("scenario", "acquire_release")
	mr.AddDuration("elapsed.ms", 1500*time.Millisecond)
	mr.AddDuration("elapsed.ms", 500*time.Millisecond)

	snap := mr.GetSnapshot()
	if snap["scenario"] != "acquire_release" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if got := snap["elapsed.ms"].(float64); got != 2000 {
		t.Fatalf("accumulated %v ms, want 2000", got)
	}
	if mr.LastUpdated().IsZero() {
		t.Fatal("update timestamp not maintained")
	}
}
