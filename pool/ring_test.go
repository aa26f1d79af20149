// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// ring_test.go — Tests for the lock-free handle ring.
package pool_test

import (
	"runtime"
	"sync"
	"testing"

	"github.com/momentics/persistbuf/pool"
)

// TestHandleRing_Correctness checks the basic enqueue/dequeue contract.
func TestHandleRing_Correctness(t *testing.T) {
	p := pool.New()
	r := pool.NewHandleRing(16)
	for i := 0; i < 16; i++ {
		if !r.Enqueue(p.Acquire(uint32(i + 1))) {
			t.Fatalf("Enqueue failed at %d", i)
		}
	}
	if !r.IsFull() {
		t.Error("Expected ring full")
	}
	if r.Enqueue(p.Acquire(1)) {
		t.Error("Enqueue into a full ring must fail")
	}
	for i := 0; i < 16; i++ {
		h, ok := r.Dequeue()
		if !ok || h.Len() != i+1 {
			t.Fatalf("Expected handle of logical size %d (ok=%v)", i+1, ok)
		}
		p.Release(h)
	}
	if !r.IsEmpty() {
		t.Error("Expected ring empty after full cycle")
	}
}

// TestHandleRing_PowerOfTwo enforces the capacity precondition.
func TestHandleRing_PowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("non-power-of-two capacity must panic")
		}
	}()
	pool.NewHandleRing(12)
}

// TestHandleRing_Pipeline runs an acquire goroutine against a release
// goroutine with the ring in between; every handle must come back.
func TestHandleRing_Pipeline(t *testing.T) {
	p := pool.New()
	r := pool.NewHandleRing(64)
	const items = 2000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		released := 0
		for released < items {
			h, ok := r.Dequeue()
			if !ok {
				runtime.Gosched()
				continue
			}
			p.Release(h)
			released++
		}
	}()

	for i := 0; i < items; i++ {
		h := p.Acquire(uint32(1 + i%128))
		for !r.Enqueue(h) {
			runtime.Gosched()
		}
	}
	wg.Wait()

	if got := p.BuffersInUse(); got != 0 {
		t.Fatalf("in use after pipeline %d, want 0", got)
	}
}
