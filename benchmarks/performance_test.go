// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for the persistbuf pool, with sync.Pool and
// bytebufferpool baselines for comparison.

package benchmarks

import (
	"sync"
	"testing"

	"github.com/valyala/bytebufferpool"

	"github.com/momentics/persistbuf/api"
	"github.com/momentics/persistbuf/pool"
)

// BenchmarkAcquireRelease measures single-buffer turnaround on the hit path.
func BenchmarkAcquireRelease(b *testing.B) {
	p := pool.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := p.Acquire(4096)
		p.Release(buf)
	}
}

// BenchmarkAcquireReleaseParallel measures contention on the pool mutex.
func BenchmarkAcquireReleaseParallel(b *testing.B) {
	p := pool.New()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := p.Acquire(4096)
			p.Release(buf)
		}
	})
}

// BenchmarkAcquireFrom measures acquire plus copy-in.
func BenchmarkAcquireFrom(b *testing.B) {
	p := pool.New()
	payload := make([]byte, 512)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := p.AcquireFrom(payload)
		p.Release(buf)
	}
}

// BenchmarkBatchRelease measures atomic batched release of ten handles.
func BenchmarkBatchRelease(b *testing.B) {
	p := pool.New()
	handles := make([]api.Buffer, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range handles {
			handles[j] = p.Acquire(1024)
		}
		p.ReleaseAll(handles)
	}
}

func BenchmarkSyncPoolBaseline(b *testing.B) {
	sp := sync.Pool{
		New: func() any {
			buf := make([]byte, 4096)
			return &buf
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := sp.Get().(*[]byte)
		sp.Put(buf)
	}
}

func BenchmarkByteBufferPoolBaseline(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bb := bytebufferpool.Get()
		if cap(bb.B) < 4096 {
			bb.B = make([]byte, 4096)
		}
		bytebufferpool.Put(bb)
	}
}
