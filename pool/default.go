// File: pool/default.go
// Author: momentics <momentics@gmail.com>
//
// Process-wide default pool. Persistent buffers don't need to be
// context-specific, so subsystems can use the package-level surface without
// an instance threaded through long argument chains; tests that need
// isolation construct their own Pool with New.

package pool

import (
	"sync"
	"time"

	"github.com/momentics/persistbuf/api"
)

var (
	defaultMu   sync.Mutex
	defaultPool *Pool
)

// Initialize creates the process-wide default pool. It must be called before
// any package-level acquire; calling it again replaces the default instance
// and discards the previous one.
func Initialize(opts ...Option) {
	defaultMu.Lock()
	defaultPool = New(opts...)
	defaultMu.Unlock()
}

// Default returns the process-wide pool. Acquiring before Initialize is a
// programmer error and panics.
func Default() *Pool {
	defaultMu.Lock()
	p := defaultPool
	defaultMu.Unlock()
	if p == nil {
		panic("persistbuf: pool.Initialize must be called before use")
	}
	return p
}

// Package-level shortcuts delegating to the default pool.

func Acquire(minSize uint32) api.Buffer { return Default().Acquire(minSize) }

func AcquireFrom(data []byte) api.Buffer { return Default().AcquireFrom(data) }

func Release(b api.Buffer) bool { return Default().Release(b) }

func ReleaseAll(bs []api.Buffer) bool { return Default().ReleaseAll(bs) }

func InUse(b api.Buffer) bool { return Default().InUse(b) }

func BuffersInUse() int { return Default().BuffersInUse() }

func BuffersAllocated() int { return Default().BuffersAllocated() }

func SetCleanupTimeout(d time.Duration) { Default().SetCleanupTimeout(d) }

func EnablePolicy(p Policy) { Default().EnablePolicy(p) }

func DisablePolicy(p Policy) { Default().DisablePolicy(p) }

func Reset() { Default().Reset() }
