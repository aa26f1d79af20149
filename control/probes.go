// control/probes.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for internal inspection.

package control

import (
	"sync"

	"github.com/momentics/persistbuf/pool"
	"github.com/momentics/persistbuf/trace"
)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

// RegisterPoolProbes exposes a pool's occupancy, policy and accounting state.
func RegisterPoolProbes(dp *DebugProbes, p *pool.Pool) {
	dp.RegisterProbe("pool.in_use", func() any {
		return p.BuffersInUse()
	})
	dp.RegisterProbe("pool.allocated", func() any {
		return p.BuffersAllocated()
	})
	dp.RegisterProbe("pool.policies", func() any {
		pols := p.Policies()
		out := make([]string, 0, len(pols))
		for _, pol := range pols {
			out = append(out, pol.String())
		}
		return out
	})
	dp.RegisterProbe("pool.stats", func() any {
		return p.Stats()
	})
}

// RegisterTrackerProbes exposes a tracker's live allocation table.
func RegisterTrackerProbes(dp *DebugProbes, t *trace.Tracker) {
	dp.RegisterProbe("trace.live", func() any {
		return t.LiveCount()
	})
}
