//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific platform probes. Memory figures give the reclamation
// diagnostics something to correlate sweep activity against.

package control

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// RegisterPlatformProbes sets Linux-specific debug metrics.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.mem", func() any {
		var si unix.Sysinfo_t
		if err := unix.Sysinfo(&si); err != nil {
			return map[string]any{"error": err.Error()}
		}
		unit := uint64(si.Unit)
		return map[string]any{
			"total_ram": uint64(si.Totalram) * unit,
			"free_ram":  uint64(si.Freeram) * unit,
		}
	})
}
