package hosted

import (
	"os"
	"time"

	"github.com/eclesh/welford"
	"github.com/shirou/gopsutil/process"
)

// NonceLagTracker keeps a running mean/variance of the observed lag
// (selected.ctrnonce at accept time minus the received ctrnonce) for one
// group, grounded on the teacher's use of github.com/eclesh/welford for
// online statistics (fbclock/daemon/math.go's mean/variance/stddev
// helpers) rather than buffering raw samples.
type NonceLagTracker struct {
	stats *welford.Stats
}

// NewNonceLagTracker returns a fresh, empty tracker.
func NewNonceLagTracker() *NonceLagTracker {
	return &NonceLagTracker{stats: welford.New()}
}

// Observe records one accepted SADFD's lag.
func (t *NonceLagTracker) Observe(lag float64) {
	t.stats.Add(lag)
}

// Mean returns the running mean lag.
func (t *NonceLagTracker) Mean() float64 { return t.stats.Mean() }

// Stddev returns the running standard deviation of the lag.
func (t *NonceLagTracker) Stddev() float64 { return t.stats.Stddev() }

// HostStats is a point-in-time snapshot of the daemon process's own
// resource usage, grounded on the teacher's ptp/sptp/client.SysStats
// (github.com/shirou/gopsutil/process), for operational sanity checking.
// cmd/cbsclientd does not collect or report it.
type HostStats struct {
	UptimeSeconds int64
	CPUPercent    float64
	RSSBytes      uint64
}

// CollectHostStats gathers CPU and memory usage for the current process.
func CollectHostStats(start time.Time) (HostStats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return HostStats{}, err
	}
	cpu, err := proc.Percent(0)
	if err != nil {
		return HostStats{}, err
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		return HostStats{}, err
	}
	return HostStats{
		UptimeSeconds: int64(time.Since(start).Seconds()),
		CPUPercent:    cpu,
		RSSBytes:      mem.RSS,
	}, nil
}
