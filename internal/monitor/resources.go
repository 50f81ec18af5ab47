package monitor

import (
	"runtime"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceUsage is a snapshot of the monitor's own footprint.
type ResourceUsage struct {
	AllocMB              int64
	Goroutines           int
	SystemMemUsedPercent float64
}

// GetResourceUsage returns current resource usage statistics
func GetResourceUsage() ResourceUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage := ResourceUsage{
		AllocMB:    int64(m.Alloc / 1024 / 1024),
		Goroutines: runtime.NumGoroutine(),
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemUsedPercent = vmStat.UsedPercent
	}
	return usage
}

func (u ResourceUsage) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("alloc_mb", u.AllocMB).
		Int("goroutines", u.Goroutines).
		Float64("system_mem_used_percent", u.SystemMemUsedPercent)
}
