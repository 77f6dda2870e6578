package util

import (
	"log/slog"
	"runtime"
)

// HeapStats is a snapshot of the Go heap, logged at the end of a run.
type HeapStats struct {
	AllocMB uint64
	SysMB   uint64
	NumGC   uint32
}

func ReadHeapStats() HeapStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return HeapStats{
		AllocMB: m.Alloc / 1024 / 1024,
		SysMB:   m.Sys / 1024 / 1024,
		NumGC:   m.NumGC,
	}
}

func (h HeapStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("alloc_mb", h.AllocMB),
		slog.Uint64("sys_mb", h.SysMB),
		slog.Uint64("gc", uint64(h.NumGC)),
	)
}
