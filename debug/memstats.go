package debug

import (
	"log/slog"
	"runtime"
	"time"
)

// StartMemLogger launches a ticker that logs process heap and GC statistics.
// The numbers come from runtime.MemStats, so they track Go-managed memory
// only; the Tk allocations on the C side are invisible here.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for range t.C {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			logger.Info("memstats",
				slog.Uint64("heap_alloc", uint64(ms.HeapAlloc)),
				slog.Uint64("heap_sys", uint64(ms.HeapSys)),
				slog.Uint64("heap_objects", uint64(ms.HeapObjects)),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
				slog.Duration("gc_pause_total", time.Duration(ms.PauseTotalNs)),
			)
		}
	}()
}
