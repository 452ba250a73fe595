package debug

import (
	"log/slog"
	"sync"
	"time"
)

// TickMeter accumulates intervals between update loop ticks. Observe runs on
// the Tk event loop thread while the logger flushes from a ticker goroutine,
// so the window is mutex-guarded.
type TickMeter struct {
	mu    sync.Mutex
	last  time.Time
	count int
	total time.Duration
	max   time.Duration
}

func NewTickMeter() *TickMeter { return &TickMeter{} }

// Observe records one tick of the update loop. The first observation only
// arms the measurement.
func (m *TickMeter) Observe(now time.Time) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.last.IsZero() {
		d := now.Sub(m.last)
		m.count++
		m.total += d
		if d > m.max {
			m.max = d
		}
	}
	m.last = now
}

// Flush returns the accumulated window and resets it. The last observation
// time is kept so the next interval spans the flush.
func (m *TickMeter) Flush() (count int, avg, max time.Duration) {
	if m == nil {
		return 0, 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count, max = m.count, m.max
	if m.count > 0 {
		avg = m.total / time.Duration(m.count)
	}
	m.count, m.total, m.max = 0, 0, 0
	return count, avg, max
}

// StartTickLogger launches a ticker that logs playback tick cadence from the
// given meter. Started only when config.Debug is true.
func StartTickLogger(interval time.Duration, meter *TickMeter, logger *slog.Logger) {
	if meter == nil {
		return
	}
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for range t.C {
			count, avg, max := meter.Flush()
			if count == 0 {
				continue
			}
			logger.Info("tick-cadence",
				slog.Int("ticks", count),
				slog.Duration("avg_interval", avg),
				slog.Duration("max_interval", max),
			)
		}
	}()
}
