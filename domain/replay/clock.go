package replay

import "time"

// ClockState enumerates playback clock states.
type ClockState int

const (
	ClockStopped ClockState = iota
	ClockRunning
)

func (s ClockState) String() string {
	switch s {
	case ClockStopped:
		return "stopped"
	case ClockRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Clock owns the authoritative playback time. It advances while running by
// elapsed real time scaled by the playback rate, clamps at the last keyframe
// timestamp and stops there. All methods must be called from the single UI
// control flow; the clock carries no internal synchronization.
type Clock struct {
	state     ClockState
	current   float64
	rate      float64
	lastTick  time.Time
	keyframes []Keyframe
	sync      func(authoritative float64)
}

// NewClock returns a stopped clock at time 0 with the given rate. Non-positive
// rates fall back to 1.
func NewClock(rate float64) *Clock {
	c := &Clock{rate: rate}
	if c.rate <= 0 {
		c.rate = 1
	}
	return c
}

// SetSyncFunc installs the media reconciliation callback invoked with the new
// authoritative time on every tick while running.
func (c *Clock) SetSyncFunc(fn func(authoritative float64)) {
	if c == nil {
		return
	}
	c.sync = fn
}

// Bind attaches a keyframe sequence and resets the authoritative time to 0.
// Passing nil detaches and stops the clock.
func (c *Clock) Bind(keyframes []Keyframe) {
	if c == nil {
		return
	}
	c.keyframes = keyframes
	c.current = 0
	c.state = ClockStopped
	c.lastTick = time.Time{}
}

// State reports the current clock state.
func (c *Clock) State() ClockState {
	if c == nil {
		return ClockStopped
	}
	return c.state
}

// Current returns the authoritative playback time in seconds.
func (c *Clock) Current() float64 {
	if c == nil {
		return 0
	}
	return c.current
}

// Rate returns the playback rate multiplier.
func (c *Clock) Rate() float64 {
	if c == nil {
		return 0
	}
	return c.rate
}

// SetRate changes the playback rate. Non-positive values are ignored. A rate
// change takes effect from the next tick; already-elapsed real time is not
// re-scaled.
func (c *Clock) SetRate(rate float64) {
	if c == nil || rate <= 0 {
		return
	}
	c.rate = rate
}

// End returns the last keyframe timestamp, or 0 when no keyframes are bound.
func (c *Clock) End() float64 {
	if c == nil || len(c.keyframes) == 0 {
		return 0
	}
	return c.keyframes[len(c.keyframes)-1].TimeOffset
}

// Play transitions to running. Playing from the end rewinds to 0 first.
// Without bound keyframes the clock stays stopped.
func (c *Clock) Play() {
	if c == nil || len(c.keyframes) == 0 {
		return
	}
	if c.state == ClockRunning {
		return
	}
	if c.current >= c.End() {
		c.current = 0
	}
	c.state = ClockRunning
	c.lastTick = time.Time{}
}

// Pause transitions to stopped, retaining the current time.
func (c *Clock) Pause() {
	if c == nil || c.state == ClockStopped {
		return
	}
	c.state = ClockStopped
	c.lastTick = time.Time{}
}

// Stop halts playback and rewinds to 0.
func (c *Clock) Stop() {
	if c == nil {
		return
	}
	c.state = ClockStopped
	c.current = 0
	c.lastTick = time.Time{}
}

// Tick advances the clock using the wall-clock instant now. The first tick of
// a run only arms the elapsed measurement and contributes zero progress. When
// the advanced time reaches the end it is clamped there and the clock stops in
// the same step. Ticking with no keyframes bound is a no-op.
func (c *Clock) Tick(now time.Time) {
	if c == nil || c.state != ClockRunning || len(c.keyframes) == 0 {
		return
	}
	if c.lastTick.IsZero() {
		c.lastTick = now
		c.notifySync()
		return
	}
	elapsed := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	if elapsed < 0 {
		elapsed = 0
	}
	c.current += elapsed * c.rate
	if end := c.End(); c.current >= end {
		c.current = end
		c.state = ClockStopped
		c.lastTick = time.Time{}
	}
	c.notifySync()
}

// Scrub sets the authoritative time directly, bypassing rate math, clamped to
// the sampled range. The running/stopped state is not changed: scrubbing while
// running continues from the new position. The clamped value is returned so
// the caller can issue the unconditional media seek.
func (c *Clock) Scrub(requested float64) float64 {
	if c == nil || len(c.keyframes) == 0 {
		return 0
	}
	if requested < 0 {
		requested = 0
	}
	if end := c.End(); requested > end {
		requested = end
	}
	c.current = requested
	// Drop the armed elapsed measurement so the jump is not scaled into the
	// next tick's delta.
	c.lastTick = time.Time{}
	return c.current
}

func (c *Clock) notifySync() {
	if c.sync != nil {
		c.sync(c.current)
	}
}
