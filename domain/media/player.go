package media

import "time"

// Player is the media element the playback engine keeps loosely aligned with
// the authoritative clock. The engine writes the current time (seeks) and
// mirrors native play/pause notifications into its own clock; the player's
// own advancement is never treated as ground truth.
type Player interface {
	CurrentTime() float64
	Seek(t float64)
	Play()
	Pause()
	Playing() bool
	// SetStateListener registers a callback fired on native play/pause
	// transitions with the new playing state.
	SetStateListener(fn func(playing bool))
}

// ClockPlayer is a preview player backed by a wall-time clock. It always
// advances at real-time speed while playing, so it drifts from the
// authoritative clock whenever the playback rate is not 1 and genuinely
// exercises drift correction. Advance must be driven from the UI tick.
type ClockPlayer struct {
	playing  bool
	current  float64
	lastTick time.Time
	listener func(playing bool)
}

// NewClockPlayer returns a paused player at time 0.
func NewClockPlayer() *ClockPlayer { return &ClockPlayer{} }

// CurrentTime returns the player's own clock in seconds.
func (p *ClockPlayer) CurrentTime() float64 {
	if p == nil {
		return 0
	}
	return p.current
}

// Seek assigns the player clock directly.
func (p *ClockPlayer) Seek(t float64) {
	if p == nil {
		return
	}
	if t < 0 {
		t = 0
	}
	p.current = t
	p.lastTick = time.Time{}
}

// Play starts native advancement and notifies the state listener.
func (p *ClockPlayer) Play() {
	if p == nil || p.playing {
		return
	}
	p.playing = true
	p.lastTick = time.Time{}
	p.notify()
}

// Pause halts native advancement and notifies the state listener.
func (p *ClockPlayer) Pause() {
	if p == nil || !p.playing {
		return
	}
	p.playing = false
	p.lastTick = time.Time{}
	p.notify()
}

// Playing reports whether the player is advancing.
func (p *ClockPlayer) Playing() bool {
	if p == nil {
		return false
	}
	return p.playing
}

// SetStateListener registers the play/pause callback.
func (p *ClockPlayer) SetStateListener(fn func(playing bool)) {
	if p == nil {
		return
	}
	p.listener = fn
}

// Advance moves the player clock by the real time elapsed since the previous
// call. The first call after a seek or state change only arms the
// measurement.
func (p *ClockPlayer) Advance(now time.Time) {
	if p == nil || !p.playing {
		return
	}
	if p.lastTick.IsZero() {
		p.lastTick = now
		return
	}
	elapsed := now.Sub(p.lastTick).Seconds()
	p.lastTick = now
	if elapsed > 0 {
		p.current += elapsed
	}
}

func (p *ClockPlayer) notify() {
	if p.listener != nil {
		p.listener(p.playing)
	}
}

var _ Player = (*ClockPlayer)(nil)
