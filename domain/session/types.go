package session

// State enumerates finite states of an analysis session.
type State int

const (
	StateIdle State = iota
	StateAnalyzing
	StatePlayback
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnalyzing:
		return "analyzing"
	case StatePlayback:
		return "playback"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StateListener is called on each successful state transition.
type StateListener func(prev, next State)

// StateSource reports the current session state.
type StateSource interface{ Current() State }

// Lifecycle exposes teardown for consumers that own the FSM.
type Lifecycle interface {
	Reset()
	Close()
}
