package session

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"github.com/soocke/tactic-replay-go/domain/replay"
)

// FSM manages analysis session state transitions. Each analysis attempt is
// tagged with a fresh token; completions carrying a superseded token are
// discarded silently so a stale inference response can never overwrite a
// newer session.
//
// Events mutate state on a single loop goroutine. Current, Result and
// ErrorMessage read from arbitrary goroutines, so those fields sit behind a
// mutex; closeMu fences event sends against Close.
type FSM struct {
	mu     sync.Mutex
	state  State
	result *replay.AnalysisResult
	errMsg string

	closeMu sync.RWMutex
	closed  bool

	logger    *slog.Logger
	token     string
	events    chan interface{}
	listeners []StateListener
}

// NewFSM constructs the session FSM and starts its event loop.
func NewFSM(logger *slog.Logger) *FSM {
	f := &FSM{state: StateIdle, logger: logger, events: make(chan interface{}, 64)}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				if logger != nil {
					logger.Error("session fsm panic", "error", r, "stack", stack)
				}
			}
		}()
		f.loop()
	}()
	return f
}

func (f *FSM) loop() {
	for ev := range f.events {
		switch e := ev.(type) {
		case evtAddListener:
			f.listeners = append(f.listeners, e.l)
		case evtSubmit:
			f.token = e.token
			f.setResult(nil, "")
			f.transition(StateAnalyzing)
		case evtResult:
			if e.token != f.token {
				if f.logger != nil {
					f.logger.Debug("stale analysis result discarded", "token", e.token)
				}
				continue
			}
			if f.Current() == StateAnalyzing {
				f.setResult(e.result, "")
				f.transition(StatePlayback)
			}
		case evtFail:
			if e.token != f.token {
				if f.logger != nil {
					f.logger.Debug("stale analysis failure discarded", "token", e.token)
				}
				continue
			}
			if f.Current() == StateAnalyzing {
				f.setResult(nil, e.message)
				f.transition(StateFailed)
			}
		case evtReset:
			f.token = ""
			f.setResult(nil, "")
			f.transition(StateIdle)
		}
	}
}

// events
type (
	evtSubmit struct{ token string }
	evtResult struct {
		token  string
		result *replay.AnalysisResult
	}
	evtFail struct {
		token   string
		message string
	}
	evtReset       struct{}
	evtAddListener struct{ l StateListener }
)

func (f *FSM) setResult(result *replay.AnalysisResult, errMsg string) {
	f.mu.Lock()
	f.result = result
	f.errMsg = errMsg
	f.mu.Unlock()
}

func (f *FSM) transition(next State) {
	f.mu.Lock()
	prev := f.state
	if prev == next {
		f.mu.Unlock()
		return
	}
	f.state = next
	f.mu.Unlock()
	if f.logger != nil {
		f.logger.Debug("session state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range f.listeners {
		l(prev, next)
	}
}

// send drops the event when the FSM is closed. Holding the read lock across
// the channel send keeps Close from closing underneath an in-flight sender.
func (f *FSM) send(ev interface{}) {
	f.closeMu.RLock()
	defer f.closeMu.RUnlock()
	if f.closed {
		return
	}
	f.events <- ev
}

// BeginAnalysis issues a fresh session token and transitions to analyzing.
// The returned token must accompany the eventual Deliver or Fail call.
func (f *FSM) BeginAnalysis() string {
	token := uuid.NewString()
	f.send(evtSubmit{token: token})
	return token
}

// Deliver hands a completed analysis to the session. Results for superseded
// tokens are dropped.
func (f *FSM) Deliver(token string, result *replay.AnalysisResult) {
	f.send(evtResult{token: token, result: result})
}

// Fail records an analysis failure for the given token.
func (f *FSM) Fail(token string, message string) {
	f.send(evtFail{token: token, message: message})
}

// Reset discards the current session and returns to idle.
func (f *FSM) Reset() { f.send(evtReset{}) }

// AddListener registers a transition listener.
func (f *FSM) AddListener(l StateListener) { f.send(evtAddListener{l: l}) }

// Current returns the session state.
func (f *FSM) Current() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Result returns the analysis bound to the current session, or nil.
func (f *FSM) Result() *replay.AnalysisResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// ErrorMessage returns the user-visible message of the last failure.
func (f *FSM) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Close tears down the event loop. Events arriving after Close are dropped.
func (f *FSM) Close() {
	f.closeMu.Lock()
	defer f.closeMu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	close(f.events)
}

var _ StateSource = (*FSM)(nil)
var _ Lifecycle = (*FSM)(nil)
