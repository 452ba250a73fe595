package model

import (
	"github.com/soocke/tactic-replay-go/domain/replay"
)

// AnalysisModel owns the analysis result of the current playback session.
// The zero value is empty and usable. No synchronization needed: updates
// occur on the UI thread tick.
type AnalysisModel struct {
	result *replay.AnalysisResult
	token  string
}

func NewAnalysisModel() *AnalysisModel { return &AnalysisModel{} }

// Set binds a result and the session token it belongs to, replacing any
// previous session.
func (m *AnalysisModel) Set(token string, result *replay.AnalysisResult) {
	if m == nil {
		return
	}
	m.token = token
	m.result = result
}

// Clear discards the bound result.
func (m *AnalysisModel) Clear() {
	if m == nil {
		return
	}
	m.token = ""
	m.result = nil
}

// Result returns the bound result, or nil when no session is active.
func (m *AnalysisModel) Result() *replay.AnalysisResult {
	if m == nil {
		return nil
	}
	return m.result
}

// Token returns the session token of the bound result.
func (m *AnalysisModel) Token() string {
	if m == nil {
		return ""
	}
	return m.token
}

// Keyframes returns the bound keyframe sequence, or nil.
func (m *AnalysisModel) Keyframes() []replay.Keyframe {
	if m == nil || m.result == nil {
		return nil
	}
	return m.result.Keyframes
}

// Duration returns the last keyframe timestamp, or 0 when empty.
func (m *AnalysisModel) Duration() float64 {
	if m == nil {
		return 0
	}
	return m.result.Duration()
}

// FrameAt synthesizes the frame for the given time, or nil when no analysis
// is bound.
func (m *AnalysisModel) FrameAt(time float64) *replay.Frame {
	if m == nil || m.result == nil {
		return nil
	}
	return replay.Interpolate(time, m.result.Keyframes)
}

var _ replay.FrameSource = (*AnalysisModel)(nil)
