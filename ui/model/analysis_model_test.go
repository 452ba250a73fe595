package model

import (
	"testing"

	"github.com/soocke/tactic-replay-go/domain/replay"
)

func TestAnalysisModel_ZeroValueEmpty(t *testing.T) {
	var m AnalysisModel
	if m.Result() != nil || m.Duration() != 0 {
		t.Fatalf("zero value should be empty")
	}
	if f := m.FrameAt(1); f != nil {
		t.Fatalf("frame synthesized without analysis: %+v", f)
	}
}

func TestAnalysisModel_SetAndClear(t *testing.T) {
	m := NewAnalysisModel()
	res := &replay.AnalysisResult{Keyframes: []replay.Keyframe{{TimeOffset: 0}, {TimeOffset: 6}}}
	m.Set("tok-1", res)
	if m.Token() != "tok-1" || m.Duration() != 6 {
		t.Fatalf("model did not bind result: token=%q duration=%v", m.Token(), m.Duration())
	}
	if m.FrameAt(3) == nil {
		t.Fatalf("expected synthesized frame")
	}
	m.Clear()
	if m.Result() != nil || m.Token() != "" {
		t.Fatalf("clear left state behind")
	}
}
