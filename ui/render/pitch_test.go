package render

import (
	"testing"

	"github.com/soocke/tactic-replay-go/domain/replay"
	"github.com/soocke/tactic-replay-go/ui/theme"
)

func TestRender_NilFrameYieldsPlaceholderPitch(t *testing.T) {
	r := NewPitchRenderer(105, 68)
	img := r.Render(nil, 420)
	if img == nil {
		t.Fatalf("nil image for placeholder")
	}
	if img.Bounds().Dx() != 420 {
		t.Fatalf("unexpected width %d", img.Bounds().Dx())
	}
	// 68/105 aspect at 420px wide.
	if h := img.Bounds().Dy(); h != 272 {
		t.Fatalf("unexpected height %d", h)
	}
	green := toRGBA(theme.PitchGreen)
	if got := img.RGBAAt(100, 40); got != green {
		t.Fatalf("expected pitch green off the markings, got %v", got)
	}
}

func TestRender_TeamDotDrawnAtScaledPosition(t *testing.T) {
	r := NewPitchRenderer(105, 68)
	frame := &replay.Frame{
		TimeOffset: 1,
		Ball:       replay.Position{X: 90, Y: 60},
		TeamA:      []replay.Entity{{ID: "a1", X: 20, Y: 20}},
	}
	img := r.Render(frame, 420) // scale 4
	want := toRGBA(theme.TeamA)
	if got := img.RGBAAt(80, 80); got != want {
		t.Fatalf("team A dot missing at scaled position: got %v want %v", got, want)
	}
}

func TestRender_MinimumWidthEnforced(t *testing.T) {
	r := NewPitchRenderer(105, 68)
	img := r.Render(nil, 0)
	if img.Bounds().Dx() != 80 {
		t.Fatalf("minimum width not applied: %d", img.Bounds().Dx())
	}
}

func TestRender_NewEntityFadesIn(t *testing.T) {
	r := NewPitchRenderer(105, 68)
	base := &replay.Frame{TimeOffset: 0, TeamA: []replay.Entity{{ID: "a1", X: 20, Y: 20}}}
	r.Render(base, 420)

	appeared := &replay.Frame{
		TimeOffset: 2,
		TeamA: []replay.Entity{
			{ID: "a1", X: 20, Y: 20},
			{ID: "fresh", X: 60, Y: 40},
		},
	}
	img := r.Render(appeared, 420)
	full := toRGBA(theme.TeamA)
	if got := img.RGBAAt(240, 160); got == full {
		t.Fatalf("freshly appeared entity rendered at full intensity immediately")
	}

	settled := &replay.Frame{
		TimeOffset: 4,
		TeamA: []replay.Entity{
			{ID: "a1", X: 20, Y: 20},
			{ID: "fresh", X: 60, Y: 40},
		},
	}
	img = r.Render(settled, 420)
	if got := img.RGBAAt(240, 160); got != full {
		t.Fatalf("entity did not settle to full intensity: got %v want %v", got, full)
	}
}

func TestRender_BackwardScrubReseedsVisibility(t *testing.T) {
	r := NewPitchRenderer(105, 68)
	r.Render(&replay.Frame{TimeOffset: 5, TeamA: []replay.Entity{{ID: "a1", X: 20, Y: 20}}}, 420)
	// Scrub back: the same id must render fully visible, not restart a fade.
	img := r.Render(&replay.Frame{TimeOffset: 1, TeamA: []replay.Entity{{ID: "a1", X: 20, Y: 20}}}, 420)
	if got := img.RGBAAt(80, 80); got != toRGBA(theme.TeamA) {
		t.Fatalf("backward scrub restarted fade: %v", got)
	}
}
