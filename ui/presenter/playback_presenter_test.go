package presenter

import (
	"image"
	"testing"
	"time"

	"github.com/soocke/tactic-replay-go/domain/media"
	"github.com/soocke/tactic-replay-go/domain/replay"
	"github.com/soocke/tactic-replay-go/ui/model"
	"github.com/soocke/tactic-replay-go/ui/render"
)

type fakePlaybackView struct {
	frames   int
	lastNil  bool
	current  float64
	total    float64
	playing  bool
	playSets int
}

func (v *fakePlaybackView) UpdateFrame(img image.Image) {
	v.frames++
	v.lastNil = img == nil
}
func (v *fakePlaybackView) SetTimeline(current, total float64) { v.current, v.total = current, total }
func (v *fakePlaybackView) SetPlaying(playing bool)            { v.playing = playing; v.playSets++ }

func twoKeyframeResult() *replay.AnalysisResult {
	return &replay.AnalysisResult{
		Keyframes: []replay.Keyframe{
			{TimeOffset: 0, Ball: replay.Position{X: 0, Y: 0}},
			{TimeOffset: 10, Ball: replay.Position{X: 100, Y: 0}},
		},
	}
}

func newTestPlayback() (*PlaybackPresenter, *fakePlaybackView, *media.ClockPlayer, *model.AnalysisModel) {
	view := &fakePlaybackView{}
	am := model.NewAnalysisModel()
	player := media.NewClockPlayer()
	p := NewPlaybackPresenter(
		replay.NewClock(1),
		am,
		replay.NewSyncBridge(0.5),
		player,
		render.NewPitchRenderer(105, 68),
		view,
		160,
		nil,
	)
	return p, view, player, am
}

func TestPlaybackPresenter_TickRendersAndReportsTimeline(t *testing.T) {
	p, view, _, am := newTestPlayback()
	res := twoKeyframeResult()
	am.Set("tok", res)
	p.BindAnalysis(res)
	p.Tick(time.Unix(0, 0))
	if view.frames != 1 || view.lastNil {
		t.Fatalf("expected a rendered frame, frames=%d nil=%v", view.frames, view.lastNil)
	}
	if view.total != 10 || view.current != 0 {
		t.Fatalf("timeline wrong: current=%v total=%v", view.current, view.total)
	}
	if view.playing {
		t.Fatalf("fresh analysis should start stopped")
	}
}

func TestPlaybackPresenter_PlayAdvancesAuthoritativeTime(t *testing.T) {
	p, view, _, am := newTestPlayback()
	res := twoKeyframeResult()
	am.Set("tok", res)
	p.BindAnalysis(res)
	p.TogglePlay()
	base := time.Unix(0, 0)
	p.Tick(base)
	p.Tick(base.Add(2 * time.Second))
	if view.current != 2 {
		t.Fatalf("expected authoritative time 2, got %v", view.current)
	}
	if !view.playing {
		t.Fatalf("view should reflect running state")
	}
}

func TestPlaybackPresenter_ScrubSeeksMediaUnconditionally(t *testing.T) {
	p, _, player, am := newTestPlayback()
	res := twoKeyframeResult()
	am.Set("tok", res)
	p.BindAnalysis(res)
	player.Seek(2.9) // within drift tolerance of the scrub target
	p.Scrub(3.0)
	if player.CurrentTime() != 3.0 {
		t.Fatalf("scrub must hard-seek the media player, got %v", player.CurrentTime())
	}
}

func TestPlaybackPresenter_DriftCorrectedDuringPlayback(t *testing.T) {
	p, _, player, am := newTestPlayback()
	res := twoKeyframeResult()
	am.Set("tok", res)
	p.BindAnalysis(res)
	p.TogglePlay()
	base := time.Unix(0, 0)
	p.Tick(base)
	// Force the media clock far ahead of the authoritative time.
	player.Seek(9)
	p.Tick(base.Add(time.Second))
	if player.CurrentTime() != 1.0 {
		t.Fatalf("media drift not corrected: %v", player.CurrentTime())
	}
}

func TestPlaybackPresenter_SmallDriftLeftAlone(t *testing.T) {
	p, _, player, am := newTestPlayback()
	res := twoKeyframeResult()
	am.Set("tok", res)
	p.BindAnalysis(res)
	p.TogglePlay()
	base := time.Unix(0, 0)
	p.Tick(base)
	// Nudge the media clock within tolerance; the seek re-arms its
	// advancement so the next tick leaves it untouched.
	player.Seek(0.3)
	p.Tick(base.Add(100 * time.Millisecond))
	if got := player.CurrentTime(); got != 0.3 {
		t.Fatalf("micro-drift was corrected: %v", got)
	}
}

func TestPlaybackPresenter_MediaPlayEventMirrorsIntoClock(t *testing.T) {
	p, _, player, am := newTestPlayback()
	res := twoKeyframeResult()
	am.Set("tok", res)
	p.BindAnalysis(res)
	player.Play()
	base := time.Unix(0, 0)
	p.Tick(base)
	p.Tick(base.Add(time.Second))
	if got := pCurrent(p); got != 1.0 {
		t.Fatalf("native play event did not start the clock: %v", got)
	}
	player.Pause()
	p.Tick(base.Add(2 * time.Second))
	if got := pCurrent(p); got != 1.0 {
		t.Fatalf("native pause event did not stop the clock: %v", got)
	}
}

func pCurrent(p *PlaybackPresenter) float64 { return p.clock.Current() }

func TestPlaybackPresenter_NoAnalysisRendersPlaceholder(t *testing.T) {
	p, view, _, _ := newTestPlayback()
	p.Tick(time.Unix(0, 0))
	if view.frames != 1 {
		t.Fatalf("placeholder frame not pushed")
	}
	if view.total != 0 {
		t.Fatalf("timeline should be empty without analysis: %v", view.total)
	}
}
