package presenter

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/tactic-replay-go/domain/media"
	"github.com/soocke/tactic-replay-go/domain/replay"
	"github.com/soocke/tactic-replay-go/ui/model"
	"github.com/soocke/tactic-replay-go/ui/render"
)

// PlaybackView is the UI surface updated each tick with the synthesized
// scene and the timeline position.
type PlaybackView interface {
	UpdateFrame(img image.Image)
	SetTimeline(current, total float64)
	SetPlaying(playing bool)
}

// mediaAdvancer is implemented by players whose clock must be driven from
// the UI tick (the preview ClockPlayer). External players advance themselves.
type mediaAdvancer interface{ Advance(now time.Time) }

// PlaybackPresenter drives the playback clock, synthesizes a frame per tick
// and keeps the media player reconciled with the authoritative time.
type PlaybackPresenter struct {
	clock    *replay.Clock
	analysis *model.AnalysisModel
	bridge   *replay.SyncBridge
	player   media.Player
	renderer *render.PitchRenderer
	view     PlaybackView
	widthPx  int
	logger   *slog.Logger
}

// NewPlaybackPresenter wires the playback engine together. The clock's
// per-tick sync side effect and the player's native play/pause mirroring are
// installed here.
func NewPlaybackPresenter(clock *replay.Clock, analysis *model.AnalysisModel, bridge *replay.SyncBridge,
	player media.Player, renderer *render.PitchRenderer, view PlaybackView, widthPx int, logger *slog.Logger) *PlaybackPresenter {

	p := &PlaybackPresenter{
		clock:    clock,
		analysis: analysis,
		bridge:   bridge,
		player:   player,
		renderer: renderer,
		view:     view,
		widthPx:  widthPx,
		logger:   logger,
	}
	if clock != nil {
		clock.SetSyncFunc(p.reconcileMedia)
	}
	if player != nil {
		player.SetStateListener(p.onMediaState)
	}
	return p
}

// Tick advances the whole playback pipeline for one scheduling step.
func (p *PlaybackPresenter) Tick(now time.Time) {
	if p == nil || p.clock == nil || p.analysis == nil || p.view == nil {
		return
	}
	if adv, ok := p.player.(mediaAdvancer); ok {
		adv.Advance(now)
	}
	p.clock.Tick(now)

	frame := p.analysis.FrameAt(p.clock.Current())
	if p.renderer != nil {
		p.view.UpdateFrame(p.renderer.Render(frame, p.widthPx))
	}
	p.view.SetTimeline(p.clock.Current(), p.clock.End())
	p.view.SetPlaying(p.clock.State() == replay.ClockRunning)
}

// BindAnalysis attaches a fresh analysis: the clock rewinds to 0, the
// renderer forgets presentation state and the media player is parked at the
// start.
func (p *PlaybackPresenter) BindAnalysis(result *replay.AnalysisResult) {
	if p == nil || p.clock == nil {
		return
	}
	var kfs []replay.Keyframe
	if result != nil {
		kfs = result.Keyframes
	}
	p.clock.Bind(kfs)
	if p.renderer != nil {
		p.renderer.Reset()
	}
	if p.player != nil {
		p.player.Pause()
		p.player.Seek(0)
	}
	if p.logger != nil && result != nil {
		p.logger.Info("analysis bound", "keyframes", len(kfs), "duration_sec", result.Duration())
	}
}

// ClearAnalysis detaches playback when the session ends or fails.
func (p *PlaybackPresenter) ClearAnalysis() {
	if p == nil || p.clock == nil {
		return
	}
	p.clock.Bind(nil)
	if p.renderer != nil {
		p.renderer.Reset()
	}
	if p.player != nil {
		p.player.Pause()
		p.player.Seek(0)
	}
}

// TogglePlay flips between running and stopped, keeping the media player's
// native state aligned.
func (p *PlaybackPresenter) TogglePlay() {
	if p == nil || p.clock == nil {
		return
	}
	if p.clock.State() == replay.ClockRunning {
		p.clock.Pause()
		if p.player != nil {
			p.player.Pause()
		}
		return
	}
	p.clock.Play()
	if p.clock.State() == replay.ClockRunning && p.player != nil {
		p.player.Play()
	}
}

// Scrub jumps the authoritative time and unconditionally seeks the media
// player to the same instant. Running state is untouched.
func (p *PlaybackPresenter) Scrub(requested float64) {
	if p == nil || p.clock == nil {
		return
	}
	t := p.clock.Scrub(requested)
	if p.player != nil {
		p.player.Seek(t)
	}
}

// SetRate changes the playback speed multiplier.
func (p *PlaybackPresenter) SetRate(rate float64) {
	if p == nil || p.clock == nil {
		return
	}
	p.clock.SetRate(rate)
}

// reconcileMedia is the clock's per-tick side effect: correct the media
// clock when it drifts past tolerance.
func (p *PlaybackPresenter) reconcileMedia(authoritative float64) {
	if p.bridge == nil || p.player == nil {
		return
	}
	if corrected, ok := p.bridge.Reconcile(authoritative, p.player.CurrentTime()); ok {
		if p.logger != nil {
			p.logger.Debug("media drift corrected", "authoritative", authoritative, "media", p.player.CurrentTime())
		}
		p.player.Seek(corrected)
	}
}

// onMediaState mirrors native play/pause events into the playback clock.
func (p *PlaybackPresenter) onMediaState(playing bool) {
	if p == nil || p.clock == nil {
		return
	}
	if playing {
		p.clock.Play()
		return
	}
	p.clock.Pause()
}
