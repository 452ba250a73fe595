package app

import (
	"log/slog"

	"github.com/soocke/tactic-replay-go/assets"
	"github.com/soocke/tactic-replay-go/config"
	"github.com/soocke/tactic-replay-go/domain/analysis"
	"github.com/soocke/tactic-replay-go/domain/media"
	"github.com/soocke/tactic-replay-go/domain/replay"
	"github.com/soocke/tactic-replay-go/domain/session"
	"github.com/soocke/tactic-replay-go/ui/model"
	"github.com/soocke/tactic-replay-go/ui/presenter"
	"github.com/soocke/tactic-replay-go/ui/render"
	"github.com/soocke/tactic-replay-go/ui/view"
)

// pitchWidthPx is the rendered width of the tactical scene.
const pitchWidthPx = 640

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Analysis *model.AnalysisModel
	Clock    *replay.Clock
	Bridge   *replay.SyncBridge
	Player   *media.ClockPlayer
	Analyzer analysis.Analyzer
	Session  *session.FSM
	RootView *view.RootView

	// Presenters
	SessionPresenter  *presenter.SessionPresenter
	PlaybackPresenter *presenter.PlaybackPresenter
	Loop              *presenter.Loop
}

// BuildContainer constructs all components. The view is built separately by
// the app wrapper once the Tk window exists; the session FSM listener is
// registered here.
func BuildContainer(cfg *config.Config, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Analysis = model.NewAnalysisModel()
	c.Clock = replay.NewClock(cfg.DefaultRate)
	c.Bridge = replay.NewSyncBridge(cfg.DriftToleranceSec)
	c.Player = media.NewClockPlayer()
	c.Analyzer = analysis.NewClient(cfg, logger)
	c.Session = session.NewFSM(logger)
	c.RootView = view.NewRootView(logger)

	c.PlaybackPresenter = presenter.NewPlaybackPresenter(
		c.Clock, c.Analysis, c.Bridge, c.Player, render.NewPitchRenderer(cfg.FieldWidth, cfg.FieldHeight),
		c.RootView, pitchWidthPx, logger)
	c.SessionPresenter = presenter.NewSessionPresenter(
		c.Session, c.Analyzer, c.Analysis, c.PlaybackPresenter, c.RootView,
		assets.DemoAnalysis, cfg.MaxUploadBytes, logger)
	c.Session.AddListener(func(prev, next session.State) {
		c.SessionPresenter.OnState(next)
	})
	return c
}
