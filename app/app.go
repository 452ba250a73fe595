package app

import (
	"fmt"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/tactic-replay-go/config"
	"github.com/soocke/tactic-replay-go/debug"
	"github.com/soocke/tactic-replay-go/ui/presenter"
	"github.com/soocke/tactic-replay-go/ui/view"
)

type app struct {
	config    *config.Config
	logger    *slog.Logger
	container *AppContainer
	width     int
	height    int
	tick      time.Duration
	afterID   string
	tickMeter *debug.TickMeter
}

func NewApp(title string, width, height int, cfg *config.Config, logger *slog.Logger) *app {
	a := &app{config: cfg, logger: logger, width: width, height: height}
	a.tick = time.Duration(cfg.TickMillis) * time.Millisecond
	a.tickMeter = debug.NewTickMeter()

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

func (a *app) Start() {
	a.container = BuildContainer(a.config, a.logger)
	c := a.container

	c.RootView.Build(view.Handlers{
		OnAnalyze:    c.SessionPresenter.SubmitClip,
		OnDemo:       c.SessionPresenter.LoadDemo,
		OnRetry:      c.SessionPresenter.Retry,
		OnTogglePlay: c.PlaybackPresenter.TogglePlay,
		OnScrub:      c.PlaybackPresenter.Scrub,
		OnRate:       c.PlaybackPresenter.SetRate,
		OnExit:       a.exitHandler,
	})

	c.Loop = presenter.NewLoop(c.SessionPresenter, c.PlaybackPresenter, a.scheduleUpdate)

	if a.logger != nil {
		a.logger.Info("app started", "tick", a.tick)
	}
	if a.config.Debug {
		debug.StartTickLogger(5*time.Second, a.tickMeter, a.logger)
	}

	// Kick off update loop.
	a.scheduleUpdate()

	App.Wait()
}

// scheduleUpdate schedules the next loop tick using TclAfter to stay on Tk's
// event loop thread.
func (a *app) scheduleUpdate() {
	a.afterID = TclAfter(a.tick, func() {
		a.tickMeter.Observe(time.Now())
		a.container.Loop.Tick()
	})
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	if a.container != nil && a.container.Session != nil {
		a.container.Session.Close()
	}
	Destroy(App)
}
