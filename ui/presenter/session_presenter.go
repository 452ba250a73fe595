package presenter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/soocke/tactic-replay-go/domain/analysis"
	"github.com/soocke/tactic-replay-go/domain/replay"
	"github.com/soocke/tactic-replay-go/domain/session"
	"github.com/soocke/tactic-replay-go/ui/model"
)

// SessionFSM narrows the session state machine operations the presenter uses.
type SessionFSM interface {
	Current() session.State
	Result() *replay.AnalysisResult
	ErrorMessage() string
	BeginAnalysis() string
	Deliver(token string, result *replay.AnalysisResult)
	Fail(token string, message string)
	Reset()
}

// AnalysisBinder attaches or detaches an analysis on the playback side.
type AnalysisBinder interface {
	BindAnalysis(result *replay.AnalysisResult)
	ClearAnalysis()
}

// SessionView is the UI surface reflecting session progress and errors.
type SessionView interface {
	SetStatus(text string)
	SetError(message string)
	SetControlsEnabled(enabled bool)
}

// DemoSource supplies the embedded demo analysis.
type DemoSource func() (*replay.AnalysisResult, error)

// SessionPresenter submits clips for analysis and reflects session state
// transitions into the view. FSM transitions arrive on the FSM goroutine and
// are queued; they are applied on the next UI tick.
type SessionPresenter struct {
	fsm       SessionFSM
	analyzer  analysis.Analyzer
	analysis  *model.AnalysisModel
	binder    AnalysisBinder
	view      SessionView
	demo      DemoSource
	maxBytes  int64
	logger    *slog.Logger
	readFile  func(string) ([]byte, error)
	lastToken string

	pending []session.State
	latest  session.State
}

// NewSessionPresenter returns a presenter ready to receive FSM transitions
// via OnState.
func NewSessionPresenter(fsm SessionFSM, analyzer analysis.Analyzer, analysisModel *model.AnalysisModel,
	binder AnalysisBinder, view SessionView, demo DemoSource, maxBytes int64, logger *slog.Logger) *SessionPresenter {

	return &SessionPresenter{
		fsm:      fsm,
		analyzer: analyzer,
		analysis: analysisModel,
		binder:   binder,
		view:     view,
		demo:     demo,
		maxBytes: maxBytes,
		logger:   logger,
		readFile: os.ReadFile,
	}
}

// OnState queues a transitioned state from the FSM listener.
func (p *SessionPresenter) OnState(s session.State) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, s)
}

// Tick applies queued transitions on the UI thread.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.fsm == nil || p.view == nil {
		return
	}
	if len(p.pending) == 0 {
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	if last == p.latest {
		return
	}
	p.latest = last
	p.apply(last)
}

func (p *SessionPresenter) apply(s session.State) {
	switch s {
	case session.StateIdle:
		p.analysis.Clear()
		if p.binder != nil {
			p.binder.ClearAnalysis()
		}
		p.view.SetError("")
		p.view.SetControlsEnabled(false)
		p.view.SetStatus("Choose a clip to analyze")
	case session.StateAnalyzing:
		p.view.SetError("")
		p.view.SetControlsEnabled(false)
		p.view.SetStatus("Analyzing clip...")
	case session.StatePlayback:
		result := p.fsm.Result()
		p.analysis.Set(p.lastToken, result)
		if p.binder != nil {
			p.binder.BindAnalysis(result)
		}
		p.view.SetError("")
		p.view.SetControlsEnabled(true)
		p.view.SetStatus(statusFor(result))
	case session.StateFailed:
		p.analysis.Clear()
		if p.binder != nil {
			p.binder.ClearAnalysis()
		}
		p.view.SetControlsEnabled(false)
		p.view.SetStatus("Analysis failed")
		p.view.SetError(p.fsm.ErrorMessage())
	}
}

func statusFor(result *replay.AnalysisResult) string {
	if result == nil {
		return ""
	}
	if result.Formation != "" && result.PlayType != "" {
		return fmt.Sprintf("%s | %s | %.1fs", result.Formation, result.PlayType, result.Duration())
	}
	return result.Summary
}

// SubmitClip validates the selected file and launches the asynchronous
// analysis. Validation failures are surfaced immediately and leave the
// session untouched.
func (p *SessionPresenter) SubmitClip(path string) {
	if p == nil || p.fsm == nil || p.analyzer == nil || p.view == nil {
		return
	}
	data, err := p.readFile(path)
	if err != nil {
		p.view.SetError(fmt.Sprintf("cannot read clip: %v", err))
		return
	}
	mime := mimeForClip(path)
	if err := analysis.ValidateClip(data, mime, p.maxBytes); err != nil {
		p.view.SetError(err.Error())
		return
	}
	p.view.SetError("")
	token := p.fsm.BeginAnalysis()
	p.lastToken = token
	if p.logger != nil {
		p.logger.Info("clip submitted", "path", filepath.Base(path), "bytes", len(data), "token", token)
	}
	go func() {
		result, err := p.analyzer.AnalyzeVideo(context.Background(), data, mime)
		if err != nil {
			p.fsm.Fail(token, err.Error())
			return
		}
		p.fsm.Deliver(token, result)
	}()
}

// LoadDemo runs the embedded demo analysis through the normal session flow.
func (p *SessionPresenter) LoadDemo() {
	if p == nil || p.fsm == nil || p.demo == nil {
		return
	}
	result, err := p.demo()
	token := p.fsm.BeginAnalysis()
	p.lastToken = token
	if err != nil {
		p.fsm.Fail(token, fmt.Sprintf("demo analysis unavailable: %v", err))
		return
	}
	p.fsm.Deliver(token, result)
}

// Retry returns a failed session to the upload state.
func (p *SessionPresenter) Retry() {
	if p == nil || p.fsm == nil {
		return
	}
	p.fsm.Reset()
}

// mimeForClip maps a clip filename to its content type. Unknown extensions
// map to an empty type, which upload validation rejects.
func mimeForClip(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".avi":
		return "video/x-msvideo"
	default:
		return ""
	}
}
