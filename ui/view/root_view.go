package view

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/tactic-replay-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user-action callbacks the root view forwards to
// presenters.
type Handlers struct {
	OnAnalyze    func(path string)
	OnDemo       func()
	OnRetry      func()
	OnTogglePlay func()
	OnScrub      func(seconds float64)
	OnRate       func(multiplier float64)
	OnExit       func()
}

// rateChoices are the nominal playback speed multipliers offered in the UI.
// The clock accepts any positive value; this is just the preset list.
var rateChoices = []string{"0.5x", "1x", "2x"}

// RootView composes the top-level application layout and wires UI callbacks.
// It implements the presenter view contracts (playback and session).
type RootView struct {
	logger *slog.Logger

	Pitch PitchView

	statusLbl *LabelWidget
	errorLbl  *LabelWidget
	retryBtn  *ButtonWidget
	pathEntry *TextWidget
	playBtn   *ButtonWidget
	timeLbl   *LabelWidget
	scrub     *TScaleWidget
	rateSel   *TComboboxWidget

	handlers Handlers

	// updatingScrub suppresses the scale's command callback while the
	// presenter writes the position, so programmatic updates do not feed
	// back into the clock as scrubs.
	updatingScrub bool
	scrubTotal    float64
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// Build constructs the layout and registers the action handlers.
func (rv *RootView) Build(handlers Handlers) {
	if rv == nil {
		return
	}
	rv.handlers = handlers

	// Row 0: status, error banner, retry.
	rv.statusLbl = Label(Txt("Choose a clip to analyze"), Anchor("w"))
	Grid(rv.statusLbl, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.errorLbl = Label(Txt(""), Anchor("w"), Foreground(theme.ColorDanger))
	Grid(rv.errorLbl, Row(0), Column(2), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.retryBtn = Button(Txt("Retry"), Command(func() {
		if rv.handlers.OnRetry != nil {
			rv.handlers.OnRetry()
		}
	}))
	Grid(rv.retryBtn, Row(0), Column(5), Sticky("e"), Padx("0.4m"), Pady("0.3m"))

	// Row 1: clip path entry plus browse/analyze/demo/exit buttons.
	rv.pathEntry = Text(Height(1), Width(40))
	Grid(rv.pathEntry, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	browseBtn := Button(Txt("Browse..."), Command(func() {
		rv.onBrowse()
	}))
	Grid(browseBtn, Row(1), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	analyzeBtn := Button(Txt("Analyze Clip"), Command(func() {
		path := strings.TrimSpace(rv.entryText())
		if path == "" || rv.handlers.OnAnalyze == nil {
			return
		}
		rv.handlers.OnAnalyze(path)
	}))
	Grid(analyzeBtn, Row(1), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	demoBtn := Button(Txt("Load Demo"), Command(func() {
		if rv.handlers.OnDemo != nil {
			rv.handlers.OnDemo()
		}
	}))
	Grid(demoBtn, Row(1), Column(4), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(func() {
		if rv.handlers.OnExit != nil {
			rv.handlers.OnExit()
		}
	}))
	Grid(exitBtn, Row(1), Column(5), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 2: the pitch.
	rv.Pitch = NewPitchView(2)

	// Row 3: playback controls.
	rv.playBtn = Button(Txt("Play"), Command(func() {
		if rv.handlers.OnTogglePlay != nil {
			rv.handlers.OnTogglePlay()
		}
	}))
	Grid(rv.playBtn, Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.scrub = TScale(From(0), To(1), Orient("horizontal"), Length(360), Command(func() {
		rv.onScrubMoved()
	}))
	Grid(rv.scrub, Row(3), Column(1), Columnspan(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.timeLbl = Label(Txt("0.0 / 0.0 s"), Width(14))
	Grid(rv.timeLbl, Row(3), Column(4), Sticky("w"), Padx("0.2m"), Pady("0.2m"))
	rv.rateSel = TCombobox(Values(rateChoices), Width(6))
	Grid(rv.rateSel, Row(3), Column(5), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.rateSel.Current(1) // 1x
	Bind(rv.rateSel, "<<ComboboxSelected>>", Command(func() {
		rv.onRateSelected()
	}))

	rv.SetControlsEnabled(false)
}

// onBrowse opens the native file picker and puts the chosen clip path into
// the entry, ready for Analyze.
func (rv *RootView) onBrowse() {
	if rv == nil || rv.pathEntry == nil {
		return
	}
	paths := GetOpenFile(Title("Select a clip"))
	if len(paths) == 0 || paths[0] == "" {
		return
	}
	rv.pathEntry.Delete("1.0", END)
	rv.pathEntry.Insert("1.0", paths[0])
}

func (rv *RootView) entryText() string {
	if rv.pathEntry == nil {
		return ""
	}
	parts := rv.pathEntry.Get("1.0", END)
	return strings.Join(parts, "")
}

func (rv *RootView) onScrubMoved() {
	if rv == nil || rv.updatingScrub || rv.scrub == nil || rv.handlers.OnScrub == nil {
		return
	}
	raw := rv.scrub.Get()
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		if rv.logger != nil {
			rv.logger.Error("scrub value parse error", "value", raw, "error", err)
		}
		return
	}
	rv.handlers.OnScrub(val)
}

func (rv *RootView) onRateSelected() {
	if rv == nil || rv.rateSel == nil || rv.handlers.OnRate == nil {
		return
	}
	idxStr := rv.rateSel.Current(nil)
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(rateChoices) {
		if rv.logger != nil {
			rv.logger.Error("rate selection parse error", "error", err)
		}
		return
	}
	rate, err := strconv.ParseFloat(strings.TrimSuffix(rateChoices[idx], "x"), 64)
	if err != nil {
		return
	}
	rv.handlers.OnRate(rate)
}

// --- PlaybackView contract ---

// UpdateFrame proxies the rendered scene to the pitch view.
func (rv *RootView) UpdateFrame(img image.Image) {
	if rv != nil && rv.Pitch != nil {
		rv.Pitch.UpdateFrame(img)
	}
}

// SetTimeline updates the time label and the scrub position.
func (rv *RootView) SetTimeline(current, total float64) {
	if rv == nil {
		return
	}
	if rv.timeLbl != nil {
		rv.timeLbl.Configure(Txt(fmt.Sprintf("%.1f / %.1f s", current, total)))
	}
	if rv.scrub == nil {
		return
	}
	func() {
		defer func() { _ = recover() }()
		rv.updatingScrub = true
		defer func() { rv.updatingScrub = false }()
		if total != rv.scrubTotal {
			rv.scrubTotal = total
			if total > 0 {
				rv.scrub.Configure(To(total))
			}
		}
		rv.scrub.Configure(Value(current))
	}()
}

// SetPlaying flips the play/pause button caption.
func (rv *RootView) SetPlaying(playing bool) {
	if rv == nil || rv.playBtn == nil {
		return
	}
	caption := "Play"
	if playing {
		caption = "Pause"
	}
	rv.playBtn.Configure(Txt(caption))
}

// --- SessionView contract ---

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.statusLbl != nil {
		rv.statusLbl.Configure(Txt(text))
	}
}

// SetError shows or clears the error banner. The retry button mirrors the
// banner's visibility state.
func (rv *RootView) SetError(message string) {
	if rv == nil || rv.errorLbl == nil {
		return
	}
	rv.errorLbl.Configure(Txt(message))
	if rv.retryBtn != nil {
		state := "disabled"
		if message != "" {
			state = "normal"
		}
		rv.retryBtn.Configure(State(state))
	}
}

// SetControlsEnabled toggles the playback controls.
func (rv *RootView) SetControlsEnabled(enabled bool) {
	if rv == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	if rv.playBtn != nil {
		rv.playBtn.Configure(State(state))
	}
	if rv.scrub != nil {
		rv.scrub.Configure(State(state))
	}
	if rv.rateSel != nil {
		rv.rateSel.Configure(State(state))
	}
}
