package theme

// Centralized palette for the tactic replay UI. Pitch colors live here so the
// renderer and the widget styling agree.

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Widget palette.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorDanger    = "#dc2626" // error banner
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// Pitch palette.
var (
	PitchGreen = mustHex("#2f7d46")
	PitchLine  = mustHex("#e8f2ea")
	TeamA      = mustHex("#ef4444") // red
	TeamB      = mustHex("#3b82f6") // blue
	BallColor  = mustHex("#fde047") // yellow
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FadeToPitch blends a marker color toward the pitch green. alpha 1 returns
// the marker color, alpha 0 the pitch. Used for entity fade-in.
func FadeToPitch(marker colorful.Color, alpha float64) colorful.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return PitchGreen.BlendHcl(marker, alpha).Clamped()
}
