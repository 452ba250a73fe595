package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/soocke/tactic-replay-go/domain/replay"
	"github.com/soocke/tactic-replay-go/ui/theme"
)

// entityFadeSeconds is the visual fade-in applied after an entity id first
// appears. Purely cosmetic: the interpolated data itself never fades.
const entityFadeSeconds = 0.4

// PitchRenderer rasterizes synthesized frames onto a 2D pitch. It keeps a
// small amount of presentation state (first-appearance times per entity id)
// to fade newly appearing entities in; Reset clears it when a new analysis
// is bound.
type PitchRenderer struct {
	fieldW    float64
	fieldH    float64
	firstSeen map[string]float64
	lastTime  float64
}

// NewPitchRenderer creates a renderer for a pitch of the given field-relative
// dimensions. Non-positive dimensions fall back to a standard 105x68 pitch.
func NewPitchRenderer(fieldW, fieldH float64) *PitchRenderer {
	if fieldW <= 0 {
		fieldW = 105
	}
	if fieldH <= 0 {
		fieldH = 68
	}
	return &PitchRenderer{fieldW: fieldW, fieldH: fieldH}
}

// Reset clears the per-entity presentation state.
func (r *PitchRenderer) Reset() {
	if r == nil {
		return
	}
	r.firstSeen = nil
	r.lastTime = 0
}

// Render rasterizes one frame at the given pixel width. A nil frame renders
// the empty pitch placeholder.
func (r *PitchRenderer) Render(frame *replay.Frame, widthPx int) *image.RGBA {
	if widthPx < 80 {
		widthPx = 80
	}
	scale := float64(widthPx) / r.fieldW
	heightPx := int(math.Round(r.fieldH * scale))
	img := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))

	r.drawPitch(img, scale)
	if frame == nil {
		return img
	}

	r.trackAppearances(frame)
	r.lastTime = frame.TimeOffset

	for _, e := range frame.TeamA {
		r.drawEntity(img, scale, e, theme.TeamA, frame.TimeOffset)
	}
	for _, e := range frame.TeamB {
		r.drawEntity(img, scale, e, theme.TeamB, frame.TimeOffset)
	}
	r.drawBall(img, scale, frame)
	return img
}

// trackAppearances records the first render time of each entity id. A fresh
// renderer (or a backward scrub, which invalidates the timeline) seeds all
// current ids as fully visible instead of fading the whole scene in.
func (r *PitchRenderer) trackAppearances(frame *replay.Frame) {
	t := frame.TimeOffset
	seed := r.firstSeen == nil || t < r.lastTime
	if seed {
		r.firstSeen = make(map[string]float64)
	}
	mark := func(es []replay.Entity) {
		for _, e := range es {
			if _, ok := r.firstSeen[e.ID]; !ok {
				if seed {
					r.firstSeen[e.ID] = t - entityFadeSeconds
				} else {
					r.firstSeen[e.ID] = t
				}
			}
		}
	}
	mark(frame.TeamA)
	mark(frame.TeamB)
}

func (r *PitchRenderer) appearAlpha(id string, now float64) float64 {
	first, ok := r.firstSeen[id]
	if !ok {
		return 1
	}
	progress := (now - first) / entityFadeSeconds
	if progress >= 1 {
		return 1
	}
	if progress <= 0 {
		return 0
	}
	return ease.OutCubic(progress)
}

func (r *PitchRenderer) drawEntity(img *image.RGBA, scale float64, e replay.Entity, base colorful.Color, now float64) {
	c := theme.FadeToPitch(base, r.appearAlpha(e.ID, now))
	fillCircle(img, e.X*scale, e.Y*scale, 0.9*scale, toRGBA(c))
}

func (r *PitchRenderer) drawBall(img *image.RGBA, scale float64, frame *replay.Frame) {
	cx, cy := frame.Ball.X*scale, frame.Ball.Y*scale
	fillCircle(img, cx, cy, 0.45*scale, toRGBA(theme.BallColor))
	// Pulse ring: a triangle wave over a 1.6s period run through an easing
	// curve so the ball stays easy to spot.
	phase := math.Mod(frame.TimeOffset, 1.6) / 1.6
	if phase > 0.5 {
		phase = 1 - phase
	}
	pulse := ease.InOutQuad(phase * 2)
	strokeCircle(img, cx, cy, (0.7+0.5*pulse)*scale, toRGBA(theme.BallColor))
}

// drawPitch paints the background and the standard field markings.
func (r *PitchRenderer) drawPitch(img *image.RGBA, scale float64) {
	green := toRGBA(theme.PitchGreen)
	line := toRGBA(theme.PitchLine)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, green)
		}
	}
	w := float64(b.Dx())
	h := float64(b.Dy())
	strokeRect(img, 0, 0, w-1, h-1, line)
	// Halfway line and center circle.
	for y := 0; y < b.Dy(); y++ {
		img.SetRGBA(int(w/2), y, line)
	}
	strokeCircle(img, w/2, h/2, 9.15*scale, line)
	// Penalty areas (16.5 units deep, 40.3 wide).
	boxD := 16.5 * scale
	boxW := 40.3 * scale
	strokeRect(img, 0, h/2-boxW/2, boxD, h/2+boxW/2, line)
	strokeRect(img, w-1-boxD, h/2-boxW/2, w-1, h/2+boxW/2, line)
}

func fillCircle(img *image.RGBA, cx, cy, radius float64, c color.RGBA) {
	if radius < 1.5 {
		radius = 1.5
	}
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !inBounds(img, x, y) {
				continue
			}
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func strokeCircle(img *image.RGBA, cx, cy, radius float64, c color.RGBA) {
	steps := int(2 * math.Pi * radius * 2)
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Round(cx + radius*math.Cos(a)))
		y := int(math.Round(cy + radius*math.Sin(a)))
		if inBounds(img, x, y) {
			img.SetRGBA(x, y, c)
		}
	}
}

func strokeRect(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	for x := int(x0); x <= int(x1); x++ {
		if inBounds(img, x, int(y0)) {
			img.SetRGBA(x, int(y0), c)
		}
		if inBounds(img, x, int(y1)) {
			img.SetRGBA(x, int(y1), c)
		}
	}
	for y := int(y0); y <= int(y1); y++ {
		if inBounds(img, int(x0), y) {
			img.SetRGBA(int(x0), y, c)
		}
		if inBounds(img, int(x1), y) {
			img.SetRGBA(int(x1), y, c)
		}
	}
}

func inBounds(img *image.RGBA, x, y int) bool {
	b := img.Bounds()
	return x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y
}

func toRGBA(c colorful.Color) color.RGBA {
	rr, gg, bb := c.Clamped().RGB255()
	return color.RGBA{R: rr, G: gg, B: bb, A: 255}
}
