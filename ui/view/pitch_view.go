package view

import (
	"bytes"
	"image"
	"image/png"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PitchView displays the rasterized tactical scene.
// It owns one LabelWidget and swaps its photo on every update.
type PitchView interface {
	UpdateFrame(img image.Image)
}

type pitchView struct {
	frameLbl *LabelWidget
}

// NewPitchView creates the scene display at the given grid row.
func NewPitchView(row int) PitchView {
	v := &pitchView{frameLbl: Label(Borderwidth(1), Relief("sunken"))}
	Grid(v.frameLbl, Row(row), Column(0), Columnspan(6), Padx("0.4m"), Pady("0.4m"))
	return v
}

// UpdateFrame replaces the displayed scene.
func (v *pitchView) UpdateFrame(img image.Image) {
	if v == nil || v.frameLbl == nil || img == nil {
		return
	}
	pngBytes := encodePNG(img)
	if len(pngBytes) == 0 {
		return
	}
	func() {
		defer func() { _ = recover() }()
		v.frameLbl.Configure(Image(NewPhoto(Data(pngBytes))))
	}()
}

// encodePNG converts an image.Image to PNG bytes. On error it returns an empty slice.
func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
