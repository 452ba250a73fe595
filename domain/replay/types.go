package replay

// Position is a point in field-relative units. Values may fall outside the
// nominal field bounds; upstream estimation is noisy and that is not an error.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Entity is one tracked player at a single sample instant. ID is a best-effort
// label assigned per sample by the inference step: it is not guaranteed stable
// or unique across keyframes and may appear, vanish or be reused between
// consecutive samples.
type Entity struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Keyframe is a ground-truth snapshot of the whole scene at one instant.
// Team slices preserve upstream insertion order.
type Keyframe struct {
	TimeOffset float64  `json:"timeOffset"`
	Ball       Position `json:"ball"`
	TeamA      []Entity `json:"teamA"`
	TeamB      []Entity `json:"teamB"`
}

// AnalysisResult is the full outcome of one inference call. Keyframes are
// sorted ascending by TimeOffset once, immediately after decode; every
// consumer (the interpolator included) relies on that order and does not
// re-sort.
type AnalysisResult struct {
	Summary   string     `json:"summary"`
	Formation string     `json:"formation"`
	PlayType  string     `json:"playType"`
	Keyframes []Keyframe `json:"keyframes"`
}

// Duration returns the timestamp of the last keyframe, or 0 when there are
// no keyframes.
func (r *AnalysisResult) Duration() float64 {
	if r == nil || len(r.Keyframes) == 0 {
		return 0
	}
	return r.Keyframes[len(r.Keyframes)-1].TimeOffset
}

// Frame is a synthesized scene state. It has the shape of a Keyframe but
// TimeOffset is the query time and the positions are computed, not sampled.
type Frame struct {
	TimeOffset float64
	Ball       Position
	TeamA      []Entity
	TeamB      []Entity
}

// FrameSource produces the frame to render for a given time, or nil when no
// analysis is bound.
type FrameSource interface {
	FrameAt(time float64) *Frame
}
