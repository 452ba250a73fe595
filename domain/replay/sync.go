package replay

import "math"

// DefaultDriftTolerance is the drift, in seconds, beyond which the media
// clock is snapped back to the authoritative time.
const DefaultDriftTolerance = 0.5

// SyncBridge reconciles an external media clock toward the authoritative
// playback time. Reconciliation is one-directional: the media element is
// corrected, never the authoritative clock.
type SyncBridge struct {
	tolerance float64
}

// NewSyncBridge returns a bridge with the given drift tolerance in seconds.
// Non-positive tolerances fall back to DefaultDriftTolerance.
func NewSyncBridge(tolerance float64) *SyncBridge {
	if tolerance <= 0 {
		tolerance = DefaultDriftTolerance
	}
	return &SyncBridge{tolerance: tolerance}
}

// Reconcile compares the media clock against the authoritative time. When the
// drift exceeds the tolerance it returns the seek target (the authoritative
// time) and true; otherwise it returns false and the media element is left to
// advance on its own. The correction is a hard seek, not a gradual nudge.
func (b *SyncBridge) Reconcile(authoritative, media float64) (float64, bool) {
	tol := DefaultDriftTolerance
	if b != nil {
		tol = b.tolerance
	}
	if math.Abs(media-authoritative) > tol {
		return authoritative, true
	}
	return 0, false
}
