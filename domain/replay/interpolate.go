package replay

// Interpolate synthesizes the scene state at an arbitrary time from a sorted
// keyframe sequence. It returns nil when the sequence is empty. Times at or
// beyond either end of the sampled range return the boundary keyframe
// verbatim; there is no extrapolation.
//
// The function is pure: identical inputs always yield identical output.
func Interpolate(time float64, keyframes []Keyframe) *Frame {
	if len(keyframes) == 0 {
		return nil
	}
	first := keyframes[0]
	last := keyframes[len(keyframes)-1]
	if time <= first.TimeOffset {
		return frameFrom(time, first)
	}
	if time >= last.TimeOffset {
		return frameFrom(time, last)
	}

	// First index whose timestamp strictly exceeds the query; the bracket
	// [next-1, next] is unique because the input is sorted.
	next := 1
	for next < len(keyframes) && keyframes[next].TimeOffset <= time {
		next++
	}
	prev := keyframes[next-1]
	succ := keyframes[next]

	span := succ.TimeOffset - prev.TimeOffset
	t := 0.0
	if span > 0 {
		t = (time - prev.TimeOffset) / span
	}

	return &Frame{
		TimeOffset: time,
		Ball: Position{
			X: lerp(prev.Ball.X, succ.Ball.X, t),
			Y: lerp(prev.Ball.Y, succ.Ball.Y, t),
		},
		TeamA: interpolateTeam(prev.TeamA, succ.TeamA, t),
		TeamB: interpolateTeam(prev.TeamB, succ.TeamB, t),
	}
}

// interpolateTeam blends entity positions by ID between two samples of the
// same team. IDs missing from the later sample freeze at their earlier
// position; IDs present only in the later sample stay invisible until the
// query time reaches that sample.
func interpolateTeam(prev, next []Entity, t float64) []Entity {
	if len(prev) == 0 {
		return nil
	}
	byID := make(map[string]Entity, len(next))
	for _, e := range next {
		if _, dup := byID[e.ID]; !dup {
			byID[e.ID] = e
		}
	}
	out := make([]Entity, 0, len(prev))
	for _, e := range prev {
		if match, ok := byID[e.ID]; ok {
			out = append(out, Entity{
				ID: e.ID,
				X:  lerp(e.X, match.X, t),
				Y:  lerp(e.Y, match.Y, t),
			})
			continue
		}
		out = append(out, e)
	}
	return out
}

func frameFrom(time float64, k Keyframe) *Frame {
	return &Frame{
		TimeOffset: time,
		Ball:       k.Ball,
		TeamA:      copyEntities(k.TeamA),
		TeamB:      copyEntities(k.TeamB),
	}
}

func copyEntities(src []Entity) []Entity {
	if len(src) == 0 {
		return nil
	}
	out := make([]Entity, len(src))
	copy(out, src)
	return out
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
