package replay

import (
	"math"
	"reflect"
	"testing"
)

func twoPointSequence() []Keyframe {
	return []Keyframe{
		{TimeOffset: 0, Ball: Position{X: 0, Y: 0}},
		{TimeOffset: 2, Ball: Position{X: 10, Y: 0}},
	}
}

func TestInterpolate_EmptySequenceReturnsNil(t *testing.T) {
	if f := Interpolate(1.0, nil); f != nil {
		t.Fatalf("expected nil frame for empty sequence, got %+v", f)
	}
	if f := Interpolate(0, []Keyframe{}); f != nil {
		t.Fatalf("expected nil frame for empty slice, got %+v", f)
	}
}

func TestInterpolate_MidpointBall(t *testing.T) {
	f := Interpolate(1, twoPointSequence())
	if f == nil {
		t.Fatalf("nil frame")
	}
	if f.Ball.X != 5 || f.Ball.Y != 0 {
		t.Fatalf("expected ball (5,0), got (%v,%v)", f.Ball.X, f.Ball.Y)
	}
	if f.TimeOffset != 1 {
		t.Fatalf("frame time should echo query, got %v", f.TimeOffset)
	}
}

func TestInterpolate_ClampsBeforeFirstAndAfterLast(t *testing.T) {
	ks := twoPointSequence()
	before := Interpolate(-1, ks)
	atStart := Interpolate(0, ks)
	if before.Ball != atStart.Ball {
		t.Fatalf("pre-range query not clamped: %+v vs %+v", before.Ball, atStart.Ball)
	}
	after := Interpolate(5, ks)
	atEnd := Interpolate(2, ks)
	if after.Ball != atEnd.Ball {
		t.Fatalf("post-range query not clamped: %+v vs %+v", after.Ball, atEnd.Ball)
	}
	if after.Ball.X != 10 {
		t.Fatalf("expected last ball position, got %v", after.Ball.X)
	}
}

func TestInterpolate_BoundaryContinuity(t *testing.T) {
	ks := []Keyframe{
		{TimeOffset: 1, Ball: Position{X: 2, Y: 3}},
		{TimeOffset: 4, Ball: Position{X: 8, Y: 9}},
		{TimeOffset: 6, Ball: Position{X: 1, Y: 1}},
	}
	if f := Interpolate(4, ks); f.Ball != ks[1].Ball {
		t.Fatalf("ball at exact sample time should match sample, got %+v", f.Ball)
	}
	if f := Interpolate(1, ks); f.Ball != ks[0].Ball {
		t.Fatalf("ball at first timestamp should match first sample, got %+v", f.Ball)
	}
}

func TestInterpolate_Idempotent(t *testing.T) {
	ks := []Keyframe{
		{TimeOffset: 0, Ball: Position{X: 0, Y: 0}, TeamA: []Entity{{ID: "p1", X: 1, Y: 1}}},
		{TimeOffset: 3, Ball: Position{X: 6, Y: 3}, TeamA: []Entity{{ID: "p1", X: 4, Y: 7}}},
	}
	a := Interpolate(1.7, ks)
	b := Interpolate(1.7, ks)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated calls diverged: %+v vs %+v", a, b)
	}
}

func TestInterpolate_MatchingIDsLerp(t *testing.T) {
	ks := []Keyframe{
		{TimeOffset: 0, TeamA: []Entity{{ID: "p1", X: 0, Y: 0}, {ID: "p2", X: 10, Y: 10}}},
		{TimeOffset: 2, TeamA: []Entity{{ID: "p2", X: 20, Y: 10}, {ID: "p1", X: 4, Y: 2}}},
	}
	f := Interpolate(1, ks)
	if len(f.TeamA) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(f.TeamA))
	}
	if f.TeamA[0].ID != "p1" || f.TeamA[0].X != 2 || f.TeamA[0].Y != 1 {
		t.Fatalf("p1 midpoint wrong: %+v", f.TeamA[0])
	}
	if f.TeamA[1].ID != "p2" || f.TeamA[1].X != 15 {
		t.Fatalf("p2 midpoint wrong: %+v", f.TeamA[1])
	}
}

func TestInterpolate_MissingIDFreezesInPlace(t *testing.T) {
	ks := []Keyframe{
		{TimeOffset: 0, TeamB: []Entity{{ID: "gone", X: 3, Y: 4}}},
		{TimeOffset: 2, TeamB: []Entity{{ID: "other", X: 9, Y: 9}}},
	}
	for _, q := range []float64{0.25, 0.5, 1.0, 1.5, 1.99} {
		f := Interpolate(q, ks)
		if len(f.TeamB) != 1 {
			t.Fatalf("t=%v: expected frozen entity, got %d entities", q, len(f.TeamB))
		}
		e := f.TeamB[0]
		if e.ID != "gone" || e.X != 3 || e.Y != 4 {
			t.Fatalf("t=%v: entity moved or mutated: %+v", q, e)
		}
		if math.IsNaN(e.X) || math.IsNaN(e.Y) {
			t.Fatalf("t=%v: NaN position", q)
		}
	}
}

func TestInterpolate_NewIDsInvisibleUntilNextSample(t *testing.T) {
	ks := []Keyframe{
		{TimeOffset: 0, TeamA: []Entity{{ID: "a", X: 0, Y: 0}}},
		{TimeOffset: 2, TeamA: []Entity{{ID: "a", X: 2, Y: 0}, {ID: "late", X: 5, Y: 5}}},
	}
	mid := Interpolate(1, ks)
	if len(mid.TeamA) != 1 {
		t.Fatalf("entity appearing only in next sample leaked into bracket: %+v", mid.TeamA)
	}
	at := Interpolate(2, ks)
	if len(at.TeamA) != 2 {
		t.Fatalf("entity should be visible once its sample time is reached: %+v", at.TeamA)
	}
}

func TestInterpolate_ZeroDurationBracket(t *testing.T) {
	ks := []Keyframe{
		{TimeOffset: 0, Ball: Position{X: 0, Y: 0}},
		{TimeOffset: 1, Ball: Position{X: 4, Y: 4}},
		{TimeOffset: 1, Ball: Position{X: 8, Y: 8}},
		{TimeOffset: 3, Ball: Position{X: 9, Y: 9}},
	}
	// Any query inside a duplicate-timestamp bracket must resolve with t=0
	// rather than dividing by zero.
	f := Interpolate(1.0, ks)
	if math.IsNaN(f.Ball.X) || math.IsNaN(f.Ball.Y) {
		t.Fatalf("zero-duration bracket produced NaN: %+v", f.Ball)
	}
	g := Interpolate(2.0, ks)
	if math.IsNaN(g.Ball.X) {
		t.Fatalf("NaN after duplicate timestamps: %+v", g.Ball)
	}
}

func TestInterpolate_DoesNotMutateInput(t *testing.T) {
	ks := []Keyframe{
		{TimeOffset: 0, TeamA: []Entity{{ID: "a", X: 1, Y: 1}}},
		{TimeOffset: 2, TeamA: []Entity{{ID: "a", X: 3, Y: 3}}},
	}
	f := Interpolate(0, ks)
	f.TeamA[0].X = 99
	if ks[0].TeamA[0].X != 1 {
		t.Fatalf("clamped frame aliases keyframe storage")
	}
}
