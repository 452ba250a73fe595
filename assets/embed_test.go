package assets

import "testing"

func TestDemoAnalysis_DecodesSorted(t *testing.T) {
	res, err := DemoAnalysis()
	if err != nil {
		t.Fatalf("demo analysis: %v", err)
	}
	if len(res.Keyframes) < 2 {
		t.Fatalf("expected multiple keyframes, got %d", len(res.Keyframes))
	}
	for i := 1; i < len(res.Keyframes); i++ {
		if res.Keyframes[i].TimeOffset < res.Keyframes[i-1].TimeOffset {
			t.Fatalf("keyframes out of order at %d", i)
		}
	}
	if res.Summary == "" || res.Formation == "" {
		t.Fatalf("demo metadata incomplete: %+v", res)
	}
}
