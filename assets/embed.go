package assets

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/soocke/tactic-replay-go/domain/replay"
)

// DemoAnalysisJSON contains a canned analysis result so the app can enter
// playback without network access or a configured API key.
//
//go:embed demo_analysis.json
var DemoAnalysisJSON []byte

// DemoAnalysis decodes the embedded analysis with keyframes sorted ascending
// by time offset.
func DemoAnalysis() (*replay.AnalysisResult, error) {
	if len(DemoAnalysisJSON) == 0 {
		return nil, fmt.Errorf("embedded demo_analysis.json is empty")
	}
	var result replay.AnalysisResult
	if err := json.Unmarshal(DemoAnalysisJSON, &result); err != nil {
		return nil, err
	}
	if len(result.Keyframes) == 0 {
		return nil, fmt.Errorf("embedded demo analysis has no keyframes")
	}
	sort.SliceStable(result.Keyframes, func(i, j int) bool {
		return result.Keyframes[i].TimeOffset < result.Keyframes[j].TimeOffset
	})
	return &result, nil
}
