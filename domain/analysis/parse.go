package analysis

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/soocke/tactic-replay-go/domain/replay"
)

// resultSchema constrains the model's structured output to the analysis
// result shape. Kept as raw JSON; the endpoint validates it server-side.
var resultSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "summary": {"type": "STRING"},
    "formation": {"type": "STRING"},
    "playType": {"type": "STRING"},
    "keyframes": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "timeOffset": {"type": "NUMBER"},
          "ball": {
            "type": "OBJECT",
            "properties": {"x": {"type": "NUMBER"}, "y": {"type": "NUMBER"}},
            "required": ["x", "y"]
          },
          "teamA": {
            "type": "ARRAY",
            "items": {
              "type": "OBJECT",
              "properties": {"id": {"type": "STRING"}, "x": {"type": "NUMBER"}, "y": {"type": "NUMBER"}},
              "required": ["id", "x", "y"]
            }
          },
          "teamB": {
            "type": "ARRAY",
            "items": {
              "type": "OBJECT",
              "properties": {"id": {"type": "STRING"}, "x": {"type": "NUMBER"}, "y": {"type": "NUMBER"}},
              "required": ["id", "x", "y"]
            }
          }
        },
        "required": ["timeOffset", "ball", "teamA", "teamB"]
      }
    }
  },
  "required": ["summary", "formation", "playType", "keyframes"]
}`)

// decodeResult parses the model's structured text part into an analysis
// result and normalizes it. Keyframes are sorted ascending by time offset
// here, exactly once; downstream consumers rely on that order.
func decodeResult(raw []byte) (*replay.AnalysisResult, error) {
	var result replay.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("malformed analysis payload: %w", err)
	}
	if len(result.Keyframes) == 0 {
		return nil, ErrEmptyResult
	}
	normalize(&result)
	return &result, nil
}

// normalize clamps negative time offsets to 0 and sorts keyframes ascending.
// The sort is stable so same-timestamp samples keep their upstream order.
func normalize(result *replay.AnalysisResult) {
	for i := range result.Keyframes {
		if result.Keyframes[i].TimeOffset < 0 {
			result.Keyframes[i].TimeOffset = 0
		}
	}
	sort.SliceStable(result.Keyframes, func(i, j int) bool {
		return result.Keyframes[i].TimeOffset < result.Keyframes[j].TimeOffset
	})
}
