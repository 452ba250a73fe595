package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/soocke/tactic-replay-go/config"
	"github.com/soocke/tactic-replay-go/domain/replay"
)

// Boundary errors classified for the UI layer.
var (
	ErrMissingAPIKey   = errors.New("inference API key is not configured")
	ErrTooLarge        = errors.New("clip exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported clip content type")
	ErrEmptyResult     = errors.New("model returned no keyframes")
)

const analysisPrompt = `Analyze this sports video clip. Identify the ball and the players of both
teams at regularly sampled timestamps. Return a play summary, the observed
formation, the play type, and the keyframes with field-relative positions
on a 105x68 pitch. Player ids are best-effort labels per sample.`

// Analyzer turns raw video bytes into a structured analysis result.
// Implementations must return keyframes sorted ascending by time offset.
type Analyzer interface {
	AnalyzeVideo(ctx context.Context, data []byte, mimeType string) (*replay.AnalysisResult, error)
}

// Client calls a Gemini-style multimodal generateContent endpoint with the
// clip inlined as base64 and a JSON response schema. All failures are wrapped
// into human-readable errors at this boundary; callers never see a partial
// result.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	keyEnv     string
	logger     *slog.Logger
}

// NewClient builds a client from config. The API key is read from the
// configured environment variable at call time, so a key exported after
// startup is picked up.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	timeout := 120 * time.Second
	endpoint := ""
	model := ""
	keyEnv := ""
	if cfg != nil {
		if cfg.RequestTimeout > 0 {
			timeout = time.Duration(cfg.RequestTimeout) * time.Second
		}
		endpoint = cfg.Endpoint
		model = cfg.Model
		keyEnv = cfg.APIKeyEnv
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		model:      model,
		keyEnv:     keyEnv,
		logger:     logger,
	}
}

// ValidateClip checks a clip synchronously before any remote call. It rejects
// oversized payloads and non-video content types with descriptive errors.
func ValidateClip(data []byte, mimeType string, maxBytes int64) error {
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(data), maxBytes)
	}
	if !strings.HasPrefix(mimeType, "video/") {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
	}
	return nil
}

// request/response wire shapes for the generateContent call.
type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"response_mime_type"`
	ResponseSchema   json.RawMessage `json:"response_schema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AnalyzeVideo posts the clip for analysis and returns a normalized result
// with keyframes sorted ascending by time offset.
func (c *Client) AnalyzeVideo(ctx context.Context, data []byte, mimeType string) (*replay.AnalysisResult, error) {
	key := os.Getenv(c.keyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w (set %s)", ErrMissingAPIKey, c.keyEnv)
	}

	reqBody := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}},
				{Text: analysisPrompt},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   resultSchema,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode analysis request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", strings.TrimRight(c.endpoint, "/"), c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", key)

	if c.logger != nil {
		c.logger.Info("analysis request", "model", c.model, "clip_bytes", len(data), "mime", mimeType)
	}
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read analysis response: %w", err)
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if gr.Error != nil && gr.Error.Message != "" {
			return nil, fmt.Errorf("analysis rejected: %s", gr.Error.Message)
		}
		return nil, fmt.Errorf("analysis rejected: status %d", resp.StatusCode)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty candidate", ErrEmptyResult)
	}

	result, err := decodeResult([]byte(gr.Candidates[0].Content.Parts[0].Text))
	if err != nil {
		return nil, err
	}
	if c.logger != nil {
		c.logger.Info("analysis complete",
			"keyframes", len(result.Keyframes),
			"duration_sec", result.Duration(),
			"elapsed", time.Since(start),
		)
	}
	return result, nil
}

var _ Analyzer = (*Client)(nil)
