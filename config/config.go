package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for playback and analysis behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Playback parameters
	TickMillis        int     `json:"tick_millis"`
	DefaultRate       float64 `json:"default_rate"`
	DriftToleranceSec float64 `json:"drift_tolerance_sec"`

	// Upload limits
	MaxUploadBytes int64 `json:"max_upload_bytes"`

	// Inference endpoint
	Endpoint       string `json:"endpoint"`
	Model          string `json:"model"`
	APIKeyEnv      string `json:"api_key_env"`
	RequestTimeout int    `json:"request_timeout_seconds"`

	// Field dimensions in field-relative units (football pitch)
	FieldWidth  float64 `json:"field_width"`
	FieldHeight float64 `json:"field_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		TickMillis:        33,
		DefaultRate:       1.0,
		DriftToleranceSec: 0.5,
		MaxUploadBytes:    20 << 20,
		Endpoint:          "https://generativelanguage.googleapis.com/v1beta/models",
		Model:             "gemini-2.5-flash",
		APIKeyEnv:         "GEMINI_API_KEY",
		RequestTimeout:    120,
		FieldWidth:        105,
		FieldHeight:       68,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.TickMillis <= 0 {
		c.TickMillis = 33
	}
	if c.DefaultRate <= 0 {
		c.DefaultRate = 1.0
	}
	if c.DriftToleranceSec <= 0 {
		c.DriftToleranceSec = 0.5
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 20 << 20
	}
	if c.Endpoint == "" {
		c.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = "GEMINI_API_KEY"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 120
	}
	if c.FieldWidth <= 0 {
		c.FieldWidth = 105
	}
	if c.FieldHeight <= 0 {
		c.FieldHeight = 68
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
