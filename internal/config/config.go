// Package config provides configuration for the stylist gateway.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ModeMock swaps both collaborators for offline mocks.
const ModeMock = "MOCK"

// Config holds the gateway configuration.
type Config struct {
	// Server settings
	HTTPPort         int      `env:"PORT" envDefault:"3000"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	// Vision collaborator
	VisionAPIKey    string `env:"VISION_API_KEY"`
	VisionEndpoint  string `env:"VISION_ENDPOINT"`
	VisionTimeoutMs int    `env:"VISION_TIMEOUT_MS" envDefault:"0"`

	// Generation collaborator
	GenAIKey       string `env:"GOOGLE_GENAI_KEY"`
	GenAIModel     string `env:"GENAI_MODEL" envDefault:"gemini-1.5-flash"`
	GenAIBaseURL   string `env:"GENAI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	GenAITimeoutMs int    `env:"GENAI_TIMEOUT_MS" envDefault:"0"`

	// Uploads
	UploadDir             string `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadMaxBytes        int64  `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
	UploadSweepIntervalMs int    `env:"UPLOAD_SWEEP_INTERVAL_MS" envDefault:"60000"`
	UploadMaxAgeMs        int    `env:"UPLOAD_MAX_AGE_MS" envDefault:"600000"`

	// Call-event log; empty disables it.
	EventDatabaseURL string `env:"EVENT_DATABASE_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Mode string `env:"STYLIST_MODE"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks upload settings and, outside mock mode, collaborator secrets.
func (c *Config) Validate() error {
	if c.UploadMaxAgeMs <= 0 {
		return fmt.Errorf("UPLOAD_MAX_AGE_MS must be positive, got %d", c.UploadMaxAgeMs)
	}
	if c.IsMock() {
		return nil
	}
	var missing []string
	if c.VisionAPIKey == "" {
		missing = append(missing, "VISION_API_KEY")
	}
	if c.VisionEndpoint == "" {
		missing = append(missing, "VISION_ENDPOINT")
	}
	if c.GenAIKey == "" {
		missing = append(missing, "GOOGLE_GENAI_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %v", missing)
	}
	return nil
}

// IsMock reports whether collaborators should be mocked.
func (c *Config) IsMock() bool {
	return c.Mode == ModeMock
}

// VisionTimeout is the outbound timeout for the vision call; zero means none.
func (c *Config) VisionTimeout() time.Duration {
	return time.Duration(c.VisionTimeoutMs) * time.Millisecond
}

// GenAITimeout is the outbound timeout for the generation call; zero means none.
func (c *Config) GenAITimeout() time.Duration {
	return time.Duration(c.GenAITimeoutMs) * time.Millisecond
}

// UploadSweepInterval is how often stale uploads are swept.
func (c *Config) UploadSweepInterval() time.Duration {
	return time.Duration(c.UploadSweepIntervalMs) * time.Millisecond
}

// UploadMaxAge is the age after which a leftover upload is removed by the sweeper.
func (c *Config) UploadMaxAge() time.Duration {
	return time.Duration(c.UploadMaxAgeMs) * time.Millisecond
}
