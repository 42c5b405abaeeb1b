package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the full application configuration, loaded from the
// environment. Defaults are tuned for local development.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP server
	ServerPort          int      `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSeconds  int      `envconfig:"SERVER_READ_TIMEOUT_SECONDS" default:"15"`
	WriteTimeoutSeconds int      `envconfig:"SERVER_WRITE_TIMEOUT_SECONDS" default:"120"`
	CORSAllowedOrigins  []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Logging
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// AI (OpenAI-compatible endpoint)
	AIAPIKey         string        `envconfig:"AI_API_KEY"`
	AIBaseURL        string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel          string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AITimeout        time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	AIMaxAttempts    int           `envconfig:"AI_MAX_ATTEMPTS" default:"3"`
	AIBaseRetryDelay time.Duration `envconfig:"AI_BASE_RETRY_DELAY" default:"1s"`
	AIMaxTokens      int           `envconfig:"AI_MAX_TOKENS" default:"1400"`

	// Update extraction. MaxRequeryAttempts bounds the corrective requery
	// loop for a single malformed update line; past the bound the line is
	// dropped and the rest of the batch still applies.
	MaxRequeryAttempts  int `envconfig:"EXTRACTOR_MAX_REQUERY_ATTEMPTS" default:"30"`
	RandomEventMaxRolls int `envconfig:"ENGINE_RANDOM_EVENT_MAX_ROLLS" default:"15"`
	MaxAliveNPCs        int `envconfig:"ENGINE_MAX_ALIVE_NPCS" default:"5"`

	// Persistence
	SavesDir   string `envconfig:"SAVES_DIR" default:"saved_games"`
	ExportsDir string `envconfig:"EXPORTS_DIR" default:"exported_games"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY is required")
	}
	return &cfg, nil
}
