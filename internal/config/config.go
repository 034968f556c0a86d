package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// GeminiAPIKey is optional: when empty the remote tier is skipped
	// entirely and every completion runs against the local model.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	RemoteModel  string `envconfig:"REMOTE_MODEL" default:"gemini-1.5-flash-latest"`
	LocalModel   string `envconfig:"LOCAL_MODEL" default:"gemma:2b"`
	OllamaBinary string `envconfig:"OLLAMA_BINARY" default:"ollama"`

	RemoteTimeout time.Duration `envconfig:"REMOTE_TIMEOUT" default:"25s"`
	LocalTimeout  time.Duration `envconfig:"LOCAL_TIMEOUT" default:"60s"`

	ProbeAddr    string        `envconfig:"PROBE_ADDR" default:"1.1.1.1:80"`
	ProbeTimeout time.Duration `envconfig:"PROBE_TIMEOUT" default:"1s"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:"wayfarer.db"`
	DataDir     string `envconfig:"DATA_DIR" default:"data"`

	HTTPPort  string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	GNewsToken string `envconfig:"GNEWS_TOKEN" default:"demo"`
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment config: %w", err)
	}

	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, running in local-only mode")
	}

	return cfg, nil
}
