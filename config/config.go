// Package config loads environment-driven configuration for the service.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the composition root needs to wire the service.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY,required"`

	ChatModel  string `env:"CHAT_MODEL" envDefault:"gemini-2.5-flash"`
	ImageModel string `env:"IMAGE_MODEL" envDefault:"imagen-4.0-generate-001"`
	VideoModel string `env:"VIDEO_MODEL" envDefault:"veo-3.1-generate-preview"`

	// StoreType selects the history backend: "sqlite" or "postgres".
	StoreType string `env:"STORE_TYPE" envDefault:"sqlite"`
	// StoreDSN is the sqlite file path or the postgres DSN.
	StoreDSN string `env:"STORE_DSN" envDefault:"genchat.sqlite"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// VideoDir is where downloaded video files are written. Entries older
	// than VideoTTL are purged on JanitorSpec.
	VideoDir    string        `env:"VIDEO_DIR" envDefault:"videos"`
	VideoTTL    time.Duration `env:"VIDEO_TTL" envDefault:"24h"`
	JanitorSpec string        `env:"JANITOR_SPEC" envDefault:"@hourly"`

	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"10s"`
}

// Load reads .env if present, then parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.StoreType != "sqlite" && cfg.StoreType != "postgres" {
		return nil, fmt.Errorf("unsupported store type: %s", cfg.StoreType)
	}

	return cfg, nil
}
