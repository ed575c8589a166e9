package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds minimal runtime configuration. Extend as needed.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Remote analysis service
	ServiceURL     string        `env:"SERVICE_URL" envDefault:"http://localhost:8000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Durable client store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"memory"` // "memory", "redis", or "postgres"
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	DBURL         string `env:"DB_URL"`

	// Analysis provider
	AnalysisProvider string `env:"ANALYSIS_PROVIDER" envDefault:"http"` // "http" (remote service) or "openai" (direct, dev only)
	OpenAIKey        string `env:"OPENAI_API_KEY"`
	LLMModel         string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	// Localization
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// Optional NATS bridge for out-of-process session observers
	EventsURL string `env:"EVENTS_URL"`

	// Devserver
	Port int `env:"PORT" envDefault:"8000"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
