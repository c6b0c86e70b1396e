package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// APIBaseURL is the remote backend every gateway call targets.
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8000/api/v1"`

	// GatewayTimeoutSeconds bounds every outbound backend call.
	GatewayTimeoutSeconds int `env:"GATEWAY_TIMEOUT_SECONDS, default=30"`

	Store StoreConfig
	Redis RedisConfig
}

// StoreConfig selects and parameterises the credential store.
type StoreConfig struct {
	// Kind is "file" or "redis".
	Kind string `env:"CREDENTIAL_STORE, default=file"`
	// StateDir holds the credential file for the file store.
	StateDir string `env:"STATE_DIR, default=.console"`
	// Secret, when set, seals the credential file at rest.
	Secret string `env:"STORAGE_SECRET"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Store.Kind != "file" && cfg.Store.Kind != "redis" {
		return nil, fmt.Errorf("config: unknown credential store %q", cfg.Store.Kind)
	}
	return &cfg, nil
}
