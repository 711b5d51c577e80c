package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Session  SessionConfig
	Redis    RedisConfig
}

type UpstreamConfig struct {
	BaseURL string `env:"UPSTREAM_BASE_URL, default=http://localhost:3001/api"`
	// Timeout applies uniformly to every upstream call.
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT, default=30s"`
}

type SessionConfig struct {
	// Secret seeds the HKDF derivation of the cookie-signing key.
	Secret     string        `env:"SESSION_SECRET"`
	TTL        time.Duration `env:"SESSION_TTL,    default=24h"`
	WizardTTL  time.Duration `env:"WIZARD_TTL,     default=30m"`
	CookieName string        `env:"SESSION_COOKIE, default=bourgeon_sid"`
}

type RedisConfig struct {
	// Addr empty means in-memory stores (local development).
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
