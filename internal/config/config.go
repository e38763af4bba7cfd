package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"taskboard"`
	AppEnv  string `env:"APP_ENV"  envDefault:"development"`
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DB  DBConfig
	JWT JWTConfig
}

type DBConfig struct {
	Host     string `env:"DB_HOST"     envDefault:"localhost"`
	Port     string `env:"DB_PORT"     envDefault:"5432"`
	User     string `env:"DB_USER"     envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"     envDefault:"taskboard"`
	SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
}

// JWTConfig holds the signing material and token shape for the whole
// process. It is parsed once at startup and injected into the token
// service and auth middleware; rotating the secret invalidates every
// outstanding token.
type JWTConfig struct {
	Secret     string `env:"JWT_SECRET"`
	Issuer     string `env:"JWT_ISSUER"      envDefault:"taskboard"`
	Audience   string `env:"JWT_AUDIENCE"    envDefault:"taskboard-api"`
	TTLMinutes int    `env:"JWT_TTL_MINUTES" envDefault:"60"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWT.TTLMinutes <= 0 {
		return nil, fmt.Errorf("JWT_TTL_MINUTES must be positive, got %d", cfg.JWT.TTLMinutes)
	}

	return &cfg, nil
}
