package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DatabaseAdapter string `env:"DATABASE_ADAPTER" envDefault:"sqlite"`
	DatabasePath    string `env:"DATABASE_PATH" envDefault:"database.db"`
	DatabaseURL     string `env:"DATABASE_URL"`
	// Empty picks the dialect-matching directory for the adapter.
	MigrationsPath string `env:"MIGRATIONS_PATH"`

	JWTSecret    string        `env:"JWT_SECRET,required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`

	TOTPIssuer string `env:"TOTP_ISSUER" envDefault:"Task Management"`
	TOTPSkew   int    `env:"TOTP_SKEW" envDefault:"1"`

	FrontendOrigin  string        `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:5173"`
	ExchangeCodeTTL time.Duration `env:"EXCHANGE_CODE_TTL" envDefault:"5m"`

	// Empty means the in-process code store.
	RedisAddr string `env:"REDIS_ADDR"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL" envDefault:"http://localhost:8080/auth/google/callback"`

	RateLimitEnabled bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	MetricsPort      string `env:"METRICS_PORT" envDefault:"9090"`
	OTLPEndpoint     string `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()

	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return &cfg, nil
}

// MigrationsDir resolves the migrations directory for the configured
// adapter. The sqlite and postgres DDL live in separate trees, so a single
// shared default would feed postgres the sqlite schema.
func (c *Config) MigrationsDir() string {
	if c.MigrationsPath != "" {
		return c.MigrationsPath
	}

	if c.DatabaseAdapter == "postgres" {
		return "infra/migrations"
	}

	return "db/migrations"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) GoogleOAuthConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
