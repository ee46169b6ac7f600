package infra

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"sportivo"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"sportivo"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"sportivo"`
	PGMaxConns  int32  `env:"PG_MAX_CONNS" envDefault:"20"`
	PGMinConns  int32  `env:"PG_MIN_CONNS" envDefault:"2"`

	// Sessions
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"336h"` // 14 days

	// Server
	APIPort int `env:"API_PORT" envDefault:"8000"`

	// Kafka
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure configuration that must not run in production.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.DatabaseURL == "" && c.PGPassword == "sportivo" {
		return fmt.Errorf("PGPASSWORD is set to the insecure default; set a real password or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL %s is too short; minimum 1 minute", c.SessionTTL)
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
