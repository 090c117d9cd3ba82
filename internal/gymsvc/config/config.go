// Package config holds the gym service settings, read once from the environment at start-up
// and passed to every component that needs them.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port     string `env:"GYM_SERVICE_PORT" envDefault:"8080"`
	Store    string `env:"GYM_STORE" envDefault:"mongo"`
	MongoURI string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/gym"`

	// Token signing
	JWTSecret string        `env:"JWT_SECRET_KEY,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// HTTP edge
	RateLimit   int      `env:"RATE_LIMIT" envDefault:"100"` // requests per minute per IP
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// NATS
	NatsEnabled bool   `env:"NATS_ENABLED" envDefault:"false"`
	NatsURL     string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NatsToken   string `env:"NATS_TOKEN"`

	LogDir   string `env:"LOG_DIR"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	PaymentRetentionMonths int `env:"PAYMENT_RETENTION_MONTHS" envDefault:"3"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Store != StoreMongo && c.Store != StoreMemory {
		errs = append(errs, fmt.Errorf("GYM_STORE must be %q or %q, got %q", StoreMongo, StoreMemory, c.Store))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY must not be empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT must be positive"))
	}
	if c.PaymentRetentionMonths <= 0 {
		errs = append(errs, errors.New("PAYMENT_RETENTION_MONTHS must be positive"))
	}
	return errors.Join(errs...)
}
