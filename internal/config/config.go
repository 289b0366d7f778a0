// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the manager binary reads.
type Config struct {
	DBDriver         string        `env:"SEASON_DB_DRIVER" envDefault:"sqlite"`
	DatabaseURL      string        `env:"SEASON_DATABASE_URL" envDefault:"file:season.db"`
	HTTPAddr         string        `env:"SEASON_HTTP_ADDR" envDefault:":8080"`
	CORSAllowOrigins []string      `env:"SEASON_CORS_ALLOW_ORIGINS" envSeparator:","`
	RateLimit        int           `env:"SEASON_RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateWindow       time.Duration `env:"SEASON_RATE_LIMIT_WINDOW" envDefault:"1m"`
	Seed             int64         `env:"SEASON_SEED" envDefault:"0"`
	SaveSlot         string        `env:"SEASON_SAVE_SLOT" envDefault:"auto"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case "sqlite", "postgres", "pgx":
	default:
		errs = append(errs, fmt.Errorf("SEASON_DB_DRIVER: unsupported driver %q", c.DBDriver))
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("SEASON_DATABASE_URL is required"))
	}
	if strings.TrimSpace(c.SaveSlot) == "" {
		errs = append(errs, errors.New("SEASON_SAVE_SLOT must not be empty"))
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		errs = append(errs, errors.New("rate limit requests and window must be positive"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level maps LOG_LEVEL to a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
