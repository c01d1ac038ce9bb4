// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/lexicon/pkg/pagination"
)

// # Configuration Schema

// Config holds all runtime configuration for the Lexicon API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis): token revocation and seeding checkpoints
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for access token signing
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH,required"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"12h"`

	// Listing bounds
	PageSizeDefault int `env:"PAGE_SIZE_DEFAULT" envDefault:"50"`
	PageSizeMax     int `env:"PAGE_SIZE_MAX"     envDefault:"200"`

	// Tracing (OTLP/HTTP). Empty disables export.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Cross-Origin Resource Sharing, comma separated origin suffixes
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.PageSizeDefault <= 0 || cfg.PageSizeMax < cfg.PageSizeDefault {
		return nil, fmt.Errorf("config: invalid page sizes (default=%d, max=%d)", cfg.PageSizeDefault, cfg.PageSizeMax)
	}

	return cfg, nil
}

// SeedConfig holds the settings of the bulk seeder binary. It needs no
// signing keys, and Redis is optional there: without it checkpoints live in
// memory and a resumed run starts over.
type SeedConfig struct {
	Environment   string `env:"ENVIRONMENT"    envDefault:"development"`
	Debug         bool   `env:"DEBUG"          envDefault:"false"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	RedisURL      string `env:"REDIS_URL"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Rows per batch, and so per checkpoint.
	SeedBatchSize int `env:"SEED_BATCH_SIZE" envDefault:"5000"`
	SeedWorkers   int `env:"SEED_WORKERS"    envDefault:"4"`
}

// LoadSeed parses environment variables into a [SeedConfig].
func LoadSeed() (*SeedConfig, error) {
	cfg := &SeedConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.SeedBatchSize <= 0 {
		return nil, fmt.Errorf("config: SEED_BATCH_SIZE must be positive, got %d", cfg.SeedBatchSize)
	}
	if cfg.SeedWorkers <= 0 {
		return nil, fmt.Errorf("config: SEED_WORKERS must be positive, got %d", cfg.SeedWorkers)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// PageLimits returns the list-endpoint page size bounds.
func (c *Config) PageLimits() pagination.Limits {
	return pagination.Limits{Default: c.PageSizeDefault, Max: c.PageSizeMax}
}

// AllowedOrigins splits EXTRA_ORIGINS into trimmed origin suffixes.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
