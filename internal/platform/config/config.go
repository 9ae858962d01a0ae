// Copyright (c) 2026 Touring. All rights reserved.
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
  - DI-Friendly: Passed to core components (DB pool, plugin manager, HTTP server) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the touring aggregator.
type Config struct {

	// Server settings (admin/health HTTP surface only — see internal/api)
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// NoMigrations skips running migrations at startup (assumes the schema
	// is already current, e.g. applied out-of-band in a shared environment).
	NoMigrations bool `env:"NO_MIGRATIONS" envDefault:"false"`

	// PluginsDir is the directory scanned for <stem>.wasm/.cwasm + <stem>.toml
	// plugin artifact sets (§4.D Discovery).
	PluginsDir string `env:"PLUGINS_DIR" envDefault:"./plugins"`

	// SearchTTLSecs is the cache lifetime for search results (§4.E).
	SearchTTLSecs int64 `env:"SEARCH_TTL_SECS" envDefault:"3600"`

	// PagesTTLSecs is the cache lifetime for chapter image listings (§4.E).
	PagesTTLSecs int64 `env:"PAGES_TTL_SECS" envDefault:"86400"`
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
