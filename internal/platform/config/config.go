// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles client-core settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (backend client, registrar) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Every timing knob the session and device layers depend on lives here so that
host applications (and tests) can tune them without code changes.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Aktiv client core.
type Config struct {

	// Backend API
	APIBaseURL     string        `env:"API_BASE_URL,required"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Profile revalidation: total attempts and the pauses between them.
	ProfileRetryAttempts int             `env:"PROFILE_RETRY_ATTEMPTS" envDefault:"3"`
	ProfileRetryBackoff  []time.Duration `env:"PROFILE_RETRY_BACKOFF"  envDefault:"1s,2s" envSeparator:","`

	// Device registration: delay before the late-auth reconciliation check.
	LateAuthCheckDelay time.Duration `env:"LATE_AUTH_CHECK_DELAY" envDefault:"1500ms"`

	// Notification refresh: minimum interval between token refresh attempts.
	NotifRefreshInterval time.Duration `env:"NOTIF_REFRESH_INTERVAL" envDefault:"24h"`

	// Key-Value Store (Redis) for hosted deployments. Optional: the embedded
	// in-memory store is used when unset.
	RedisURL string `env:"REDIS_URL"`
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

// IsDevelopment reports whether the client core is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the client core is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
