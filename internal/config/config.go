// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the tracker reads from the environment.
type Config struct {
	// DBPath is the SQLite database file. Defaults to ~/.zeit/zeit.db.
	DBPath string `env:"ZEIT_DB"`

	// Timezone is the display timezone for month bucketing and timestamps
	// shown to the user. Storage stays UTC regardless.
	Timezone string `env:"ZEIT_TZ" envDefault:"Europe/Zurich"`

	// AllowedUsers restricts login names. Empty admits anyone.
	AllowedUsers []string `env:"ZEIT_USERS" envSeparator:","`

	// LogLimit caps logbook queries.
	LogLimit int `env:"ZEIT_LOG_LIMIT" envDefault:"500"`
}

// Load parses the environment and fills in defaults that need the host
// (home directory) to resolve.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".zeit", "zeit.db")
	}

	return &cfg, nil
}

// Location resolves the configured display timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
