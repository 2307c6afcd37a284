// Package config loads process settings from the environment. Command-line
// flags are applied on top by the caller.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings of one dungeonrun process.
type Config struct {
	// Seed for the random source. Zero picks a time-based seed.
	Seed int64 `env:"DUNGEONRUN_SEED" envDefault:"0"`
	// Content is a directory of .lua files replacing the embedded dungeon.
	Content string `env:"DUNGEONRUN_CONTENT"`
	Plain   bool   `env:"DUNGEONRUN_PLAIN" envDefault:"false"`
	Trace   bool   `env:"DUNGEONRUN_TRACE" envDefault:"false"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
