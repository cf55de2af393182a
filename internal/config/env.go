package config

import (
	"fmt"

	"github.com/caarlos0/env"
)

// Env holds settings read from the environment rather than the schedule file.
type Env struct {
	MaxAttempts       int    `env:"LINEUP_MAX_ATTEMPTS"        envDefault:"2000"`
	MaxSwapIterations int    `env:"LINEUP_MAX_SWAP_ITERATIONS" envDefault:"5000"`
	ProgressEvery     int    `env:"LINEUP_PROGRESS_EVERY"      envDefault:"10"`
	LogLevel          string `env:"LINEUP_LOG_LEVEL"           envDefault:"info"`
	LogFormat         string `env:"LINEUP_LOG_FORMAT"          envDefault:"text"`
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if e.MaxAttempts <= 0 || e.MaxSwapIterations <= 0 || e.ProgressEvery <= 0 {
		return nil, fmt.Errorf("LINEUP_MAX_ATTEMPTS, LINEUP_MAX_SWAP_ITERATIONS and LINEUP_PROGRESS_EVERY must be positive")
	}
	switch e.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unknown log format: %q", e.LogFormat)
	}
	return &e, nil
}
