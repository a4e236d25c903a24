package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SCOUTSIM_CONFIG is set
//  3. env (prefix SCOUTSIM_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCOUTSIM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCOUTSIM_SEED, SCOUTSIM_WORKER_COUNT, ...
	// Map env keys like SCOUTSIM_WORKER_COUNT -> worker_count (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCOUTSIM_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scoutsim_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.MetricsAddr == "" {
		return nil, fmt.Errorf("%w: metrics_addr must not be empty", ErrInvalidConfig)
	}
	if cfg.ScoutCount <= 0 || cfg.PlayerCount <= 0 || cfg.Weeks <= 0 {
		return nil, fmt.Errorf("%w: scout_count, player_count and weeks must be positive", ErrInvalidConfig)
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = New().WorkerCount
	}
	for name, mult := range cfg.ContextNoise {
		if mult <= 0 {
			return nil, fmt.Errorf("%w: context_noise[%s] must be positive", ErrInvalidConfig, name)
		}
	}
	for name, mult := range cfg.AbilityContextNoise {
		if mult <= 0 {
			return nil, fmt.Errorf("%w: ability_context_noise[%s] must be positive", ErrInvalidConfig, name)
		}
	}
	for mode, bounds := range cfg.PhaseRanges {
		if len(bounds) != 2 || bounds[0] <= 0 || bounds[0] > bounds[1] {
			return nil, fmt.Errorf("%w: phase_ranges[%s] must be [min, max] with 0 < min <= max", ErrInvalidConfig, mode)
		}
	}
	return &cfg, nil
}
