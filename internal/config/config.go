// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the metrics/health listen address, e.g. ":9080".
	MetricsAddr string `koanf:"metrics_addr"`

	// HistoryShardCount configures the number of shards in the history store.
	HistoryShardCount int `koanf:"history_shard_count"`

	// DedupeWindow bounds the observation dedupe window.
	DedupeWindow int `koanf:"dedupe_window"`

	// Seed drives every random draw in a run. Two runs with the same seed
	// and the same config produce identical output.
	Seed int64 `koanf:"seed"`

	// ScoutCount and PlayerCount size the simulated world.
	ScoutCount  int `koanf:"scout_count"`
	PlayerCount int `koanf:"player_count"`

	// Weeks sets the number of simulated calendar weeks per run.
	Weeks int `koanf:"weeks"`

	// WorkerCount bounds concurrent scout simulations.
	WorkerCount int `koanf:"worker_count"`

	// SessionTokens overrides the per-half focus token budget per session
	// mode. Keys are mode names (fullObservation, investigation, analysis,
	// quickAssessment).
	SessionTokens map[string]int `koanf:"session_tokens"`

	// ContextNoise overrides per-context perception noise multipliers.
	// Keys are context names (liveMatch, videoAnalysis, ...).
	ContextNoise map[string]float64 `koanf:"context_noise"`

	// AbilityContextNoise overrides the ability estimator's own per-context
	// noise table, independent of the perception one.
	AbilityContextNoise map[string]float64 `koanf:"ability_context_noise"`

	// PhaseRanges overrides the [min, max] phase-count range per session
	// mode. Keys are mode names (fullObservation, investigation, ...).
	PhaseRanges map[string][]int `koanf:"phase_ranges"`
}

// New creates a Config with compiled-in defaults.
func New() *Config {
	c := &Config{
		LogLevel:          "info",
		MetricsAddr:       ":9080",
		HistoryShardCount: 8,
		DedupeWindow:      100_000,
		Seed:              1,
		ScoutCount:        4,
		PlayerCount:       24,
		Weeks:             12,
		WorkerCount:       runtime.NumCPU(),
	}
	return c
}
