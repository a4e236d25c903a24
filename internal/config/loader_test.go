package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/scoutsim/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Seed, convey.ShouldEqual, 1)
				convey.So(cfg.ScoutCount, convey.ShouldEqual, 4)
				convey.So(cfg.PlayerCount, convey.ShouldEqual, 24)
				convey.So(cfg.Weeks, convey.ShouldEqual, 12)
				convey.So(cfg.DedupeWindow, convey.ShouldEqual, 100_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCOUTSIM_METRICS_ADDR", ":8080")
			_ = os.Setenv("SCOUTSIM_SEED", "42")
			_ = os.Setenv("SCOUTSIM_SCOUT_COUNT", "8")
			_ = os.Setenv("SCOUTSIM_WEEKS", "20")
			_ = os.Setenv("SCOUTSIM_WORKER_COUNT", "16")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.ScoutCount, convey.ShouldEqual, 8)
				convey.So(cfg.Weeks, convey.ShouldEqual, 20)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				// Untouched fields keep defaults.
				convey.So(cfg.PlayerCount, convey.ShouldEqual, 24)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
metrics_addr: ":9090"
seed: 7
player_count: 48
dedupe_window: 50000
session_tokens:
  fullObservation: 4
context_noise:
  videoAnalysis: 1.4
ability_context_noise:
  liveMatch: 0.9
phase_ranges:
  investigation: [2, 4]
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOUTSIM_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Seed, convey.ShouldEqual, 7)
				convey.So(cfg.PlayerCount, convey.ShouldEqual, 48)
				convey.So(cfg.DedupeWindow, convey.ShouldEqual, 50000)
				convey.So(cfg.SessionTokens["fullObservation"], convey.ShouldEqual, 4)
				convey.So(cfg.ContextNoise["videoAnalysis"], convey.ShouldAlmostEqual, 1.4)
				convey.So(cfg.AbilityContextNoise["liveMatch"], convey.ShouldAlmostEqual, 0.9)
				convey.So(cfg.PhaseRanges["investigation"], convey.ShouldResemble, []int{2, 4})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
metrics_addr: ":9090"
seed: 7
worker_count: 24
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOUTSIM_CONFIG", tmpFile)
			_ = os.Setenv("SCOUTSIM_SEED", "99") // env wins over file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, 99)             // overridden by env
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9090") // from file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)      // from file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOUTSIM_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SCOUTSIM_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty metrics addr", func() {
			_ = os.Setenv("SCOUTSIM_METRICS_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive scout count", func() {
			_ = os.Setenv("SCOUTSIM_SCOUT_COUNT", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive context noise multiplier", func() {
			yamlContent := `
context_noise:
  liveMatch: 0
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOUTSIM_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive ability context noise multiplier", func() {
			yamlContent := `
ability_context_noise:
  trialMatch: -0.5
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOUTSIM_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "ability_context_noise")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an inverted phase range", func() {
			yamlContent := `
phase_ranges:
  analysis: [4, 2]
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOUTSIM_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "phase_ranges")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// clearConfigEnvVars removes all SCOUTSIM_* variables this suite sets.
func clearConfigEnvVars() {
	vars := []string{
		"SCOUTSIM_CONFIG",
		"SCOUTSIM_METRICS_ADDR",
		"SCOUTSIM_SEED",
		"SCOUTSIM_SCOUT_COUNT",
		"SCOUTSIM_PLAYER_COUNT",
		"SCOUTSIM_WEEKS",
		"SCOUTSIM_WORKER_COUNT",
		"SCOUTSIM_DEDUPE_WINDOW",
		"SCOUTSIM_HISTORY_SHARD_COUNT",
		"SCOUTSIM_LOG_LEVEL",
	}
	for _, v := range vars {
		_ = os.Unsetenv(v)
	}
}

// createTempConfigFile writes content to a temp YAML file and returns its path.
func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "scoutsim-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
	return f.Name()
}
