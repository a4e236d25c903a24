package config_test

import (
	"runtime"
	"testing"

	"github.com/okian/scoutsim/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9080")
			convey.So(cfg.HistoryShardCount, convey.ShouldEqual, 8)
			convey.So(cfg.DedupeWindow, convey.ShouldEqual, 100_000)
			convey.So(cfg.Seed, convey.ShouldEqual, 1)
			convey.So(cfg.ScoutCount, convey.ShouldEqual, 4)
			convey.So(cfg.PlayerCount, convey.ShouldEqual, 24)
			convey.So(cfg.Weeks, convey.ShouldEqual, 12)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
		})

		convey.Convey("Then override maps start empty", func() {
			convey.So(cfg.SessionTokens, convey.ShouldBeNil)
			convey.So(cfg.ContextNoise, convey.ShouldBeNil)
		})
	})
}
