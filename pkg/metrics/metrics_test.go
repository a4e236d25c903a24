package metrics_test

import (
	"testing"
	"time"

	"github.com/okian/scoutsim/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithPrometheusRegistry(reg))
		So(m, ShouldNotBeNil)

		Convey("When gathering the registry", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)

			Convey("Then the engine metric families should be registered", func() {
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				// CounterVecs with no observations yet do not gather, but
				// plain counters, gauges and histograms do.
				So(names["scoutsim_engine_attribute_readings_total"], ShouldBeTrue)
				So(names["scoutsim_engine_histories_tracked"], ShouldBeTrue)
				So(names["scoutsim_engine_observe_latency_seconds"], ShouldBeTrue)
			})
		})

		Convey("When constructing a second manager on the same registry", func() {
			Convey("Then duplicate registration should panic as promauto promises", func() {
				So(func() {
					metrics.NewManager(metrics.WithPrometheusRegistry(reg))
				}, ShouldPanic)
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When driving every helper", func() {
			Convey("Then none should panic", func() {
				So(func() {
					metrics.RecordSessionStarted("fullObservation")
					metrics.RecordSessionCompleted("good", 7)
					metrics.RecordObservation("liveMatch")
					metrics.RecordDuplicateObservation()
					metrics.RecordAttributeReadings(9)
					metrics.RecordPersonalityReveal()
					metrics.RecordHypothesisResolved("confirmed")
					metrics.RecordObserveLatency(3 * time.Millisecond)
					metrics.UpdateHistoriesTracked(12)
					metrics.UpdateHistoryShardCount(8)
					metrics.RecordHistoryUpdateLatency(time.Millisecond)
				}, ShouldNotPanic)
			})
		})
	})
}
