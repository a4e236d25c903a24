// Package metrics provides Prometheus metrics for the scoutsim observation
// engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Session lifecycle
	sessionsStarted   *prometheus.CounterVec
	sessionsCompleted *prometheus.CounterVec
	insightPoints     prometheus.Histogram

	// Observation pipeline
	observationsRecorded  *prometheus.CounterVec
	observationsDuplicate prometheus.Counter
	attributeReadings     prometheus.Counter
	personalityReveals    prometheus.Counter
	hypothesesResolved    *prometheus.CounterVec
	observeLatency        prometheus.Histogram

	// History store
	historiesTracked     prometheus.Gauge
	historyShardCount    prometheus.Gauge
	historyUpdateLatency prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Registry is the registry the engine's metrics live on; expose it to the
// process entrypoint for serving.
var Registry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(Registry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoutsim",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.sessionsStarted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_started_total",
		Help:      "Total number of observation sessions started, by mode",
	}, []string{"mode"})

	m.sessionsCompleted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_completed_total",
		Help:      "Total number of observation sessions completed, by result tier",
	}, []string{"tier"})

	m.insightPoints = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_insight_points",
		Help:      "Distribution of insight points earned per completed session",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})

	m.observationsRecorded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observations_recorded_total",
		Help:      "Total number of observation records folded into histories, by context",
	}, []string{"context"})

	m.observationsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observations_duplicate_total",
		Help:      "Total number of duplicate observation records refused",
	})

	m.attributeReadings = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "attribute_readings_total",
		Help:      "Total number of attribute readings produced",
	})

	m.personalityReveals = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "personality_reveals_total",
		Help:      "Total number of hidden personality traits disclosed",
	})

	m.hypothesesResolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hypotheses_resolved_total",
		Help:      "Total number of hypotheses reaching a terminal state, by outcome",
	}, []string{"outcome"})

	m.observeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observe_latency_seconds",
		Help:      "Histogram of full observation pipeline latency",
		Buckets:   m.histogramBuckets,
	})

	m.historiesTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "histories_tracked",
		Help:      "Number of scout/player pairs currently tracked",
	})

	m.historyShardCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_shard_count",
		Help:      "Number of shards in the history store",
	})

	m.historyUpdateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_update_latency_seconds",
		Help:      "Histogram of history store update latency",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers routed through the global manager.

// RecordSessionStarted increments the started counter for a mode.
func RecordSessionStarted(mode string) {
	if globalManager.enabled {
		globalManager.sessionsStarted.WithLabelValues(mode).Inc()
	}
}

// RecordSessionCompleted increments the completed counter for a tier and
// observes the session's insight total.
func RecordSessionCompleted(tier string, insightPoints int) {
	if globalManager.enabled {
		globalManager.sessionsCompleted.WithLabelValues(tier).Inc()
		globalManager.insightPoints.Observe(float64(insightPoints))
	}
}

// RecordObservation increments the recorded counter for a context.
func RecordObservation(context string) {
	if globalManager.enabled {
		globalManager.observationsRecorded.WithLabelValues(context).Inc()
	}
}

// RecordDuplicateObservation counts a refused duplicate record.
func RecordDuplicateObservation() {
	if globalManager.enabled {
		globalManager.observationsDuplicate.Inc()
	}
}

// RecordAttributeReadings counts produced attribute readings.
func RecordAttributeReadings(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.attributeReadings.Add(float64(n))
	}
}

// RecordPersonalityReveal counts one disclosed trait.
func RecordPersonalityReveal() {
	if globalManager.enabled {
		globalManager.personalityReveals.Inc()
	}
}

// RecordHypothesisResolved counts a terminal hypothesis outcome.
func RecordHypothesisResolved(outcome string) {
	if globalManager.enabled {
		globalManager.hypothesesResolved.WithLabelValues(outcome).Inc()
	}
}

// RecordObserveLatency observes one pipeline run's duration.
func RecordObserveLatency(d time.Duration) {
	if globalManager.enabled {
		globalManager.observeLatency.Observe(d.Seconds())
	}
}

// UpdateHistoriesTracked sets the tracked-pairs gauge.
func UpdateHistoriesTracked(n int) {
	if globalManager.enabled {
		globalManager.historiesTracked.Set(float64(n))
	}
}

// UpdateHistoryShardCount sets the shard-count gauge.
func UpdateHistoryShardCount(n int) {
	if globalManager.enabled {
		globalManager.historyShardCount.Set(float64(n))
	}
}

// RecordHistoryUpdateLatency observes one store update's duration.
func RecordHistoryUpdateLatency(d time.Duration) {
	if globalManager.enabled {
		globalManager.historyUpdateLatency.Observe(d.Seconds())
	}
}
