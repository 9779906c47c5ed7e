// Package metrics provides Prometheus instrumentation for the data layer.
//
// Every storage operation, fallback and hydration pass is counted here, so
// "how often is the engine failing" is answerable from /metrics instead of
// log archaeology. Expose the registry via the serve command:
//
//	r.Get("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// StorageOps counts facade operations by op and tier that served them.
	StorageOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freshko",
			Subsystem: "storage",
			Name:      "ops_total",
			Help:      "Total storage facade operations.",
		},
		[]string{"op", "tier"}, // op: get|set|remove|clear, tier: engine|flat
	)

	// StorageFallbacks counts engine failures recovered by the flat tier.
	StorageFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freshko",
			Subsystem: "storage",
			Name:      "fallbacks_total",
			Help:      "Engine failures redone against the flat store.",
		},
		[]string{"op"},
	)

	// EngineOpDuration tracks key-value engine latency.
	EngineOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "freshko",
			Subsystem: "kv",
			Name:      "op_duration_seconds",
			Help:      "Duration of key-value engine operations in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"op"},
	)

	// EngineUsageBytes reports the engine's estimated stored bytes.
	EngineUsageBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "freshko",
		Subsystem: "kv",
		Name:      "usage_bytes",
		Help:      "Estimated bytes stored in the key-value engine.",
	})

	// HydrationDuration tracks how long domain store hydration takes.
	HydrationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "freshko",
		Subsystem: "store",
		Name:      "hydration_duration_seconds",
		Help:      "Duration of domain store hydration in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	// MigratedKeys counts legacy keys copied into the engine by result.
	MigratedKeys = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freshko",
			Subsystem: "migrate",
			Name:      "keys_total",
			Help:      "Legacy flat-store keys processed by migration.",
		},
		[]string{"result"}, // "copied" | "skipped" | "failed"
	)

	// BusEvents counts published bus events by name.
	BusEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freshko",
			Subsystem: "bus",
			Name:      "events_total",
			Help:      "Total events published on the bus.",
		},
		[]string{"event"},
	)
)

// DefaultRegistry is the Prometheus registry used by the data layer.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		StorageOps,
		StorageFallbacks,
		EngineOpDuration,
		EngineUsageBytes,
		HydrationDuration,
		MigratedKeys,
		BusEvents,
	)
}

// Register lets you add your own prometheus.Collector to the registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ObserveEngineOp records an engine operation duration:
//
//	defer metrics.ObserveEngineOp("put", time.Now())
func ObserveEngineOp(op string, start time.Time) {
	EngineOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// RecordStorageOp counts a facade operation served by a tier.
func RecordStorageOp(op, tier string) {
	StorageOps.WithLabelValues(op, tier).Inc()
}

// RecordFallback counts an engine failure recovered by the flat store.
func RecordFallback(op string) {
	StorageFallbacks.WithLabelValues(op).Inc()
}

// Handler returns an http.HandlerFunc that exposes the metrics page.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}
