// Package metrics provides Prometheus instrumentation for Tessera.
//
// # Overview
//
// The metrics package provides:
//   - Prometheus-compatible metrics collection
//   - Pre-defined metrics for configuration resolution, visibility toggles,
//     and transformer application
//   - Thread-safe metric recording
//   - Automatic metric registration via promauto
//
// # Basic Usage
//
//	// Record a completed table resolution
//	timer := metrics.NewTimer()
//	resolved, err := config.Resolve(cfg, "gene", "variants")
//	metrics.ObserveResolution("variants", err == nil, timer.Stop())
//
//	// Record a transformer fallback
//	metrics.TransformFallbacks.WithLabelValues("number", "bad_options").Inc()
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pre-defined metrics for Tessera operations. All metrics are registered
// automatically on package initialization.
var (
	// ResolutionsTotal counts table configuration resolutions by table and outcome.
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tessera_resolutions_total",
			Help: "Total number of table configuration resolutions",
		},
		[]string{"table", "status"},
	)

	// ResolutionDuration tracks how long a single table resolution takes.
	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tessera_resolution_duration_seconds",
			Help:    "Duration of table configuration resolutions",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"table"},
	)

	// TogglesTotal counts visibility toggle operations by kind (column, category, all).
	TogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tessera_visibility_toggles_total",
			Help: "Total number of visibility toggle operations",
		},
		[]string{"kind"},
	)

	// UnknownToggleTargets counts toggle requests naming ids that do not exist.
	UnknownToggleTargets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tessera_visibility_unknown_targets_total",
			Help: "Toggle requests for unknown column or category identifiers",
		},
		[]string{"kind"},
	)

	// TransformApplies counts transformer applications by type and outcome.
	TransformApplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tessera_transform_applies_total",
			Help: "Total number of transformer applications",
		},
		[]string{"type", "status"},
	)

	// TransformFallbacks counts degraded transformer outcomes by type and reason.
	TransformFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tessera_transform_fallbacks_total",
			Help: "Transformer applications that fell back to a default representation",
		},
		[]string{"type", "reason"},
	)

	// ConfigLoads counts configuration document loads by source and outcome.
	ConfigLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tessera_config_loads_total",
			Help: "Total number of configuration document loads",
		},
		[]string{"source", "status"},
	)

	// ActiveColumns tracks the number of currently visible columns per table.
	ActiveColumns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tessera_active_columns",
			Help: "Number of currently visible columns",
		},
		[]string{"table"},
	)
)

// Timer measures elapsed time for an operation.
type Timer struct {
	start time.Time
}

// NewTimer creates a started timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the elapsed time since the timer was created.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// ObserveResolution records a completed resolution with its outcome and duration.
func ObserveResolution(table string, ok bool, elapsed time.Duration) {
	status := "success"
	if !ok {
		status = "error"
	}
	ResolutionsTotal.WithLabelValues(table, status).Inc()
	ResolutionDuration.WithLabelValues(table).Observe(elapsed.Seconds())
}

// ObserveTransform records a transformer application outcome.
func ObserveTransform(transformType string, ok bool) {
	status := "success"
	if !ok {
		status = "fallback"
	}
	TransformApplies.WithLabelValues(transformType, status).Inc()
}
