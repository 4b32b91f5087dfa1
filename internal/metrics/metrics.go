// Package metrics holds the Prometheus instrumentation for the compliance
// analysis pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the domain metrics registered against a single registry.
type Metrics struct {
	AnalysesTotal      *prometheus.CounterVec
	AnalysisDuration   prometheus.Histogram
	MissingClauses     prometheus.Histogram
	GenerationFallback prometheus.Counter
	RegulationsPerRun  prometheus.Histogram
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates the metric set and registers it with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "compliance",
			Name:      "analyses_total",
			Help:      "Completed contract analyses by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "compliance",
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analysis duration.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
		MissingClauses: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "compliance",
			Name:      "missing_clauses",
			Help:      "Missing clauses detected per analysis.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
		GenerationFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "compliance",
			Name:      "generation_fallback_total",
			Help:      "Clause generations resolved via the deterministic fallback.",
		}),
		RegulationsPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "compliance",
			Name:      "regulations_per_analysis",
			Help:      "Applicable regulations per analysis.",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "compliance",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "compliance",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.MissingClauses,
		m.GenerationFallback,
		m.RegulationsPerRun,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}
