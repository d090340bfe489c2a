// Package observability registers the application's Prometheus metrics.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// PipelineRunsTotal counts completed pipeline runs by outcome
	// (answered, rejected, failed).
	PipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salescope_pipeline_runs_total",
			Help: "Total number of completed query-resolution runs.",
		},
		[]string{"outcome"},
	)

	// PipelineStageSeconds observes per-stage latency.
	PipelineStageSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salescope_pipeline_stage_duration_seconds",
			Help:    "Pipeline stage latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	// GenerationAttemptsTotal counts SQL generation attempts, including retries.
	GenerationAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "salescope_generation_attempts_total",
			Help: "Total SQL generation attempts across all runs.",
		},
	)

	// HTTPRequestsTotal counts HTTP requests on the chat surface.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salescope_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDurationSeconds observes HTTP request latency by route.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salescope_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		PipelineRunsTotal,
		PipelineStageSeconds,
		GenerationAttemptsTotal,
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
	)
}
