// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60}, // moodcheck runs several model calls
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Ranking Pipeline Metrics
	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Duration of each ranking pipeline stage",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"},
	)

	PipelineStageCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_candidates",
			Help:    "Number of candidates leaving each pipeline stage",
			Buckets: []float64{0, 5, 10, 20, 40, 80, 160},
		},
		[]string{"stage"},
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total ranking pipeline runs by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "error"
	)

	CoherenceSwaps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coherence_swaps_total",
			Help: "Total selected products replaced by the coherence pass",
		},
	)

	// External Collaborator Metrics
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total product search requests",
		},
		[]string{"source", "result"}, // result: "success", "empty", "error"
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_request_duration_seconds",
			Help:    "Product search request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_requests_total",
			Help: "Total model calls by mode",
		},
		[]string{"mode", "result"}, // mode: "extract", "relevance", "coherence"
	)

	OracleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oracle_request_duration_seconds",
			Help:    "Model call duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"mode"},
	)

	ImageChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_checks_total",
			Help: "Total product image URL checks",
		},
		[]string{"result"}, // "ok", "rejected", "error"
	)

	// Trend Cache Metrics
	TrendCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_cache_requests_total",
			Help: "Trend cache lookups by tier and result",
		},
		[]string{"tier", "result"}, // tier: "memory", "disk"; result: "hit", "miss"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected", "canceled"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordStage records the duration and output size of a pipeline stage.
func RecordStage(stage string, duration time.Duration, candidates int) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	PipelineStageCandidates.WithLabelValues(stage).Observe(float64(candidates))
}

// RecordPipelineRun records the outcome of one RankProducts call.
func RecordPipelineRun(products int, err error) {
	switch {
	case err != nil:
		PipelineRuns.WithLabelValues("error").Inc()
	case products == 0:
		PipelineRuns.WithLabelValues("empty").Inc()
	default:
		PipelineRuns.WithLabelValues("ok").Inc()
	}
}

// RecordSearch records one product search call.
func RecordSearch(source string, duration time.Duration, results int, err error) {
	SearchDuration.WithLabelValues(source).Observe(duration.Seconds())
	switch {
	case err != nil:
		SearchRequests.WithLabelValues(source, "error").Inc()
	case results == 0:
		SearchRequests.WithLabelValues(source, "empty").Inc()
	default:
		SearchRequests.WithLabelValues(source, "success").Inc()
	}
}

// RecordOracle records one model call.
func RecordOracle(mode string, duration time.Duration, err error) {
	OracleDuration.WithLabelValues(mode).Observe(duration.Seconds())
	result := "success"
	if err != nil {
		result = "error"
	}
	OracleRequests.WithLabelValues(mode, result).Inc()
}

// RecordSwaps adds n coherence substitutions.
func RecordSwaps(n int) {
	if n > 0 {
		CoherenceSwaps.Add(float64(n))
	}
}

// RecordImageCheck records the result of one image URL probe.
func RecordImageCheck(result string) {
	ImageChecks.WithLabelValues(result).Inc()
}

// RecordTrendCache records a trend cache lookup.
func RecordTrendCache(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	TrendCacheRequests.WithLabelValues(tier, result).Inc()
}
