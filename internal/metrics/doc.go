// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package metrics defines the Prometheus metrics exported at /metrics.

Metrics are registered on the default registry through promauto when the
package is loaded. Callers use the RecordX helpers rather than touching the
collectors directly:

	start := time.Now()
	products, err := client.Search(ctx, req)
	metrics.RecordSearch("shopstyle", time.Since(start), len(products), err)

# Available Metrics

API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Ranking pipeline:
  - pipeline_stage_duration_seconds{stage}
  - pipeline_stage_candidates{stage}
  - pipeline_runs_total{outcome}
  - coherence_swaps_total

External collaborators:
  - search_requests_total{source,result}
  - search_request_duration_seconds{source}
  - oracle_requests_total{mode,result}
  - oracle_request_duration_seconds{mode}
  - image_checks_total{result}

Caching and resilience:
  - trend_cache_requests_total{tier,result}
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}
*/
package metrics
