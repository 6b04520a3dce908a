// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

/*
Package metrics provides Prometheus metrics collection and export for observability.

Every collector is registered with the default registry through promauto, so
importing the package is enough to expose it on /metrics.

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - recommend_requests_total: Requests by outcome (counter)
    Labels: domain, outcome (ok, not_found, unavailable, error)
  - recommend_duration_seconds: Scoring time of successful requests (histogram)
  - recommend_cache_hits_total, recommend_cache_misses_total (counters)

Catalog Metrics:
  - catalog_load_duration_seconds: Bundle load time (histogram)
    Labels: domain, source
  - catalog_load_errors_total: Failed loads (counter)
  - catalog_items: Rows in each resident catalog (gauge)
  - catalog_bundle_bytes_total: Bundle bytes read per source (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_state_transitions_total (counter)

# Usage Example

	start := time.Now()
	res, err := engine.Recommend(ctx, cat, q)
	metrics.RecordRecommendation("tv", metrics.OutcomeOK, res.CacheHit, time.Since(start))
*/
package metrics
