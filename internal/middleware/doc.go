// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: assigns X-Request-ID (UUID v4 unless supplied) and a
    correlation ID, and stores both in the logging context
  - PrometheusMetrics: request count, duration and active-request gauge,
    labeled by chi route pattern
  - Compression: gzip for clients sending Accept-Encoding: gzip

Usage:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

RequestID must run before anything that logs, so that logging.Ctx(ctx)
picks up the IDs.
*/
package middleware
