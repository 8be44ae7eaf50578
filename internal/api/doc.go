// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package api provides the HTTP surface of Moodboard.

Routes:

	POST /api/moodcheck   analyze images/prompt, return profile + products (rate limited)
	GET  /api/trends      search-interest summary for ?keyword= (rate limited)
	GET  /api/health      liveness
	GET  /metrics         Prometheus exposition

Every /api response uses the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "VALIDATION_FAILED", "message": "...", "details": {...}, "request_id": "..."},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}
	}

Unknown routes and wrong methods get the same envelope with success=false
and NOT_FOUND or METHOD_NOT_ALLOWED.

Middleware order: RequestID, RealIP, Recoverer, CORS and request logging
globally; security headers, Prometheus and gzip under /api; httprate on
the two upstream-backed endpoints.

A moodcheck whose product search degraded still returns 200 with
products_degraded=true. Only a failed profile extraction is a 502.
*/
package api
