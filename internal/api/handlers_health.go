// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package api

import (
	"net/http"

	"github.com/tomtom215/moodboard/internal/models"
)

// Health handles liveness checks. The service has no local dependencies
// whose failure makes it unable to serve, so it is always healthy.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(models.HealthStatus{
		Status:  "healthy",
		Service: serviceName,
		Version: h.version,
	})
}
