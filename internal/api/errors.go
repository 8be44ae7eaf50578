// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/moodboard/internal/logging"
	"github.com/tomtom215/moodboard/internal/models"
	"github.com/tomtom215/moodboard/internal/moodcheck"
)

// Common API errors
var (
	// ErrMissingKeyword indicates GET /api/trends without a keyword
	ErrMissingKeyword = errors.New("keyword is required")

	// ErrEmptyBody indicates a POST with no JSON body
	ErrEmptyBody = errors.New("request body is required")
)

// respondAnalyzeError maps a moodcheck failure to a status and envelope.
// Profile extraction failures are upstream faults; anything else is ours.
func respondAnalyzeError(rw *ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, moodcheck.ErrProfileExtraction):
		rw.ExternalServiceError("Failed to analyze images", err)
	case errors.Is(err, models.ErrInvalidBudget):
		rw.Error(http.StatusBadRequest, models.ErrCodeValidation, err.Error())
	case errors.Is(err, r.Context().Err()) && r.Context().Err() != nil:
		// Client went away; nothing useful to send.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Moodcheck canceled by client")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Moodcheck failed")
		rw.InternalError("Failed to analyze images")
	}
}
