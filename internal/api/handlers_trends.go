// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package api

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/moodboard/internal/models"
)

// maxKeywordLength bounds the trends keyword.
const maxKeywordLength = 100

// Trends returns the search-interest summary for ?keyword=.
// With trends disabled every keyword reports direction "unknown".
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		rw.Error(http.StatusBadRequest, models.ErrCodeValidation, ErrMissingKeyword.Error())
		return
	}
	if utf8.RuneCountInString(keyword) > maxKeywordLength {
		rw.APIError(http.StatusBadRequest, &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: "keyword is too long",
			Details: map[string]any{"field": "keyword", "max": maxKeywordLength},
		})
		return
	}

	if h.trends == nil {
		rw.Success(models.UnknownTrend(keyword))
		return
	}
	rw.Success(h.trends.Summary(r.Context(), keyword))
}
