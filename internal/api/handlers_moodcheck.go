// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodboard/internal/logging"
	"github.com/tomtom215/moodboard/internal/models"
	"github.com/tomtom215/moodboard/internal/validation"
)

// Moodcheck analyzes images and/or a prompt and returns the aesthetic
// profile with ranked products.
//
// Request body: models.MoodcheckRequest
// Success: models.MoodcheckResult
// Errors: 400 BAD_REQUEST, 400 VALIDATION_FAILED, 413 PAYLOAD_TOO_LARGE,
// 502 EXTERNAL_SERVICE_FAILED, 500 INTERNAL_ERROR
func (h *Handler) Moodcheck(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := NewResponseWriter(w, r).startedAt(start)

	var req models.MoodcheckRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rw.Error(http.StatusRequestEntityTooLarge, models.ErrCodePayloadTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		rw.BadRequest("Invalid request: " + err.Error())
		return
	}

	if verr := validation.ValidateMoodcheck(&req, h.limits); verr != nil {
		logging.Ctx(r.Context()).Debug().Err(verr).Msg("Moodcheck request rejected")
		rw.APIError(http.StatusBadRequest, verr.ToAPIError())
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		respondAnalyzeError(rw, r, err)
		return
	}

	rw.Success(result)
}

// decodeBody reads one JSON object bounded by maxBodyBytes.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}
