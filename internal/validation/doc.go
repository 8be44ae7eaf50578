// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator with the custom rules the
// moodcheck API needs and converts failures into the API error envelope.
//
// # Custom Tags
//
//   - imagedatauri: a base64 data URI of a JPEG, PNG or WEBP image no larger
//     than the limit set by SetMaxImageBytes (5MB by default)
//   - budget: one of affordable, mid-range (mid_range, midrange), luxury, none
//
// Field names in errors are the JSON names, so "images[1]" rather than
// "Images[1]".
//
// # Usage
//
//	var req models.MoodcheckRequest
//	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	    // handle decode error
//	}
//	if verr := validation.ValidateMoodcheck(&req, limits); verr != nil {
//	    respondError(w, r, http.StatusBadRequest, verr.ToAPIError())
//	    return
//	}
//
// # Error Format
//
// A single failure maps to
//
//	{"code": "VALIDATION_FAILED", "message": "Image 2: unsupported type image/gif. Use JPEG, PNG, or WEBP",
//	 "details": {"field": "images[1]", "tag": "imagedatauri"}}
//
// and several failures list every field under details.fields.
package validation
