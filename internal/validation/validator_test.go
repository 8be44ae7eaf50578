// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package validation

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/tomtom215/moodboard/internal/models"
)

// ===================================================================================================
// Helpers
// ===================================================================================================

func dataURI(mime string, size int) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(make([]byte, size))
}

func intp(n int) *int { return &n }

var testLimits = Limits{MaxImages: 5, MaxPromptLength: 500}

func hasError(ve *RequestValidationError, field, tag string) bool {
	if ve == nil {
		return false
	}
	for _, e := range ve.Errors() {
		if e.Field() == field && e.Tag() == tag {
			return true
		}
	}
	return false
}

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// Image Data URI Tests
// ===================================================================================================

func TestCheckImageDataURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantMsg string
	}{
		{name: "jpeg", uri: dataURI("image/jpeg", 1024)},
		{name: "png", uri: dataURI("image/png", 1024)},
		{name: "webp", uri: dataURI("image/webp", 1024)},
		{name: "at limit", uri: dataURI("image/png", DefaultMaxImageBytes)},
		{name: "over limit", uri: dataURI("image/png", DefaultMaxImageBytes+1), wantMsg: "exceeds 5MB limit"},
		{name: "gif", uri: dataURI("image/gif", 16), wantMsg: "unsupported type image/gif"},
		{name: "plain url", uri: "https://example.com/a.jpg", wantMsg: "valid base64 data URI"},
		{name: "bad base64", uri: "data:image/png;base64,!!!not-base64", wantMsg: "invalid base64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkImageDataURI(tt.uri)
			if tt.wantMsg == "" {
				if got != "" {
					t.Errorf("checkImageDataURI() = %q, want valid", got)
				}
				return
			}
			if !strings.Contains(got, tt.wantMsg) {
				t.Errorf("checkImageDataURI() = %q, want it to contain %q", got, tt.wantMsg)
			}
		})
	}
}

// ===================================================================================================
// ValidateMoodcheck Tests
// ===================================================================================================

func TestValidateMoodcheck_Valid(t *testing.T) {
	tests := []struct {
		name string
		req  models.MoodcheckRequest
	}{
		{name: "images only", req: models.MoodcheckRequest{Images: []string{dataURI("image/jpeg", 64)}}},
		{name: "prompt only", req: models.MoodcheckRequest{Prompt: "quiet luxury capsule wardrobe"}},
		{
			name: "everything",
			req: models.MoodcheckRequest{
				Images:      []string{dataURI("image/png", 64), dataURI("image/webp", 64)},
				Prompt:      "beach weekend",
				MaxProducts: intp(12),
				Budget:      "mid_range",
			},
		},
		{name: "prompt at limit", req: models.MoodcheckRequest{Prompt: strings.Repeat("é", 500)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ve := ValidateMoodcheck(&tt.req, testLimits); ve != nil {
				t.Errorf("ValidateMoodcheck() = %v, want nil", ve)
			}
		})
	}
}

func TestValidateMoodcheck_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		req       models.MoodcheckRequest
		wantField string
		wantTag   string
	}{
		{
			name:      "nothing to analyze",
			req:       models.MoodcheckRequest{Prompt: "   "},
			wantField: "images",
			wantTag:   "required_without",
		},
		{
			name: "too many images",
			req: models.MoodcheckRequest{Images: []string{
				dataURI("image/png", 8), dataURI("image/png", 8), dataURI("image/png", 8),
				dataURI("image/png", 8), dataURI("image/png", 8), dataURI("image/png", 8),
			}},
			wantField: "images",
			wantTag:   "max",
		},
		{
			name:      "prompt too long",
			req:       models.MoodcheckRequest{Prompt: strings.Repeat("a", 501)},
			wantField: "prompt",
			wantTag:   "max",
		},
		{
			name:      "unsupported image",
			req:       models.MoodcheckRequest{Images: []string{dataURI("image/png", 8), dataURI("image/gif", 8)}},
			wantField: "images[1]",
			wantTag:   "imagedatauri",
		},
		{
			name:      "unknown budget",
			req:       models.MoodcheckRequest{Prompt: "boho", Budget: "cheapish"},
			wantField: "budget",
			wantTag:   "budget",
		},
		{
			name:      "max products too low",
			req:       models.MoodcheckRequest{Prompt: "boho", MaxProducts: intp(0)},
			wantField: "max_products",
			wantTag:   "min",
		},
		{
			name:      "max products too high",
			req:       models.MoodcheckRequest{Prompt: "boho", MaxProducts: intp(51)},
			wantField: "max_products",
			wantTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := ValidateMoodcheck(&tt.req, testLimits)
			if ve == nil {
				t.Fatal("ValidateMoodcheck() should have returned an error")
			}
			if !hasError(ve, tt.wantField, tt.wantTag) {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, ve)
			}
		})
	}
}

// ===================================================================================================
// ToAPIError Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	req := models.MoodcheckRequest{Images: []string{dataURI("image/png", 8), dataURI("image/gif", 8)}}

	ve := ValidateMoodcheck(&req, testLimits)
	if ve == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := ve.ToAPIError()
	if apiErr.Code != models.ErrCodeValidation {
		t.Errorf("Code = %q, want %q", apiErr.Code, models.ErrCodeValidation)
	}
	if !strings.HasPrefix(apiErr.Message, "Image 2: unsupported type image/gif") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "images[1]" {
		t.Errorf("Details[field] = %v", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	req := models.MoodcheckRequest{Prompt: strings.Repeat("a", 501), Budget: "free"}

	ve := ValidateMoodcheck(&req, testLimits)
	if ve == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := ve.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]any)
	if !ok {
		t.Fatalf("Details[fields] has type %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("got %d fields, want 2", len(fields))
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Message should join errors: %q", apiErr.Message)
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Code != models.ErrCodeValidation || apiErr.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", apiErr)
	}
}
