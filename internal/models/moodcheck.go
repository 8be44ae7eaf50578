// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package models

// MoodcheckRequest is the body of POST /api/moodcheck. At least one of
// Images and Prompt must be present; count and length limits are
// configurable and checked by the validation package.
type MoodcheckRequest struct {
	Images      []string `json:"images" validate:"omitempty,dive,imagedatauri"`
	Prompt      string   `json:"prompt"`
	MaxProducts *int     `json:"max_products,omitempty" validate:"omitempty,min=1,max=50"`
	Budget      string   `json:"budget,omitempty" validate:"omitempty,budget"`
}

// MoodcheckResult is the payload returned for a successful moodcheck.
type MoodcheckResult struct {
	Vibe              *AestheticProfile `json:"vibe"`
	Products          []*Candidate      `json:"products"`
	Trend             *TrendSummary     `json:"trend,omitempty"`
	SearchQueriesUsed []string          `json:"search_queries_used"`
	Budget            Budget            `json:"budget,omitempty"`
	ItemType          Category          `json:"item_type,omitempty"`
	Swaps             int               `json:"swaps"`

	// ProductsDegraded is set when the product list came back empty, which
	// happens when search or ranking collaborators are unavailable.
	ProductsDegraded bool `json:"products_degraded"`
}
