// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package models

// PriceRange bounds a product search. A zero Min or Max means unbounded on
// that side.
type PriceRange struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// Contains reports whether price lies inside the range, bounds inclusive.
func (r PriceRange) Contains(price float64) bool {
	if r.Min > 0 && price < r.Min {
		return false
	}
	if r.Max > 0 && price > r.Max {
		return false
	}
	return true
}

// SearchRequest is one call to the product search collaborator.
type SearchRequest struct {
	Query string
	Limit int
	Price PriceRange
}

// OracleMode selects the question asked of the scoring oracle.
type OracleMode string

const (
	OracleRelevance OracleMode = "relevance"
	OracleCoherence OracleMode = "coherence"
)

// OracleItem is the summary of one candidate sent to the oracle. Position is
// 1-based within the batch.
type OracleItem struct {
	Position int      `json:"index"`
	Title    string   `json:"name"`
	Brand    string   `json:"brand,omitempty"`
	Price    float64  `json:"price"`
	Category Category `json:"category,omitempty"`
	ImageURL string   `json:"-"` // sent as an image part, not text
}

// OracleRequest is one batch for the oracle.
type OracleRequest struct {
	Mode    OracleMode
	Profile *AestheticProfile
	Items   []OracleItem
	Visual  bool // attach item images
}

// Swap actions returned in coherence mode.
const (
	ActionKeep = "keep"
	ActionSwap = "swap"
)

// OracleVerdict is one per-item answer. Index is as returned by the model and
// may be 0- or 1-based. Score is set in relevance mode, Action and Reason in
// coherence mode.
type OracleVerdict struct {
	Index  int    `json:"index"`
	Score  int    `json:"score,omitempty"`
	Action string `json:"action,omitempty"`
	Reason string `json:"reason,omitempty"`
}
