// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"strings"

	"github.com/tomtom215/moodboard/internal/models"
)

// TrustFilter keeps candidates sold by allow-listed retailers.
type TrustFilter struct {
	trusted []string // lowercased
	floor   int
}

// NewTrustFilter creates a filter over retailers with a minimum output size.
func NewTrustFilter(retailers []string, floor int) *TrustFilter {
	trusted := make([]string, 0, len(retailers))
	for _, r := range retailers {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			trusted = append(trusted, r)
		}
	}
	return &TrustFilter{trusted: trusted, floor: floor}
}

// IsTrusted reports whether retailer matches the allow-list. Matching is a
// case-insensitive substring test in both directions, so "Nordstrom Rack"
// and "nordstrom" match each other. An empty retailer is never trusted.
func (t *TrustFilter) IsTrusted(retailer string) bool {
	r := strings.ToLower(strings.TrimSpace(retailer))
	if r == "" {
		return false
	}
	for _, name := range t.trusted {
		if strings.Contains(r, name) || strings.Contains(name, r) {
			return true
		}
	}
	return false
}

// Filter stamps RetailerTrusted on every candidate and returns the trusted
// ones in input order. When fewer than floor are trusted, untrusted
// candidates are appended in their existing order until the floor is met.
func (t *TrustFilter) Filter(candidates []*models.Candidate) []*models.Candidate {
	trusted := make([]*models.Candidate, 0, len(candidates))
	var untrusted []*models.Candidate
	for _, c := range candidates {
		c.RetailerTrusted = t.IsTrusted(c.Retailer)
		if c.RetailerTrusted {
			trusted = append(trusted, c)
		} else {
			untrusted = append(untrusted, c)
		}
	}

	for _, c := range untrusted {
		if len(trusted) >= t.floor {
			break
		}
		trusted = append(trusted, c)
	}
	return trusted
}
