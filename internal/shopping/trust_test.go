// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"fmt"
	"testing"

	"github.com/tomtom215/moodboard/internal/models"
)

var testRetailers = []string{"Nordstrom", "Shopbop", "COS"}

func retailerCandidates(prefix string, n int, retailer string) []*models.Candidate {
	out := make([]*models.Candidate, n)
	for i := range out {
		out[i] = models.NewCandidate(product(fmt.Sprintf("%s%d", prefix, i), "Item", 50, retailer))
	}
	return out
}

func TestTrustFilter_IsTrusted(t *testing.T) {
	t.Parallel()

	f := NewTrustFilter(testRetailers, 10)
	tests := []struct {
		retailer string
		want     bool
	}{
		{"Nordstrom", true},
		{"nordstrom rack", true},
		{"NORD", true},
		{"  Shopbop ", true},
		{"Etsy Seller", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := f.IsTrusted(tt.retailer); got != tt.want {
			t.Errorf("IsTrusted(%q) = %v, want %v", tt.retailer, got, tt.want)
		}
	}
}

func TestTrustFilter_Filter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		trusted   int
		untrusted int
		want      int
	}{
		{"backfills below floor", 5, 3, 8},
		{"partial backfill", 7, 5, 10},
		{"floor already met", 12, 3, 12},
		{"nothing trusted", 0, 4, 4},
		{"empty", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Interleave so order preservation is visible.
			var in []*models.Candidate
			tr := retailerCandidates("t", tt.trusted, "Nordstrom")
			un := retailerCandidates("u", tt.untrusted, "Random Marketplace")
			for i := 0; i < len(tr) || i < len(un); i++ {
				if i < len(un) {
					in = append(in, un[i])
				}
				if i < len(tr) {
					in = append(in, tr[i])
				}
			}

			got := NewTrustFilter(testRetailers, 10).Filter(in)
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}

			// Trusted first in input order, then untrusted in input order.
			for i, c := range got {
				if i < tt.trusted {
					if c != tr[i] || !c.RetailerTrusted {
						t.Errorf("position %d = %s, want trusted %s", i, c.ID, tr[i].ID)
					}
					continue
				}
				if j := i - tt.trusted; c != un[j] || c.RetailerTrusted {
					t.Errorf("position %d = %s, want untrusted %s", i, c.ID, un[j].ID)
				}
			}
		})
	}
}

func TestTrustFilter_StampsEveryCandidate(t *testing.T) {
	t.Parallel()

	in := append(retailerCandidates("t", 11, "COS"), retailerCandidates("u", 2, "Unknown")...)
	NewTrustFilter(testRetailers, 10).Filter(in)
	for _, c := range in {
		if want := c.Retailer == "COS"; c.RetailerTrusted != want {
			t.Errorf("%s RetailerTrusted = %v, want %v", c.ID, c.RetailerTrusted, want)
		}
	}
}
