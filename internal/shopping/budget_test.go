// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"testing"

	"github.com/tomtom215/moodboard/internal/models"
)

func TestDetectBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prompt string
		want   models.Budget
	}{
		{"I want something affordable", models.BudgetAffordable},
		{"under $100 please", models.BudgetAffordable},
		{"cheap options", models.BudgetAffordable},
		{"budget-friendly basics", models.BudgetAffordable},
		{"luxury brands only", models.BudgetLuxury},
		{"designer items", models.BudgetLuxury},
		{"High-End fashion", models.BudgetLuxury},
		{"mid-range knitwear", models.BudgetMidRange},
		{"moderately priced workwear", models.BudgetMidRange},
		{"affordable luxury", models.BudgetAffordable},
		{"designer looks at a mid range price", models.BudgetLuxury},
		{"unaffordable dreams", models.BudgetNone},
		{"summer vibes", models.BudgetNone},
		{"", models.BudgetNone},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			t.Parallel()
			if got := DetectBudget(tt.prompt); got != tt.want {
				t.Errorf("DetectBudget(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestPriceBounds(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	tests := []struct {
		budget models.Budget
		want   models.PriceRange
	}{
		{models.BudgetAffordable, models.PriceRange{Max: 75}},
		{models.BudgetMidRange, models.PriceRange{Min: 50, Max: 200}},
		{models.BudgetLuxury, models.PriceRange{Min: 150}},
		{models.BudgetNone, models.PriceRange{}},
	}
	for _, tt := range tests {
		if got := cfg.PriceBounds(tt.budget); got != tt.want {
			t.Errorf("PriceBounds(%q) = %+v, want %+v", tt.budget, got, tt.want)
		}
	}
}
