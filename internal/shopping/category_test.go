// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"testing"

	"github.com/tomtom215/moodboard/internal/models"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	tests := []struct {
		title string
		want  models.Category
	}{
		{"Oversized Linen Blazer", models.CategoryOuterwear},
		{"Cable Knit Sweater Dress", models.CategoryDresses},
		{"Pearl Drop Earrings", models.CategoryJewelry},
		{"Gold Signet Ring", models.CategoryJewelry},
		{"Suede Ankle Boots", models.CategoryShoes},
		{"Bootcut Trousers", models.CategoryBottoms},
		{"Leather Chain Strap Bag", models.CategoryBags},
		{"Denim Jacket", models.CategoryOuterwear},
		{"High Rise Straight Jeans", models.CategoryBottoms},
		{"Ribbed Crop Top", models.CategoryTops},
		{"Ballet Flats", models.CategoryShoes},
		{"Silk Scarf", models.CategoryAccessories},
		{"Laptop Sleeve", models.CategoryOther},
		{"Scented Candle", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			if got := c.Classify(tt.title); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.title, got, tt.want)
			}
		})
	}
}

func TestClassifier_ClassifyProductFallsBackToRetailerCategory(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	p := &models.RawProduct{Title: "The Marlowe", RetailerCategory: "Jackets"}
	if got := c.ClassifyProduct(p); got != models.CategoryOuterwear {
		t.Errorf("ClassifyProduct = %s, want Outerwear", got)
	}

	p = &models.RawProduct{Title: "Wool Coat", RetailerCategory: "Dresses"}
	if got := c.ClassifyProduct(p); got != models.CategoryOuterwear {
		t.Errorf("title should win over retailer category, got %s", got)
	}
}

func TestEngine_DetectItemType(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, DefaultConfig(), &stubSearcher{}, nil)

	it, ok := eng.DetectItemType("looking for a blazer to wear with jeans")
	if !ok {
		t.Fatal("expected an item type")
	}
	if it.Category != models.CategoryOuterwear || it.Keyword != "blazer" {
		t.Errorf("DetectItemType = %+v, want Outerwear/blazer", it)
	}

	if _, ok := eng.DetectItemType("something moody for autumn"); ok {
		t.Error("expected no item type")
	}
}
