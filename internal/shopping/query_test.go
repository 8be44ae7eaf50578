// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"strings"
	"testing"

	"github.com/tomtom215/moodboard/internal/models"
)

func testBuilder() QueryBuilder {
	cfg := DefaultConfig()
	return QueryBuilder{
		MaxQueries:      cfg.MaxQueries,
		MaxSeedQueries:  cfg.MaxSeedQueries,
		MaxBrandQueries: cfg.MaxBrandQueries,
	}
}

func queryTexts(qs []Query) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Text
	}
	return out
}

func TestQueryBuilder_SeedModifiers(t *testing.T) {
	t.Parallel()

	p := &models.AestheticProfile{
		Name: "Coastal",
		SearchQueries: []string{
			"linen trousers", "cream knit", "Linen  Trousers", " ", "slip skirt",
			"trench coat", "loafers", "silk scarf", "straw tote",
		},
	}

	got := testBuilder().Build(QueryInput{Profile: p})
	want := []string{
		"trending linen trousers",
		"trending cream knit",
		"slip skirt street style",
		"trench coat street style",
		"statement loafers",
		"statement silk scarf",
	}
	if !equalStrings(queryTexts(got), want) {
		t.Fatalf("Build = %v, want %v", queryTexts(got), want)
	}
	for _, q := range got {
		if q.Targeted {
			t.Errorf("seed query %q should not be targeted", q.Text)
		}
	}
}

func TestQueryBuilder_KeyPiecesStandInForSeeds(t *testing.T) {
	t.Parallel()

	p := &models.AestheticProfile{Name: "Minimal", KeyPieces: []string{"white shirt", "loafers"}}
	got := queryTexts(testBuilder().Build(QueryInput{Profile: p}))
	want := []string{"trending white shirt", "trending loafers"}
	if !equalStrings(got, want) {
		t.Errorf("Build = %v, want %v", got, want)
	}
}

func TestQueryBuilder_ItemTypeQueries(t *testing.T) {
	t.Parallel()

	got := testBuilder().Build(QueryInput{
		Profile:  testProfile(),
		ItemType: &ItemType{Category: models.CategoryOuterwear, Keyword: "blazer"},
	})

	want := []string{
		"Quiet Luxury blazer",
		"understated blazer",
		"cream blazer",
		"cashmere blazer",
	}
	if !equalStrings(queryTexts(got), want) {
		t.Fatalf("Build = %v, want %v", queryTexts(got), want)
	}
	for _, q := range got {
		if !q.Targeted {
			t.Errorf("item type query %q should be targeted", q.Text)
		}
		if !strings.Contains(q.Text, "blazer") {
			t.Errorf("query %q does not name the item", q.Text)
		}
	}
}

func TestQueryBuilder_BrandQueries(t *testing.T) {
	t.Parallel()

	tiers := BrandTiers{
		TierAccessible:   {"Zara", "Mango"},
		TierMidRange:     {"Ganni", "COS"},
		TierAspirational: {"Toteme", "Khaite", "The Row"},
	}

	tests := []struct {
		name   string
		budget models.Budget
		want   []string
	}{
		{
			name:   "luxury uses aspirational brands",
			budget: models.BudgetLuxury,
			want:   []string{"Toteme trench coat", "Khaite loafers", "The Row trench coat"},
		},
		{
			name:   "affordable uses accessible brands",
			budget: models.BudgetAffordable,
			want:   []string{"Zara trench coat", "Mango loafers"},
		},
		{
			name:   "no budget mixes tiers",
			budget: models.BudgetNone,
			want:   []string{"Ganni trench coat", "Toteme loafers", "Zara trench coat", "COS loafers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := testProfile()
			p.SearchQueries = nil
			p.KeyPieces = []string{"trench coat", "loafers"}

			got := testBuilder().Build(QueryInput{Profile: p, Budget: tt.budget, Brands: tiers})

			// Key pieces stand in as seeds first.
			seeds := []string{"trending trench coat", "trending loafers"}
			want := append(seeds, tt.want...)
			if !equalStrings(queryTexts(got), want) {
				t.Fatalf("Build = %v, want %v", queryTexts(got), want)
			}
			for _, q := range got[len(seeds):] {
				if !q.Targeted {
					t.Errorf("brand query %q should be targeted", q.Text)
				}
			}
		})
	}
}

func TestPickBrands_EmptyTierFallsBackToMix(t *testing.T) {
	t.Parallel()

	tiers := BrandTiers{TierMidRange: {"Ganni"}, TierAspirational: {"Khaite"}}
	got := pickBrands(tiers, models.BudgetAffordable, 4)
	want := []string{"Ganni", "Khaite"}
	if !equalStrings(got, want) {
		t.Errorf("pickBrands = %v, want %v", got, want)
	}

	if got := pickBrands(BrandTiers{}, models.BudgetLuxury, 4); got != nil {
		t.Errorf("pickBrands with no brands = %v, want nil", got)
	}
	if got := pickBrands(tiers, models.BudgetNone, 0); got != nil {
		t.Errorf("pickBrands with n=0 = %v, want nil", got)
	}
}

func TestQueryBuilder_BrandQueriesUseItemKeywordWithoutPieces(t *testing.T) {
	t.Parallel()

	p := &models.AestheticProfile{Name: "Edgy"}
	got := testBuilder().Build(QueryInput{
		Profile:  p,
		ItemType: &ItemType{Category: models.CategoryShoes, Keyword: "boots"},
		Budget:   models.BudgetLuxury,
		Brands:   BrandTiers{TierAspirational: {"Khaite"}},
	})
	want := []string{"Edgy boots", "Khaite boots"}
	if !equalStrings(queryTexts(got), want) {
		t.Errorf("Build = %v, want %v", queryTexts(got), want)
	}
}

func TestQueryBuilder_Bounds(t *testing.T) {
	t.Parallel()

	p := testProfile()
	p.SearchQueries = []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}
	tiers := BrandTiers{TierMidRange: {"Ganni", "COS", "Vince", "Theory", "Sezane"}}

	b := testBuilder()
	b.MaxQueries = 8
	got := b.Build(QueryInput{Profile: p, Brands: tiers})
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}

	seen := make(map[string]bool)
	for _, q := range got {
		key := strings.ToLower(q.Text)
		if q.Text == "" || seen[key] {
			t.Errorf("empty or duplicate query %q", q.Text)
		}
		seen[key] = true
	}
}

func TestQueryBuilder_DedupAcrossSources(t *testing.T) {
	t.Parallel()

	p := &models.AestheticProfile{
		Name:          "Mixed",
		SearchQueries: []string{"ganni  coat"},
		KeyPieces:     []string{"coat"},
	}
	b := testBuilder()
	// "Trending Ganni coat" repeats the seed query up to case and spacing.
	got := b.Build(QueryInput{Profile: p, Brands: BrandTiers{TierMidRange: {"Trending Ganni"}}})
	want := []string{"trending ganni coat"}
	if !equalStrings(queryTexts(got), want) {
		t.Errorf("Build = %v, want %v", queryTexts(got), want)
	}
}

func TestQueryBuilder_FallbackForSparseProfile(t *testing.T) {
	t.Parallel()

	got := testBuilder().Build(QueryInput{Profile: &models.AestheticProfile{Name: "Blank"}})
	if !equalStrings(queryTexts(got), fallbackQueries) {
		t.Errorf("Build = %v, want fallback %v", queryTexts(got), fallbackQueries)
	}
}

func TestQueryBuilder_Deterministic(t *testing.T) {
	t.Parallel()

	in := QueryInput{
		Profile: testProfile(),
		Budget:  models.BudgetMidRange,
		Brands:  BrandTiers{TierMidRange: {"Ganni"}, TierAccessible: {"Zara"}},
	}
	first := queryTexts(testBuilder().Build(in))
	for range 5 {
		if got := queryTexts(testBuilder().Build(in)); !equalStrings(got, first) {
			t.Fatalf("Build not deterministic: %v vs %v", got, first)
		}
	}
}
