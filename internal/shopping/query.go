// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"strings"

	"github.com/tomtom215/moodboard/internal/models"
)

// Query is one product search string. Targeted queries were built around a
// detected item type or a named brand.
type Query struct {
	Text     string `json:"text"`
	Targeted bool   `json:"targeted"`
}

// fallbackQueries are used when a profile yields nothing searchable.
var fallbackQueries = []string{
	"trending outfit essentials",
	"statement accessories",
	"wardrobe staples",
}

// QueryBuilder turns a profile into a bounded, ordered list of distinct
// search queries. Output is a pure function of its inputs.
type QueryBuilder struct {
	MaxQueries      int
	MaxSeedQueries  int
	MaxBrandQueries int
}

// QueryInput is everything the builder reads.
type QueryInput struct {
	Profile  *models.AestheticProfile
	ItemType *ItemType
	Budget   models.Budget
	Brands   BrandTiers
}

// Build returns at most MaxQueries non-empty, case-insensitively distinct
// queries.
func (b QueryBuilder) Build(in QueryInput) []Query {
	var base []Query
	if in.ItemType != nil {
		base = b.itemTypeQueries(in.Profile, in.ItemType)
	} else {
		base = b.seedQueries(in.Profile)
	}

	queries := make([]Query, 0, b.MaxQueries)
	seen := make(map[string]bool)
	add := func(q Query) {
		q.Text = strings.Join(strings.Fields(q.Text), " ")
		key := strings.ToLower(q.Text)
		if q.Text == "" || seen[key] || len(queries) >= b.MaxQueries {
			return
		}
		seen[key] = true
		queries = append(queries, q)
	}

	for _, q := range base {
		add(q)
	}
	for _, q := range b.brandQueries(in) {
		add(q)
	}
	if len(queries) == 0 {
		for _, q := range fallbackQueries {
			add(Query{Text: q})
		}
	}
	return queries
}

// seedQueries applies positional modifiers to the profile's own queries.
// Key pieces stand in when the profile has no seeds.
func (b QueryBuilder) seedQueries(p *models.AestheticProfile) []Query {
	seeds := distinct(p.SearchQueries, b.MaxSeedQueries)
	if len(seeds) == 0 {
		seeds = distinct(p.KeyPieces, b.MaxSeedQueries)
	}

	out := make([]Query, 0, len(seeds))
	for i, s := range seeds {
		out = append(out, Query{Text: withModifier(i, s)})
	}
	return out
}

// withModifier decorates a seed by position: the first two are trending,
// the next two editorial, the rest statement pieces.
func withModifier(pos int, q string) string {
	switch {
	case pos < 2:
		return "trending " + q
	case pos < 4:
		return q + " street style"
	default:
		return "statement " + q
	}
}

// itemTypeQueries replaces the seeds with queries that all name the
// requested item.
func (b QueryBuilder) itemTypeQueries(p *models.AestheticProfile, it *ItemType) []Query {
	kw := it.Keyword
	if kw == "" {
		kw = strings.ToLower(string(it.Category))
	}

	var prefixes []string
	prefixes = append(prefixes, p.Name, p.Mood)
	if colors := p.ColorNames(); len(colors) > 0 {
		prefixes = append(prefixes, colors[0])
	}
	if len(p.Textures) > 0 {
		prefixes = append(prefixes, p.Textures[0])
	}

	out := make([]Query, 0, len(prefixes)+1)
	for _, prefix := range prefixes {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			out = append(out, Query{Text: prefix + " " + kw, Targeted: true})
		}
	}
	if len(out) == 0 {
		out = append(out, Query{Text: "trending " + kw, Targeted: true})
	}
	return out
}

// brandQueries pairs brands chosen by budget with the profile's key pieces
// round-robin.
func (b QueryBuilder) brandQueries(in QueryInput) []Query {
	brands := pickBrands(in.Brands, in.Budget, b.MaxBrandQueries)
	if len(brands) == 0 {
		return nil
	}

	pieces := distinct(in.Profile.KeyPieces, 0)
	if len(pieces) == 0 && in.ItemType != nil {
		pieces = []string{in.ItemType.Keyword}
	}

	out := make([]Query, 0, len(brands))
	for i, brand := range brands {
		text := brand
		if len(pieces) > 0 {
			text += " " + pieces[i%len(pieces)]
		}
		out = append(out, Query{Text: text, Targeted: true})
	}
	return out
}

// pickBrands selects up to n brands for a budget. Affordable budgets use
// accessible brands and luxury budgets aspirational ones. Other budgets, or
// a budget whose tier is empty, draw from mid-range, aspirational and
// accessible in turn.
func pickBrands(tiers BrandTiers, budget models.Budget, n int) []string {
	if n <= 0 || tiers.Empty() {
		return nil
	}

	var single BrandTier
	switch budget {
	case models.BudgetAffordable:
		single = TierAccessible
	case models.BudgetLuxury:
		single = TierAspirational
	}
	if single != TierNone && len(tiers[single]) > 0 {
		return head(tiers[single], n)
	}

	mix := []BrandTier{TierMidRange, TierAspirational, TierAccessible}
	var out []string
	for round := 0; len(out) < n; round++ {
		added := false
		for _, t := range mix {
			if round < len(tiers[t]) && len(out) < n {
				out = append(out, tiers[t][round])
				added = true
			}
		}
		if !added {
			break
		}
	}
	return out
}

// distinct trims, drops blanks and case-insensitive duplicates, and caps the
// result at limit when limit > 0.
func distinct(in []string, limit int) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
