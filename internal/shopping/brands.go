// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"sort"
	"strings"

	"github.com/tomtom215/moodboard/internal/cache"
	"github.com/tomtom215/moodboard/internal/models"
)

// BrandTier ranks brands by price positioning. The value is the brand score
// stamped on candidates; 0 means unranked.
type BrandTier int

const (
	TierNone         BrandTier = 0
	TierAccessible   BrandTier = 1
	TierMidRange     BrandTier = 2
	TierAspirational BrandTier = 3
)

func (t BrandTier) String() string {
	switch t {
	case TierAccessible:
		return "accessible"
	case TierMidRange:
		return "mid_range"
	case TierAspirational:
		return "aspirational"
	default:
		return "none"
	}
}

// ParseTier accepts the tier names a profile may use.
func ParseTier(name string) (BrandTier, bool) {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "-", "_"))) {
	case "accessible", "affordable", "budget":
		return TierAccessible, true
	case "mid_range", "midrange", "mid", "premium":
		return TierMidRange, true
	case "aspirational", "luxury", "designer", "high_end":
		return TierAspirational, true
	default:
		return TierNone, false
	}
}

// BrandTiers holds brand names per tier in the order they were given.
type BrandTiers map[BrandTier][]string

// ParseBrandTiers normalizes a tier-name keyed mapping. Unknown tier names
// are dropped and duplicate brands keep their first tier.
func ParseBrandTiers(raw map[string][]string) BrandTiers {
	tiers := make(BrandTiers)
	seen := make(map[string]bool)

	// Sorted so duplicate brands resolve deterministically.
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tier, ok := ParseTier(name)
		if !ok {
			continue
		}
		for _, brand := range raw[name] {
			brand = strings.TrimSpace(brand)
			key := strings.ToLower(brand)
			if brand == "" || seen[key] {
				continue
			}
			seen[key] = true
			tiers[tier] = append(tiers[tier], brand)
		}
	}
	return tiers
}

// Empty reports whether no tier has brands.
func (bt BrandTiers) Empty() bool {
	for _, brands := range bt {
		if len(brands) > 0 {
			return false
		}
	}
	return true
}

// brandCatalogue backs scoring when a profile names few brands.
var brandCatalogue = BrandTiers{
	TierAccessible: {
		"Zara", "H&M", "Mango", "Uniqlo", "ASOS", "Gap", "Old Navy", "Abercrombie & Fitch",
		"Urban Outfitters", "Topshop", "Free People",
	},
	TierMidRange: {
		"Madewell", "J.Crew", "Everlane", "Reformation", "COS", "& Other Stories", "Aritzia",
		"Sezane", "Ganni", "Anthropologie", "Vince", "Theory", "Faherty",
	},
	TierAspirational: {
		"Toteme", "The Row", "Khaite", "Acne Studios", "Celine", "Bottega Veneta", "Loewe",
		"Jacquemus", "Isabel Marant", "Saint Laurent", "Prada", "Max Mara", "Chloe",
	},
}

// BrandIndex scores products by brand tier. Brands named by the profile take
// precedence over the built-in catalogue.
type BrandIndex struct {
	tiers map[string]BrandTier // lowercased brand -> tier
	names map[string]string    // lowercased brand -> display name
	ac    *cache.AhoCorasick
}

// NewBrandIndex builds an index from profile tiers plus the catalogue.
func NewBrandIndex(profile BrandTiers) *BrandIndex {
	idx := &BrandIndex{
		tiers: make(map[string]BrandTier),
		names: make(map[string]string),
		ac:    cache.NewAhoCorasick(),
	}
	idx.ac.WholeWords = true

	for _, src := range []BrandTiers{profile, brandCatalogue} {
		for _, tier := range []BrandTier{TierAspirational, TierMidRange, TierAccessible} {
			for _, brand := range src[tier] {
				key := strings.ToLower(brand)
				if _, ok := idx.tiers[key]; ok {
					continue
				}
				idx.tiers[key] = tier
				idx.names[key] = brand
				idx.ac.AddPattern(key, key)
			}
		}
	}
	idx.ac.Build()
	return idx
}

// Score returns the tier of a product's brand. A brand missing from the
// record is inferred from the title and written back.
func (b *BrandIndex) Score(p *models.RawProduct) int {
	if b == nil {
		return int(TierNone)
	}
	if p.Brand == "" {
		key, ok := b.lookup(p.Title)
		if !ok {
			return int(TierNone)
		}
		p.Brand = b.names[key]
		return int(b.tiers[key])
	}
	if tier, ok := b.tiers[strings.ToLower(p.Brand)]; ok {
		return int(tier)
	}
	if key, ok := b.lookup(p.Brand); ok {
		return int(b.tiers[key])
	}
	return int(TierNone)
}

// lookup finds the longest known brand named in text.
func (b *BrandIndex) lookup(text string) (string, bool) {
	var best string
	for _, m := range b.ac.Search(text) {
		if key := m.Data.(string); len(key) > len(best) {
			best = key
		}
	}
	return best, best != ""
}
