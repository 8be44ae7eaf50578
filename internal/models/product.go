// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the closed set of product categories used for diversity.
type Category string

const (
	CategoryTops        Category = "Tops"
	CategoryBottoms     Category = "Bottoms"
	CategoryDresses     Category = "Dresses"
	CategoryOuterwear   Category = "Outerwear"
	CategoryShoes       Category = "Shoes"
	CategoryBags        Category = "Bags"
	CategoryJewelry     Category = "Jewelry"
	CategoryAccessories Category = "Accessories"
	CategoryOther       Category = "Other"
)

// CategoryPriority is the fixed sweep order: clothing essentials, then
// accessories, then Other.
var CategoryPriority = []Category{
	CategoryTops,
	CategoryBottoms,
	CategoryDresses,
	CategoryOuterwear,
	CategoryShoes,
	CategoryBags,
	CategoryJewelry,
	CategoryAccessories,
	CategoryOther,
}

// ParseItemType maps a user supplied item type onto a category.
// Other is not a valid item type.
func ParseItemType(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range CategoryPriority {
		if c != CategoryOther && strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Budget is the price tier requested by the user.
type Budget string

const (
	BudgetNone       Budget = ""
	BudgetAffordable Budget = "affordable"
	BudgetMidRange   Budget = "mid-range"
	BudgetLuxury     Budget = "luxury"
)

// ErrInvalidBudget is returned by ParseBudget for an unrecognized tier.
var ErrInvalidBudget = errors.New("unknown budget")

// ParseBudget accepts the API spellings of a budget.
func ParseBudget(s string) (Budget, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return BudgetNone, nil
	case "affordable":
		return BudgetAffordable, nil
	case "mid-range", "mid_range", "midrange":
		return BudgetMidRange, nil
	case "luxury":
		return BudgetLuxury, nil
	default:
		return BudgetNone, fmt.Errorf("%w %q", ErrInvalidBudget, s)
	}
}

// RawProduct is one record returned by the product search collaborator.
type RawProduct struct {
	ID               string  `json:"id"`
	Title            string  `json:"name"`
	Brand            string  `json:"brand"`
	Price            float64 `json:"price"`
	OriginalPrice    float64 `json:"original_price"`
	Currency         string  `json:"currency"`
	Retailer         string  `json:"retailer"`
	ImageURL         string  `json:"image_url"`
	ProductURL       string  `json:"product_url"`
	SourceQuery      string  `json:"match_reason"`
	Source           string  `json:"source,omitempty"`            // collaborator name, e.g. "shopstyle"
	RetailerCategory string  `json:"retailer_category,omitempty"` // category as labeled by the retailer
	InStock          bool    `json:"in_stock"`
}

// Normalize applies the record defaults once at the boundary.
func (r *RawProduct) Normalize() {
	if r.Price < 0 {
		r.Price = 0
	}
	if r.OriginalPrice <= 0 {
		r.OriginalPrice = r.Price
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	r.Title = strings.TrimSpace(r.Title)
	r.Brand = strings.TrimSpace(r.Brand)
	r.Retailer = strings.TrimSpace(r.Retailer)
}

// OnSale reports whether the product is discounted.
func (r *RawProduct) OnSale() bool {
	return r.OriginalPrice > r.Price
}

// IdentityKey builds the dedup key for a record. The product URL is part of
// the key because different queries can return colliding partial ids.
func IdentityKey(source, id, productURL string) string {
	return source + ":" + id + "|" + productURL
}

// Candidate is a RawProduct annotated by the pipeline stages. One instance is
// created per fetched product and mutated in place until the request ends.
type Candidate struct {
	RawProduct

	IdentityKey       string   `json:"identity_key"`
	OnSaleNow         bool     `json:"on_sale"`
	RetailerTrusted   bool     `json:"retailer_trusted"`
	BrandScore        int      `json:"brand_score"` // tier rank, 0 = unranked
	Category          Category `json:"category"`
	RelevanceScore    int      `json:"relevance_score"`
	Scored            bool     `json:"-"`
	FromTargetedQuery bool     `json:"from_targeted_query"`
	SwappedIn         bool     `json:"swapped_in,omitempty"`
	Replaced          string   `json:"replaced,omitempty"` // identity key of the item this one displaced
	SwapReason        string   `json:"swap_reason,omitempty"`
}

// NewCandidate normalizes raw and wraps it.
func NewCandidate(raw RawProduct) *Candidate {
	raw.Normalize()
	return &Candidate{
		RawProduct:  raw,
		IdentityKey: IdentityKey(raw.Source, raw.ID, raw.ProductURL),
		OnSaleNow:   raw.OnSale(),
	}
}

// SetScore stamps a relevance score.
func (c *Candidate) SetScore(score int) {
	c.RelevanceScore = score
	c.Scored = true
}
