// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"github.com/tomtom215/moodboard/internal/cache"
	"github.com/tomtom215/moodboard/internal/models"
)

// categoryKeywords maps each category to the title words that identify it.
var categoryKeywords = map[models.Category][]string{
	models.CategoryTops: {
		"top", "blouse", "shirt", "tee", "t-shirt", "tank", "sweater", "hoodie",
		"pullover", "cami", "bodysuit", "turtleneck",
	},
	models.CategoryBottoms: {
		"pants", "jeans", "trousers", "shorts", "skirt", "leggings", "denim",
	},
	models.CategoryDresses: {
		"dress", "gown", "romper", "jumpsuit", "maxi", "midi",
	},
	models.CategoryOuterwear: {
		"jacket", "coat", "blazer", "cardigan", "vest", "parka", "puffer", "trench",
	},
	models.CategoryShoes: {
		"shoe", "boot", "sneaker", "sandal", "heel", "flat", "loafer", "mule",
		"slipper", "pump",
	},
	models.CategoryBags: {
		"bag", "purse", "tote", "clutch", "backpack", "crossbody", "handbag", "satchel",
	},
	models.CategoryJewelry: {
		"necklace", "earring", "bracelet", "ring", "jewelry", "chain", "pendant",
	},
	models.CategoryAccessories: {
		"scarf", "hat", "belt", "sunglasses", "watch", "headband", "beanie",
	},
}

// priorityRank orders categories for tie-breaks.
var priorityRank = func() map[models.Category]int {
	m := make(map[models.Category]int, len(models.CategoryPriority))
	for i, c := range models.CategoryPriority {
		m[c] = i
	}
	return m
}()

// Classifier assigns products to categories by whole-word keyword match.
// It is safe for concurrent use.
type Classifier struct {
	ac *cache.AhoCorasick
}

// NewClassifier builds the keyword automaton.
func NewClassifier() *Classifier {
	ac := cache.NewAhoCorasick()
	ac.WholeWords = true
	for _, cat := range models.CategoryPriority {
		ac.AddPatterns(categoryKeywords[cat], cat)
	}
	ac.Build()
	return &Classifier{ac: ac}
}

// Classify returns the category of a product title. When several keywords
// match, the one ending last wins since English product titles end with the
// head noun ("Cable Knit Sweater Dress" is a dress). Equal end offsets go to
// the higher priority category. Unmatched titles are Other.
func (c *Classifier) Classify(title string) models.Category {
	matches := c.ac.Search(title)
	if len(matches) == 0 {
		return models.CategoryOther
	}

	best := matches[0]
	for _, m := range matches[1:] {
		switch {
		case m.End > best.End:
			best = m
		case m.End == best.End && priorityRank[m.Data.(models.Category)] < priorityRank[best.Data.(models.Category)]:
			best = m
		}
	}
	return best.Data.(models.Category)
}

// ClassifyProduct classifies by title, falling back to the retailer's own
// category label.
func (c *Classifier) ClassifyProduct(p *models.RawProduct) models.Category {
	if cat := c.Classify(p.Title); cat != models.CategoryOther {
		return cat
	}
	if p.RetailerCategory != "" {
		return c.Classify(p.RetailerCategory)
	}
	return models.CategoryOther
}

// Detect returns the first item type mentioned in free text together with
// the keyword that matched.
func (c *Classifier) Detect(text string) (models.Category, string, bool) {
	m, ok := c.ac.SearchFirst(text)
	if !ok {
		return "", "", false
	}
	return m.Data.(models.Category), m.Pattern, true
}
