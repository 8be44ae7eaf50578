// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"github.com/tomtom215/moodboard/internal/cache"
	"github.com/tomtom215/moodboard/internal/models"
)

var budgetPhrases = map[models.Budget][]string{
	models.BudgetAffordable: {"affordable", "cheap", "budget", "under $100", "inexpensive", "low cost"},
	models.BudgetLuxury:     {"luxury", "designer", "high-end", "high end", "splurge"},
	models.BudgetMidRange:   {"mid-range", "mid range", "midrange", "moderately priced"},
}

// budgetPrecedence resolves prompts that mention several budgets.
var budgetPrecedence = []models.Budget{
	models.BudgetAffordable,
	models.BudgetLuxury,
	models.BudgetMidRange,
}

var budgetMatcher = func() *cache.AhoCorasick {
	ac := cache.NewAhoCorasick()
	ac.WholeWords = true
	for _, b := range budgetPrecedence {
		ac.AddPatterns(budgetPhrases[b], b)
	}
	ac.Build()
	return ac
}()

// DetectBudget infers a budget tier from a free-text prompt. It returns
// BudgetNone when nothing matches.
func DetectBudget(prompt string) models.Budget {
	found := make(map[models.Budget]bool)
	for _, m := range budgetMatcher.Search(prompt) {
		found[m.Data.(models.Budget)] = true
	}
	for _, b := range budgetPrecedence {
		if found[b] {
			return b
		}
	}
	return models.BudgetNone
}

// ItemType is an item category detected in a prompt with the word that
// named it.
type ItemType struct {
	Category models.Category
	Keyword  string
}

// DetectItemType returns the first item type mentioned in prompt.
func (e *Engine) DetectItemType(prompt string) (ItemType, bool) {
	cat, kw, ok := e.classifier.Detect(prompt)
	if !ok {
		return ItemType{}, false
	}
	return ItemType{Category: cat, Keyword: kw}, true
}
