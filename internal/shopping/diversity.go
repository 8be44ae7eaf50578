// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"sort"

	"github.com/tomtom215/moodboard/internal/models"
)

// Allocator builds a category-balanced selection from ranked candidates.
type Allocator struct {
	MinPerCategory int
	MaxPerCategory int
	Classifier     *Classifier
}

// Allocate selects min(maxProducts, len(ranked)) candidates in four steps:
//
//  1. seed: walking categories in priority order, take up to MinPerCategory
//     of the best from each non-empty category
//  2. round-robin: sweep the same order adding one more per category until
//     the budget is met, every category is at MaxPerCategory or exhausted,
//     or a sweep adds nothing
//  3. backfill: fill any remaining slots with the best leftovers regardless
//     of category
//  4. stable sort by relevance
//
// A category only exceeds MaxPerCategory in step 3, which runs only when
// every other category is exhausted. The second result holds the unselected
// candidates in ranked order.
func (a *Allocator) Allocate(ranked []*models.Candidate, maxProducts int) (selected, leftovers []*models.Candidate) {
	n := min(maxProducts, len(ranked))
	if n <= 0 {
		return nil, ranked
	}

	groups := make(map[models.Category][]*models.Candidate)
	for _, c := range ranked {
		if c.Category == "" {
			c.Category = a.classify(c)
		}
		groups[c.Category] = append(groups[c.Category], c)
	}
	for _, g := range groups {
		sortByRelevance(g)
	}

	selected = make([]*models.Candidate, 0, n)
	picked := make(map[*models.Candidate]bool, n)
	taken := make(map[models.Category]int)
	take := func(cat models.Category) {
		c := groups[cat][taken[cat]]
		taken[cat]++
		picked[c] = true
		selected = append(selected, c)
	}

	seedQuota := min(a.MinPerCategory, a.MaxPerCategory)
	for _, cat := range models.CategoryPriority {
		for taken[cat] < min(seedQuota, len(groups[cat])) && len(selected) < n {
			take(cat)
		}
	}

	for len(selected) < n {
		added := false
		for _, cat := range models.CategoryPriority {
			if len(selected) >= n {
				break
			}
			if taken[cat] >= a.MaxPerCategory || taken[cat] >= len(groups[cat]) {
				continue
			}
			take(cat)
			added = true
		}
		if !added {
			break
		}
	}

	if len(selected) < n {
		rest := make([]*models.Candidate, 0, len(ranked)-len(selected))
		for _, c := range ranked {
			if !picked[c] {
				rest = append(rest, c)
			}
		}
		sortByRelevance(rest)
		for _, c := range rest[:n-len(selected)] {
			picked[c] = true
			selected = append(selected, c)
		}
	}

	sortByRelevance(selected)

	leftovers = make([]*models.Candidate, 0, len(ranked)-len(selected))
	for _, c := range ranked {
		if !picked[c] {
			leftovers = append(leftovers, c)
		}
	}
	return selected, leftovers
}

func (a *Allocator) classify(c *models.Candidate) models.Category {
	if a.Classifier == nil {
		return models.CategoryOther
	}
	return a.Classifier.ClassifyProduct(&c.RawProduct)
}

func sortByRelevance(c []*models.Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].RelevanceScore > c[j].RelevanceScore
	})
}
