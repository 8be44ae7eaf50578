// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/models"
)

// Refiner asks the oracle which selected items clash with the rest and
// swaps a bounded number of them for bench alternatives.
type Refiner struct {
	scorer   Scorer
	enabled  bool
	minSize  int
	maxSent  int
	maxSwaps int
	logger   zerolog.Logger
}

// NewRefiner creates a refiner.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRefiner(scorer Scorer, cfg *Config, logger zerolog.Logger) *Refiner {
	return &Refiner{
		scorer:   scorer,
		enabled:  cfg.CoherenceEnabled && scorer != nil,
		minSize:  cfg.CoherenceMinSize,
		maxSent:  cfg.CoherenceMaxSent,
		maxSwaps: cfg.MaxSwaps,
		logger:   logger,
	}
}

// Refine returns a selection of the same length with at most maxSwaps
// items replaced. It runs only when the selection has at least minSize
// items. For each item the oracle marks "swap", the first bench candidate
// in the same category replaces it, or failing that the first unused bench
// candidate. With an empty bench the item stays. Decision indices are
// 1-based. Oracle failures leave the selection unchanged. The input slices are not modified.
func (r *Refiner) Refine(ctx context.Context, selected, bench []*models.Candidate, profile *models.AestheticProfile) ([]*models.Candidate, int) {
	out := append([]*models.Candidate(nil), selected...)
	if !r.enabled || len(selected) < r.minSize || len(bench) == 0 || r.maxSwaps == 0 {
		return out, 0
	}

	sent := out[:min(r.maxSent, len(out))]
	verdicts, err := r.scorer.ScoreBatch(ctx, models.OracleRequest{
		Mode:    models.OracleCoherence,
		Profile: profile,
		Items:   oracleItems(sent, true),
		Visual:  true,
	})
	if err != nil {
		r.logger.Warn().Err(err).Int("selected", len(selected)).Msg("coherence oracle failed, keeping selection")
		return out, 0
	}

	// decisions are requested 1-based; index 0 is out of range
	byPos := verdictsByPosition(verdicts, len(sent), 1)
	pool := append([]*models.Candidate(nil), bench...)
	swaps := 0

	for pos := 0; pos < len(sent) && swaps < r.maxSwaps && len(pool) > 0; pos++ {
		v, ok := byPos[pos]
		if !ok || !strings.EqualFold(strings.TrimSpace(v.Action), models.ActionSwap) {
			continue
		}

		original := out[pos]
		pick := 0
		for i, c := range pool {
			if c.Category == original.Category {
				pick = i
				break
			}
		}
		replacement := pool[pick]
		pool = append(pool[:pick], pool[pick+1:]...)

		replacement.SwappedIn = true
		replacement.Replaced = original.IdentityKey
		replacement.SwapReason = strings.TrimSpace(v.Reason)
		out[pos] = replacement
		swaps++

		r.logger.Debug().
			Str("removed", original.Title).
			Str("added", replacement.Title).
			Str("reason", replacement.SwapReason).
			Msg("coherence swap")
	}
	return out, swaps
}

// buildBench keeps up to size leftovers scoring at least threshold, in
// ranked order.
func buildBench(leftovers []*models.Candidate, threshold, size int) []*models.Candidate {
	bench := make([]*models.Candidate, 0, min(size, len(leftovers)))
	for _, c := range leftovers {
		if len(bench) >= size {
			break
		}
		if c.RelevanceScore >= threshold {
			bench = append(bench, c)
		}
	}
	return bench
}
