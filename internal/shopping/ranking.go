// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/models"
)

const (
	minScore = 0
	maxScore = 10
)

// errNoScorer is returned by scoreBatch when the engine has no oracle.
var errNoScorer = errors.New("no scorer configured")

// Ranker assigns oracle relevance scores and orders candidates.
type Ranker struct {
	scorer         Scorer
	visualBatch    int
	textBatch      int
	visualMinScore int
	textMinScore   int
	neutralScore   int
	tailScore      int
	logger         zerolog.Logger
}

// NewRanker creates a ranker. scorer may be nil, in which case every
// candidate gets the neutral score.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRanker(scorer Scorer, cfg *Config, logger zerolog.Logger) *Ranker {
	return &Ranker{
		scorer:         scorer,
		visualBatch:    cfg.VisualBatchSize,
		textBatch:      cfg.TextBatchSize,
		visualMinScore: cfg.VisualMinScore,
		textMinScore:   cfg.TextMinScore,
		neutralScore:   cfg.NeutralScore,
		tailScore:      cfg.TailScore,
		logger:         logger,
	}
}

// Rank scores candidates and returns them sorted.
//
// The first visualBatch candidates are scored with their images and the
// next textBatch from text alone. Anything beyond gets tailScore and is
// never cut. Items the oracle leaves out get neutralScore. Scored items
// below the batch cutoff (visualMinScore or textMinScore) are dropped.
//
// If any oracle call fails the whole step degrades: the input is returned
// in its original order with every candidate stamped neutralScore.
func (r *Ranker) Rank(ctx context.Context, candidates []*models.Candidate, profile *models.AestheticProfile) []*models.Candidate {
	if len(candidates) == 0 {
		return candidates
	}

	visualEnd := min(r.visualBatch, len(candidates))
	textEnd := min(visualEnd+r.textBatch, len(candidates))
	visual := candidates[:visualEnd]
	text := candidates[visualEnd:textEnd]
	tail := candidates[textEnd:]

	visualScores, err := r.scoreBatch(ctx, visual, profile, true)
	if err != nil {
		return r.degrade(candidates, err)
	}
	var textScores map[int]int
	if len(text) > 0 {
		if textScores, err = r.scoreBatch(ctx, text, profile, false); err != nil {
			return r.degrade(candidates, err)
		}
	}

	kept := make([]*models.Candidate, 0, len(candidates))
	kept = r.applyScores(kept, visual, visualScores, r.visualMinScore)
	kept = r.applyScores(kept, text, textScores, r.textMinScore)
	for _, c := range tail {
		c.SetScore(r.tailScore)
		kept = append(kept, c)
	}

	SortCandidates(kept)

	r.logger.Debug().
		Int("input", len(candidates)).
		Int("kept", len(kept)).
		Int("visual", len(visual)).
		Int("text", len(text)).
		Int("tail", len(tail)).
		Msg("relevance ranking complete")
	return kept
}

// applyScores stamps scores onto batch and appends survivors to dst.
// Omitted items take the neutral score and bypass the cutoff.
func (r *Ranker) applyScores(dst, batch []*models.Candidate, scores map[int]int, cutoff int) []*models.Candidate {
	for i, c := range batch {
		s, ok := scores[i]
		if !ok {
			c.SetScore(r.neutralScore)
			dst = append(dst, c)
			continue
		}
		c.SetScore(s)
		if s >= cutoff {
			dst = append(dst, c)
		}
	}
	return dst
}

func (r *Ranker) degrade(candidates []*models.Candidate, err error) []*models.Candidate {
	r.logger.Warn().Err(err).Int("candidates", len(candidates)).Msg("relevance oracle failed, using neutral scores")
	for _, c := range candidates {
		c.SetScore(r.neutralScore)
	}
	return candidates
}

// scoreBatch asks the oracle for relevance scores and returns them keyed by
// 0-based batch position.
func (r *Ranker) scoreBatch(ctx context.Context, batch []*models.Candidate, profile *models.AestheticProfile, visual bool) (map[int]int, error) {
	if r.scorer == nil {
		return nil, errNoScorer
	}

	verdicts, err := r.scorer.ScoreBatch(ctx, models.OracleRequest{
		Mode:    models.OracleRelevance,
		Profile: profile,
		Items:   oracleItems(batch, visual),
		Visual:  visual,
	})
	if err != nil {
		return nil, fmt.Errorf("score %d candidates: %w", len(batch), err)
	}

	scores := make(map[int]int, len(verdicts))
	for i, v := range normalizeVerdicts(verdicts, len(batch)) {
		scores[i] = clampScore(v.Score)
	}
	return scores, nil
}

// oracleItems summarizes candidates with 1-based positions.
func oracleItems(batch []*models.Candidate, withImages bool) []models.OracleItem {
	items := make([]models.OracleItem, len(batch))
	for i, c := range batch {
		items[i] = models.OracleItem{
			Position: i + 1,
			Title:    c.Title,
			Brand:    c.Brand,
			Price:    c.Price,
			Category: c.Category,
		}
		if withImages {
			items[i].ImageURL = c.ImageURL
		}
	}
	return items
}

// normalizeVerdicts maps oracle indices onto 0-based positions within a
// batch of size n. A response is read as 0-based only when it contains
// index 0 and not index n, otherwise as 1-based.
func normalizeVerdicts(verdicts []models.OracleVerdict, n int) map[int]models.OracleVerdict {
	hasZero, hasN := false, false
	for _, v := range verdicts {
		hasZero = hasZero || v.Index == 0
		hasN = hasN || v.Index == n
	}
	base := 1
	if hasZero && !hasN {
		base = 0
	}
	return verdictsByPosition(verdicts, n, base)
}

// verdictsByPosition maps indices counted from base onto 0-based positions.
// Out-of-range indices are ignored and the first verdict for a position wins.
func verdictsByPosition(verdicts []models.OracleVerdict, n, base int) map[int]models.OracleVerdict {
	out := make(map[int]models.OracleVerdict, len(verdicts))
	for _, v := range verdicts {
		pos := v.Index - base
		if pos < 0 || pos >= n {
			continue
		}
		if _, dup := out[pos]; dup {
			continue
		}
		out[pos] = v
	}
	return out
}

func clampScore(s int) int {
	return max(minScore, min(maxScore, s))
}

// SortCandidates orders candidates in place by relevance descending, then
// targeted-query hits first, then brand tier descending, then on-sale first,
// then price ascending. Ties keep input order.
func SortCandidates(c []*models.Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		return lessCandidate(c[i], c[j])
	})
}

func lessCandidate(a, b *models.Candidate) bool {
	if a.RelevanceScore != b.RelevanceScore {
		return a.RelevanceScore > b.RelevanceScore
	}
	if a.FromTargetedQuery != b.FromTargetedQuery {
		return a.FromTargetedQuery
	}
	if a.BrandScore != b.BrandScore {
		return a.BrandScore > b.BrandScore
	}
	if a.OnSaleNow != b.OnSaleNow {
		return a.OnSaleNow
	}
	return a.Price < b.Price
}
