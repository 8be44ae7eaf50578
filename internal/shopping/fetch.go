// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moodboard/internal/models"
)

// Fetcher runs every query against the Searcher concurrently and merges the
// results into deduplicated candidates.
type Fetcher struct {
	searcher   Searcher
	classifier *Classifier
	limit      int
	maxWorkers int
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewFetcher creates a fetcher.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewFetcher(searcher Searcher, classifier *Classifier, cfg *Config, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		searcher:   searcher,
		classifier: classifier,
		limit:      cfg.LimitPerQuery,
		maxWorkers: cfg.MaxWorkers,
		timeout:    cfg.QueryTimeout,
		logger:     logger,
	}
}

// Fetch searches all queries with at most maxWorkers in flight. A failing
// query is logged and contributes nothing. Each worker writes only its own
// result slot, and slots are merged in query order once every worker has
// returned, so the product kept for a duplicate identity key is always the
// one from the earliest query.
//
// Products outside price are dropped even if the searcher ignored the bound.
// Candidates are stamped with brand score, category and targeted flag.
func (f *Fetcher) Fetch(ctx context.Context, queries []Query, price models.PriceRange, brands *BrandIndex) []*models.Candidate {
	if len(queries) == 0 {
		return nil
	}

	results := make([][]models.RawProduct, len(queries))

	var g errgroup.Group
	g.SetLimit(min(len(queries), f.maxWorkers))
	for i, q := range queries {
		g.Go(func() error {
			results[i] = f.searchOne(ctx, q, price)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return f.merge(queries, results, price, brands)
}

func (f *Fetcher) searchOne(ctx context.Context, q Query, price models.PriceRange) []models.RawProduct {
	qctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	products, err := f.searcher.Search(qctx, models.SearchRequest{
		Query: q.Text,
		Limit: f.limit,
		Price: price,
	})
	if err != nil {
		f.logger.Warn().Err(err).Str("query", q.Text).Msg("search query failed")
		return nil
	}
	return products
}

// merge is separate from Fetch so dedup can be exercised without goroutines.
func (f *Fetcher) merge(queries []Query, results [][]models.RawProduct, price models.PriceRange, brands *BrandIndex) []*models.Candidate {
	seen := make(map[string]bool)
	var out []*models.Candidate

	for i, products := range results {
		for _, raw := range products {
			if raw.SourceQuery == "" {
				raw.SourceQuery = queries[i].Text
			}
			c := models.NewCandidate(raw)
			if !price.Contains(c.Price) {
				continue
			}
			if seen[c.IdentityKey] {
				continue
			}
			seen[c.IdentityKey] = true

			c.FromTargetedQuery = queries[i].Targeted
			c.BrandScore = brands.Score(&c.RawProduct)
			c.Category = f.classifier.ClassifyProduct(&c.RawProduct)
			out = append(out, c)
		}
	}
	return out
}
