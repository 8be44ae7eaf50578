// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package shopping turns an aesthetic profile into a ranked, category-balanced
list of products.

RankProducts runs the stages in order:

	profile
	  -> QueryBuilder      bounded, deterministic search queries
	  -> Fetcher           concurrent search fan-out, dedup by identity key
	  -> TrustFilter       retailer allow-list with a backfill floor
	  -> ImageFilter       optional image URL validation
	  -> Ranker            oracle relevance scores, cutoffs, multi-key sort
	  -> Allocator         quota, round-robin, backfill category diversity
	  -> Refiner           bounded coherence swaps from a bench
	  -> final sort

Candidates are created once by the Fetcher and mutated in place by later
stages. Nothing is shared between calls.

# Failure Model

External failures never surface as errors. A failing search query
contributes no products, an oracle failure during ranking stamps every
candidate with the neutral score, and an oracle failure during refinement
leaves the selection unchanged. RankProducts only returns an error for
contract violations: a negative product budget (ErrInvalidMaxProducts) or a
profile without a name (models.ErrMalformedProfile).

# Ordering

Every sort is stable. The ranking key is

	(-relevance, -targeted, -brand tier, not on sale, price)

so re-sorting sorted output is a no-op. Duplicate products are resolved
first-seen in query order, independent of which search finished first.

# Testing

Searcher and Scorer are interfaces so deterministic stubs can replace the
real search API and model calls:

	eng, _ := shopping.NewEngine(shopping.DefaultConfig(), stubSearcher, stubScorer, zerolog.Nop())
	res, err := eng.RankProducts(ctx, shopping.Request{Profile: p, MaxProducts: 10})
*/
package shopping
