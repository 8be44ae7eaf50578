// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"context"

	"github.com/tomtom215/moodboard/internal/models"
)

// Searcher is the product search collaborator. It must be safe for
// concurrent use.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) ([]models.RawProduct, error)
}

// Scorer is the scoring oracle used for relevance and coherence decisions.
// Verdict indices may be 0- or 1-based; callers normalize them.
type Scorer interface {
	ScoreBatch(ctx context.Context, req models.OracleRequest) ([]models.OracleVerdict, error)
}

// ImageFilter drops candidates whose product image is unusable. It must
// return input order and never fail.
type ImageFilter interface {
	Filter(ctx context.Context, candidates []*models.Candidate) []*models.Candidate
}
