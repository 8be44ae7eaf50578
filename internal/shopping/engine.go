// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/logging"
	"github.com/tomtom215/moodboard/internal/metrics"
	"github.com/tomtom215/moodboard/internal/models"
)

// ErrInvalidMaxProducts is returned for a negative product budget.
var ErrInvalidMaxProducts = errors.New("max products must not be negative")

// Request is one RankProducts call.
type Request struct {
	Profile     *models.AestheticProfile
	MaxProducts int
	Budget      models.Budget
	ItemType    *ItemType

	// BrandTiers overrides the profile's target brands when non-nil.
	BrandTiers map[string][]string
}

// Result is the ranked selection plus what produced it.
type Result struct {
	Products []*models.Candidate
	Queries  []Query
	Fetched  int // unique candidates before filtering
	Swaps    int
}

// Engine wires the pipeline stages. It holds no per-request state and is
// safe for concurrent use.
type Engine struct {
	cfg         Config
	classifier  *Classifier
	builder     QueryBuilder
	fetcher     *Fetcher
	trust       *TrustFilter
	imageFilter ImageFilter
	ranker      *Ranker
	allocator   *Allocator
	refiner     *Refiner
	logger      zerolog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithImageFilter enables image validation after the trust filter.
func WithImageFilter(f ImageFilter) Option {
	return func(e *Engine) { e.imageFilter = f }
}

// NewEngine validates cfg and builds the stages around the given
// collaborators. scorer may be nil, which disables oracle calls.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg Config, searcher Searcher, scorer Scorer, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}

	logger = logger.With().Str("component", "shopping").Logger()
	classifier := NewClassifier()

	e := &Engine{
		cfg:        cfg,
		classifier: classifier,
		builder: QueryBuilder{
			MaxQueries:      cfg.MaxQueries,
			MaxSeedQueries:  cfg.MaxSeedQueries,
			MaxBrandQueries: cfg.MaxBrandQueries,
		},
		fetcher: NewFetcher(searcher, classifier, &cfg, logger),
		trust:   NewTrustFilter(cfg.TrustedRetailers, cfg.TrustFloor),
		ranker:  NewRanker(scorer, &cfg, logger),
		allocator: &Allocator{
			MinPerCategory: cfg.MinPerCategory,
			MaxPerCategory: cfg.MaxPerCategory,
			Classifier:     classifier,
		},
		refiner: NewRefiner(scorer, &cfg, logger),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine policy.
func (e *Engine) Config() Config { return e.cfg }

// RankProducts runs the full pipeline. It returns an error only for a
// negative MaxProducts or a malformed profile. External failures degrade
// the result, possibly to an empty product list.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) RankProducts(ctx context.Context, req Request) (*Result, error) {
	if req.MaxProducts < 0 {
		metrics.RecordPipelineRun(0, ErrInvalidMaxProducts)
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxProducts, req.MaxProducts)
	}
	if err := req.Profile.Validate(); err != nil {
		metrics.RecordPipelineRun(0, err)
		return nil, err
	}

	res := &Result{Products: []*models.Candidate{}}
	if req.MaxProducts == 0 {
		return res, nil
	}

	logger := e.requestLogger(ctx)
	start := time.Now()

	raw := req.BrandTiers
	if raw == nil {
		raw = req.Profile.TargetBrands
	}
	tiers := ParseBrandTiers(raw)

	res.Queries = e.builder.Build(QueryInput{
		Profile:  req.Profile,
		ItemType: req.ItemType,
		Budget:   req.Budget,
		Brands:   tiers,
	})

	var candidates []*models.Candidate
	e.stage("fetch", func() int {
		candidates = e.fetcher.Fetch(ctx, res.Queries, e.cfg.PriceBounds(req.Budget), NewBrandIndex(tiers))
		return len(candidates)
	})
	res.Fetched = len(candidates)

	e.stage("trust", func() int {
		candidates = e.trust.Filter(candidates)
		return len(candidates)
	})

	if e.imageFilter != nil {
		e.stage("image_check", func() int {
			candidates = e.imageFilter.Filter(ctx, candidates)
			return len(candidates)
		})
	}

	e.stage("rank", func() int {
		candidates = e.ranker.Rank(ctx, candidates, req.Profile)
		return len(candidates)
	})

	var selected, leftovers []*models.Candidate
	e.stage("diversity", func() int {
		selected, leftovers = e.allocator.Allocate(candidates, req.MaxProducts)
		return len(selected)
	})

	e.stage("coherence", func() int {
		bench := buildBench(leftovers, e.cfg.NeutralScore, e.cfg.BenchSize)
		selected, res.Swaps = e.refiner.Refine(ctx, selected, bench, req.Profile)
		return len(selected)
	})
	metrics.RecordSwaps(res.Swaps)

	SortCandidates(selected)
	if len(selected) > req.MaxProducts {
		selected = selected[:req.MaxProducts]
	}
	if selected != nil {
		res.Products = selected
	}

	metrics.RecordPipelineRun(len(res.Products), nil)
	logger.Info().
		Str("profile", req.Profile.Name).
		Str("budget", string(req.Budget)).
		Int("queries", len(res.Queries)).
		Int("fetched", res.Fetched).
		Int("returned", len(res.Products)).
		Int("swaps", res.Swaps).
		Dur("duration", time.Since(start)).
		Msg("ranking complete")
	return res, nil
}

// stage times fn and records how many candidates it produced.
func (e *Engine) stage(name string, fn func() int) {
	start := time.Now()
	n := fn()
	metrics.RecordStage(name, time.Since(start), n)
}

func (e *Engine) requestLogger(ctx context.Context) zerolog.Logger {
	logCtx := e.logger.With()
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	return logCtx.Logger()
}
