// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package moodcheck turns a moodcheck request into a result: it extracts the
aesthetic profile, then runs the ranking pipeline and the trend lookup
concurrently.

Profile extraction is the only hard failure. An empty product list is
reported through MoodcheckResult.ProductsDegraded rather than an error.
*/
package moodcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moodboard/internal/logging"
	"github.com/tomtom215/moodboard/internal/models"
	"github.com/tomtom215/moodboard/internal/shopping"
)

// ErrProfileExtraction wraps any failure of the profile extractor.
var ErrProfileExtraction = errors.New("failed to analyze images")

// ProfileExtractor builds an aesthetic profile from images and a prompt.
type ProfileExtractor interface {
	Extract(ctx context.Context, images []string, prompt string) (*models.AestheticProfile, error)
}

// Pipeline is the ranking engine.
type Pipeline interface {
	RankProducts(ctx context.Context, req shopping.Request) (*shopping.Result, error)
	DetectItemType(prompt string) (shopping.ItemType, bool)
}

// TrendLookup summarizes search interest for a keyword. It must not fail.
type TrendLookup interface {
	Summary(ctx context.Context, keyword string) models.TrendSummary
}

// Service orchestrates one moodcheck. It is safe for concurrent use.
type Service struct {
	extractor   ProfileExtractor
	pipeline    Pipeline
	trends      TrendLookup // optional
	maxProducts int
	logger      zerolog.Logger
}

// New creates a service. trends may be nil to skip trend lookups.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(extractor ProfileExtractor, pipeline Pipeline, trends TrendLookup, maxProducts int, logger zerolog.Logger) (*Service, error) {
	if extractor == nil {
		return nil, errors.New("moodcheck: profile extractor is required")
	}
	if pipeline == nil {
		return nil, errors.New("moodcheck: pipeline is required")
	}
	if maxProducts <= 0 {
		return nil, fmt.Errorf("moodcheck: %w: got %d", shopping.ErrInvalidMaxProducts, maxProducts)
	}
	return &Service{
		extractor:   extractor,
		pipeline:    pipeline,
		trends:      trends,
		maxProducts: maxProducts,
		logger:      logger.With().Str("component", "moodcheck").Logger(),
	}, nil
}

// Analyze runs a validated request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (s *Service) Analyze(ctx context.Context, req models.MoodcheckRequest) (*models.MoodcheckResult, error) {
	start := time.Now()
	logger := s.logger.With().Str("request_id", logging.RequestIDFromContext(ctx)).Logger()

	profile, err := s.extractor.Extract(ctx, req.Images, req.Prompt)
	if err != nil {
		logger.Error().Err(err).Int("images", len(req.Images)).Msg("profile extraction failed")
		return nil, fmt.Errorf("%w: %w", ErrProfileExtraction, err)
	}

	budget, err := models.ParseBudget(req.Budget)
	if err != nil {
		return nil, err
	}
	if budget == models.BudgetNone {
		budget = shopping.DetectBudget(req.Prompt)
	}

	var itemType *shopping.ItemType
	if it, ok := s.pipeline.DetectItemType(req.Prompt); ok {
		itemType = &it
	}

	maxProducts := s.maxProducts
	if req.MaxProducts != nil {
		maxProducts = *req.MaxProducts
	}

	var (
		ranked *shopping.Result
		trend  *models.TrendSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.pipeline.RankProducts(gctx, shopping.Request{
			Profile:     profile,
			MaxProducts: maxProducts,
			Budget:      budget,
			ItemType:    itemType,
		})
		if err != nil {
			return fmt.Errorf("rank products: %w", err)
		}
		ranked = res
		return nil
	})
	if s.trends != nil {
		g.Go(func() error {
			summary := s.trends.Summary(gctx, profile.Name)
			trend = &summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &models.MoodcheckResult{
		Vibe:              profile,
		Products:          ranked.Products,
		Trend:             trend,
		SearchQueriesUsed: queryTexts(ranked.Queries, profile.SearchQueries),
		Budget:            budget,
		Swaps:             ranked.Swaps,
		ProductsDegraded:  len(ranked.Products) == 0,
	}
	if itemType != nil {
		result.ItemType = itemType.Category
	}

	event := logger.Info()
	if result.ProductsDegraded {
		event = logger.Warn()
	}
	event.
		Str("profile", profile.Name).
		Int("products", len(result.Products)).
		Bool("products_degraded", result.ProductsDegraded).
		Dur("duration", time.Since(start)).
		Msg("moodcheck complete")
	return result, nil
}

// queryTexts lists the queries the pipeline issued, or the profile's seed
// queries when none were built.
func queryTexts(queries []shopping.Query, seeds []string) []string {
	if len(queries) == 0 {
		out := make([]string, len(seeds))
		copy(out, seeds)
		return out
	}
	out := make([]string, len(queries))
	for i, q := range queries {
		out[i] = q.Text
	}
	return out
}
