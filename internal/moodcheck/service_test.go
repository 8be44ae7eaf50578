// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package moodcheck

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/models"
	"github.com/tomtom215/moodboard/internal/shopping"
)

type extractorFunc func(ctx context.Context, images []string, prompt string) (*models.AestheticProfile, error)

func (f extractorFunc) Extract(ctx context.Context, images []string, prompt string) (*models.AestheticProfile, error) {
	return f(ctx, images, prompt)
}

func fixedProfile() extractorFunc {
	return func(context.Context, []string, string) (*models.AestheticProfile, error) {
		return &models.AestheticProfile{
			Name:          "Quiet Luxury",
			SearchQueries: []string{"cashmere sweater", "wool trousers"},
		}, nil
	}
}

type stubPipeline struct {
	mu       sync.Mutex
	requests []shopping.Request
	result   *shopping.Result
	err      error
}

func (p *stubPipeline) RankProducts(_ context.Context, req shopping.Request) (*shopping.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func (p *stubPipeline) DetectItemType(prompt string) (shopping.ItemType, bool) {
	if prompt == "show me loafers" {
		return shopping.ItemType{Category: models.CategoryShoes, Keyword: "loafers"}, true
	}
	return shopping.ItemType{}, false
}

func (p *stubPipeline) lastRequest(t *testing.T) shopping.Request {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		t.Fatal("pipeline was not called")
	}
	return p.requests[len(p.requests)-1]
}

type trendFunc func(ctx context.Context, keyword string) models.TrendSummary

func (f trendFunc) Summary(ctx context.Context, keyword string) models.TrendSummary {
	return f(ctx, keyword)
}

func products(n int) []*models.Candidate {
	out := make([]*models.Candidate, n)
	for i := range out {
		out[i] = &models.Candidate{RawProduct: models.RawProduct{ID: string(rune('a' + i))}}
	}
	return out
}

func newService(t *testing.T, ex ProfileExtractor, p Pipeline, tr TrendLookup) *Service {
	t.Helper()
	s, err := New(ex, p, tr, 20, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()
	p := &stubPipeline{}
	if _, err := New(nil, p, nil, 20, zerolog.Nop()); err == nil {
		t.Error("expected error without extractor")
	}
	if _, err := New(fixedProfile(), nil, nil, 20, zerolog.Nop()); err == nil {
		t.Error("expected error without pipeline")
	}
	if _, err := New(fixedProfile(), p, nil, 0, zerolog.Nop()); !errors.Is(err, shopping.ErrInvalidMaxProducts) {
		t.Errorf("err = %v, want ErrInvalidMaxProducts", err)
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()
	p := &stubPipeline{result: &shopping.Result{
		Products: products(3),
		Queries:  []shopping.Query{{Text: "trending cashmere sweater"}, {Text: "Khaite trench coat", Targeted: true}},
		Swaps:    1,
	}}
	var trendKeyword string
	tr := trendFunc(func(_ context.Context, keyword string) models.TrendSummary {
		trendKeyword = keyword
		return models.TrendSummary{Keyword: keyword, Direction: models.TrendRising}
	})
	s := newService(t, fixedProfile(), p, tr)

	res, err := s.Analyze(context.Background(), models.MoodcheckRequest{Prompt: "something designer please"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.Vibe.Name != "Quiet Luxury" {
		t.Errorf("Vibe = %q", res.Vibe.Name)
	}
	if len(res.Products) != 3 || res.ProductsDegraded {
		t.Errorf("products = %d, degraded = %v", len(res.Products), res.ProductsDegraded)
	}
	if res.Trend == nil || res.Trend.Direction != models.TrendRising || trendKeyword != "Quiet Luxury" {
		t.Errorf("trend = %+v (keyword %q)", res.Trend, trendKeyword)
	}
	if len(res.SearchQueriesUsed) != 2 || res.SearchQueriesUsed[1] != "Khaite trench coat" {
		t.Errorf("SearchQueriesUsed = %v", res.SearchQueriesUsed)
	}
	if res.Budget != models.BudgetLuxury || res.Swaps != 1 {
		t.Errorf("budget = %q, swaps = %d", res.Budget, res.Swaps)
	}

	req := p.lastRequest(t)
	if req.MaxProducts != 20 || req.Budget != models.BudgetLuxury || req.ItemType != nil {
		t.Errorf("pipeline request = %+v", req)
	}
}

func TestAnalyze_RequestOverrides(t *testing.T) {
	t.Parallel()
	p := &stubPipeline{result: &shopping.Result{Products: products(1)}}
	s := newService(t, fixedProfile(), p, nil)

	maxProducts := 6
	res, err := s.Analyze(context.Background(), models.MoodcheckRequest{
		Prompt:      "show me loafers",
		MaxProducts: &maxProducts,
		Budget:      "mid_range",
	})
	if err != nil {
		t.Fatal(err)
	}

	req := p.lastRequest(t)
	if req.MaxProducts != 6 {
		t.Errorf("MaxProducts = %d, want 6", req.MaxProducts)
	}
	if req.Budget != models.BudgetMidRange {
		t.Errorf("Budget = %q", req.Budget)
	}
	if req.ItemType == nil || req.ItemType.Category != models.CategoryShoes {
		t.Errorf("ItemType = %+v", req.ItemType)
	}
	if res.ItemType != models.CategoryShoes {
		t.Errorf("result ItemType = %q", res.ItemType)
	}
	if res.Trend != nil {
		t.Error("trend should be omitted without a trend lookup")
	}
	if len(res.SearchQueriesUsed) != 2 || res.SearchQueriesUsed[0] != "cashmere sweater" {
		t.Errorf("SearchQueriesUsed should fall back to seeds, got %v", res.SearchQueriesUsed)
	}
}

func TestAnalyze_ExtractionFailure(t *testing.T) {
	t.Parallel()
	upstream := errors.New("model unavailable")
	p := &stubPipeline{}
	s := newService(t, extractorFunc(func(context.Context, []string, string) (*models.AestheticProfile, error) {
		return nil, upstream
	}), p, nil)

	_, err := s.Analyze(context.Background(), models.MoodcheckRequest{Prompt: "boho"})
	if !errors.Is(err, ErrProfileExtraction) || !errors.Is(err, upstream) {
		t.Fatalf("err = %v", err)
	}
	if len(p.requests) != 0 {
		t.Error("pipeline must not run without a profile")
	}
}

func TestAnalyze_EmptyProductsDegraded(t *testing.T) {
	t.Parallel()
	p := &stubPipeline{result: &shopping.Result{Products: []*models.Candidate{}}}
	s := newService(t, fixedProfile(), p, nil)

	res, err := s.Analyze(context.Background(), models.MoodcheckRequest{Prompt: "boho"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !res.ProductsDegraded {
		t.Error("ProductsDegraded should be set")
	}
}

func TestAnalyze_PipelineError(t *testing.T) {
	t.Parallel()
	p := &stubPipeline{err: shopping.ErrInvalidMaxProducts}
	s := newService(t, fixedProfile(), p, nil)

	if _, err := s.Analyze(context.Background(), models.MoodcheckRequest{Prompt: "boho"}); !errors.Is(err, shopping.ErrInvalidMaxProducts) {
		t.Fatalf("err = %v", err)
	}
}
