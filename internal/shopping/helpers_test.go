// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"context"
	"sync"

	"github.com/tomtom215/moodboard/internal/models"
)

// searchFunc adapts a function to Searcher.
type searchFunc func(ctx context.Context, req models.SearchRequest) ([]models.RawProduct, error)

func (f searchFunc) Search(ctx context.Context, req models.SearchRequest) ([]models.RawProduct, error) {
	return f(ctx, req)
}

// stubSearcher returns canned results per query and records calls.
type stubSearcher struct {
	mu      sync.Mutex
	results map[string][]models.RawProduct
	errs    map[string]error
	calls   []models.SearchRequest
}

func (s *stubSearcher) Search(_ context.Context, req models.SearchRequest) ([]models.RawProduct, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if err := s.errs[req.Query]; err != nil {
		return nil, err
	}
	return s.results[req.Query], nil
}

func (s *stubSearcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// scorerFunc adapts a function to Scorer.
type scorerFunc func(ctx context.Context, req models.OracleRequest) ([]models.OracleVerdict, error)

func (f scorerFunc) ScoreBatch(ctx context.Context, req models.OracleRequest) ([]models.OracleVerdict, error) {
	return f(ctx, req)
}

// recordingScorer answers every call with fn and keeps the requests.
type recordingScorer struct {
	mu   sync.Mutex
	reqs []models.OracleRequest
	fn   func(req models.OracleRequest) ([]models.OracleVerdict, error)
}

func (s *recordingScorer) ScoreBatch(_ context.Context, req models.OracleRequest) ([]models.OracleVerdict, error) {
	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	s.mu.Unlock()
	return s.fn(req)
}

// uniformScores gives every item in a request the same score, 1-based.
func uniformScores(score int) func(models.OracleRequest) ([]models.OracleVerdict, error) {
	return func(req models.OracleRequest) ([]models.OracleVerdict, error) {
		out := make([]models.OracleVerdict, len(req.Items))
		for i, it := range req.Items {
			out[i] = models.OracleVerdict{Index: it.Position, Score: score}
		}
		return out, nil
	}
}

func product(id, title string, price float64, retailer string) models.RawProduct {
	return models.RawProduct{
		ID:         id,
		Title:      title,
		Price:      price,
		Retailer:   retailer,
		ImageURL:   "https://img.example/" + id + ".jpg",
		ProductURL: "https://shop.example/p/" + id,
		Source:     "test",
	}
}

// cand builds a scored candidate in a fixed category.
func cand(id string, cat models.Category, score int) *models.Candidate {
	c := models.NewCandidate(product(id, id, 50, "Nordstrom"))
	c.Category = cat
	c.SetScore(score)
	return c
}

func ids(cs []*models.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func countCategory(cs []*models.Candidate, cat models.Category) int {
	n := 0
	for _, c := range cs {
		if c.Category == cat {
			n++
		}
	}
	return n
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testProfile() *models.AestheticProfile {
	return &models.AestheticProfile{
		Name:         "Quiet Luxury",
		Mood:         "understated",
		ColorPalette: []models.ColorSwatch{{Name: "cream", Hex: "#F5F0E6"}, {Name: "camel", Hex: "#C19A6B"}},
		Textures:     []string{"cashmere", "linen"},
		KeyPieces:    []string{"trench coat", "loafers"},
		Avoid:        []string{"logos"},
		SearchQueries: []string{
			"cream cashmere sweater",
			"camel trench coat",
			"linen wide leg trousers",
		},
	}
}
