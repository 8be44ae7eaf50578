// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/models"
)

func newTestFetcher(s Searcher, mutate func(*Config)) *Fetcher {
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewFetcher(s, NewClassifier(), &cfg, zerolog.Nop())
}

func TestFetcher_DedupAcrossQueries(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{results: map[string][]models.RawProduct{
		"q1": {product("1", "Linen Shirt", 40, "COS"), product("2", "Wool Coat", 200, "COS"), product("3", "Jeans", 90, "Madewell")},
		"q2": {product("2", "Wool Coat", 200, "COS"), product("4", "Loafers", 150, "Nordstrom")},
		"q3": {product("5", "Tote Bag", 80, "Shopbop"), product("1", "Linen Shirt", 40, "COS"), product("6", "Silk Scarf", 60, "Net-a-Porter")},
	}}
	queries := []Query{{Text: "q1"}, {Text: "q2"}, {Text: "q3"}}

	got := newTestFetcher(s, nil).Fetch(context.Background(), queries, models.PriceRange{}, nil)
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6 (8 records, 2 duplicates)", len(got))
	}

	want := []string{"1", "2", "3", "4", "5", "6"}
	if !equalStrings(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
	if s.callCount() != 3 {
		t.Errorf("search calls = %d, want 3", s.callCount())
	}
	for _, c := range s.calls {
		if c.Limit != DefaultConfig().LimitPerQuery {
			t.Errorf("limit = %d, want %d", c.Limit, DefaultConfig().LimitPerQuery)
		}
	}
}

func TestFetcher_FirstQueryWinsRegardlessOfCompletionOrder(t *testing.T) {
	t.Parallel()

	s := searchFunc(func(_ context.Context, req models.SearchRequest) ([]models.RawProduct, error) {
		p := product("dup", "Coat from "+req.Query, 100, "COS")
		if req.Query == "first" {
			time.Sleep(30 * time.Millisecond)
		}
		return []models.RawProduct{p}, nil
	})
	queries := []Query{{Text: "first", Targeted: true}, {Text: "second"}}

	got := newTestFetcher(s, nil).Fetch(context.Background(), queries, models.PriceRange{}, nil)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "Coat from first" || got[0].SourceQuery != "first" {
		t.Errorf("kept %q from %q, want the first query's record", got[0].Title, got[0].SourceQuery)
	}
	if !got[0].FromTargetedQuery {
		t.Error("FromTargetedQuery should follow the winning query")
	}
}

func TestFetcher_MergeIsOrderIndependentForKeys(t *testing.T) {
	t.Parallel()

	f := newTestFetcher(&stubSearcher{}, nil)
	a := []models.RawProduct{product("1", "Top", 10, "COS"), product("2", "Skirt", 20, "COS")}
	b := []models.RawProduct{product("2", "Skirt", 20, "COS"), product("3", "Boots", 30, "COS")}
	queries := []Query{{Text: "a"}, {Text: "b"}}

	keys := func(cs []*models.Candidate) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.IdentityKey
		}
		sort.Strings(out)
		return out
	}

	ab := keys(f.merge(queries, [][]models.RawProduct{a, b}, models.PriceRange{}, nil))
	ba := keys(f.merge(queries, [][]models.RawProduct{b, a}, models.PriceRange{}, nil))
	if !equalStrings(ab, ba) {
		t.Errorf("key sets differ: %v vs %v", ab, ba)
	}
	if len(ab) != 3 {
		t.Errorf("len = %d, want 3", len(ab))
	}
}

func TestFetcher_PriceBoundsInclusive(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{results: map[string][]models.RawProduct{
		"q": {
			product("cheap", "Tee", 149.99, "COS"),
			product("edge", "Coat", 150, "COS"),
			product("dear", "Bag", 300, "COS"),
		},
	}}
	cfg := DefaultConfig()
	luxury := cfg.PriceBounds(models.BudgetLuxury)

	got := newTestFetcher(s, nil).Fetch(context.Background(), []Query{{Text: "q"}}, luxury, nil)
	want := []string{"edge", "dear"}
	if !equalStrings(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
	if s.calls[0].Price != luxury {
		t.Errorf("price passed to searcher = %+v, want %+v", s.calls[0].Price, luxury)
	}
}

func TestFetcher_FailingQueryIsIsolated(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{
		results: map[string][]models.RawProduct{
			"ok1": {product("1", "Top", 10, "COS")},
			"ok2": {product("2", "Skirt", 20, "COS")},
		},
		errs: map[string]error{"bad": errors.New("upstream 503")},
	}
	queries := []Query{{Text: "ok1"}, {Text: "bad"}, {Text: "ok2"}}

	got := newTestFetcher(s, nil).Fetch(context.Background(), queries, models.PriceRange{}, nil)
	if !equalStrings(ids(got), []string{"1", "2"}) {
		t.Errorf("ids = %v, want [1 2]", ids(got))
	}
}

func TestFetcher_AllQueriesFail(t *testing.T) {
	t.Parallel()

	s := searchFunc(func(context.Context, models.SearchRequest) ([]models.RawProduct, error) {
		return nil, errors.New("down")
	})
	got := newTestFetcher(s, nil).Fetch(context.Background(), []Query{{Text: "a"}, {Text: "b"}}, models.PriceRange{}, nil)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestFetcher_PerQueryTimeout(t *testing.T) {
	t.Parallel()

	s := searchFunc(func(ctx context.Context, req models.SearchRequest) ([]models.RawProduct, error) {
		if req.Query == "slow" {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []models.RawProduct{product("fast", "Top", 10, "COS")}, nil
	})
	f := newTestFetcher(s, func(c *Config) { c.QueryTimeout = 20 * time.Millisecond })

	start := time.Now()
	got := f.Fetch(context.Background(), []Query{{Text: "slow"}, {Text: "fast"}}, models.PriceRange{}, nil)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Fetch took %v, timeout not applied", elapsed)
	}
	if !equalStrings(ids(got), []string{"fast"}) {
		t.Errorf("ids = %v, want [fast]", ids(got))
	}
}

func TestFetcher_WorkerBound(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	s := searchFunc(func(context.Context, models.SearchRequest) ([]models.RawProduct, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return nil, nil
	})

	queries := make([]Query, 10)
	for i := range queries {
		queries[i] = Query{Text: string(rune('a' + i))}
	}
	newTestFetcher(s, func(c *Config) { c.MaxWorkers = 3 }).Fetch(context.Background(), queries, models.PriceRange{}, nil)

	if got := peak.Load(); got > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", got)
	}
}

func TestFetcher_StampsCandidates(t *testing.T) {
	t.Parallel()

	noBrand := product("k", "Khaite Danielle Jeans", 400, "Net-a-Porter")
	s := &stubSearcher{results: map[string][]models.RawProduct{"denim": {noBrand}}}

	got := newTestFetcher(s, nil).Fetch(context.Background(), []Query{{Text: "denim"}}, models.PriceRange{}, NewBrandIndex(nil))
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	c := got[0]
	if c.Brand != "Khaite" || c.BrandScore != int(TierAspirational) {
		t.Errorf("brand = %q score %d, want Khaite 3", c.Brand, c.BrandScore)
	}
	if c.Category != models.CategoryBottoms {
		t.Errorf("category = %s, want Bottoms", c.Category)
	}
	if c.SourceQuery != "denim" {
		t.Errorf("SourceQuery = %q, want denim", c.SourceQuery)
	}
}
