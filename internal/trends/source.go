// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package trends

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/models"
	"github.com/tomtom215/moodboard/internal/resilience"
)

// ErrMissingSourceURL is returned by NewHTTPSource without an endpoint.
var ErrMissingSourceURL = errors.New("trend source url is required")

// DefaultTimeframe is the window requested from the interest source.
const DefaultTimeframe = "today 3-m"

// Source returns interest over time for a keyword.
type Source interface {
	Fetch(ctx context.Context, keyword string) (models.TrendSeries, error)
}

// SourceConfig configures an HTTPSource.
type SourceConfig struct {
	URL       string
	Timeframe string
	Timeout   time.Duration
}

// HTTPSource fetches interest series from a JSON endpoint answering
// GET ?keyword=...&timeframe=... with {"data": [...], "dates": [...]}.
type HTTPSource struct {
	url        string
	timeframe  string
	httpClient *http.Client
	breaker    *resilience.Breaker[models.TrendSeries]
	logger     zerolog.Logger
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource creates an interest source.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHTTPSource(cfg SourceConfig, logger zerolog.Logger) (*HTTPSource, error) {
	if cfg.URL == "" {
		return nil, ErrMissingSourceURL
	}
	if cfg.Timeframe == "" {
		cfg.Timeframe = DefaultTimeframe
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	logger = logger.With().Str("component", "trends-source").Logger()
	return &HTTPSource{
		url:        cfg.URL,
		timeframe:  cfg.Timeframe,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    resilience.New[models.TrendSeries]("trends-api", resilience.DefaultSettings(), logger),
		logger:     logger,
	}, nil
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, keyword string) (models.TrendSeries, error) {
	return s.breaker.Execute(func() (models.TrendSeries, error) {
		return s.fetch(ctx, keyword)
	})
}

func (s *HTTPSource) fetch(ctx context.Context, keyword string) (models.TrendSeries, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("timeframe", s.timeframe)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return models.TrendSeries{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return models.TrendSeries{}, fmt.Errorf("trend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.TrendSeries{}, fmt.Errorf("trend source returned status %d: %s", resp.StatusCode, body)
	}

	var series models.TrendSeries
	if err := json.NewDecoder(resp.Body).Decode(&series); err != nil {
		return models.TrendSeries{}, fmt.Errorf("decode trend response: %w", err)
	}
	series.Keyword = keyword
	series.Timeframe = s.timeframe
	return series, nil
}
