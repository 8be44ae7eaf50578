// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package shopstyle implements the product search collaborator on top of the
ShopStyle Collective v2 products API.

API Reference: https://www.shopstylecollective.com/api/v2

Every call waits on a token bucket (golang.org/x/time/rate) and then runs
inside the "shopstyle-api" circuit breaker.
*/
package shopstyle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moodboard/internal/metrics"
	"github.com/tomtom215/moodboard/internal/models"
	"github.com/tomtom215/moodboard/internal/resilience"
	"github.com/tomtom215/moodboard/internal/shopping"
)

// Source is the collaborator name stamped on every record.
const Source = "shopstyle"

// DefaultURL is the public products endpoint.
const DefaultURL = "https://api.shopstyle.com/api/v2/products"

// ErrMissingPID is returned by New when no partner id is configured.
var ErrMissingPID = errors.New("shopstyle partner id is required")

var _ shopping.Searcher = (*Client)(nil)

// Config configures a Client.
type Config struct {
	URL            string
	PID            string
	Sort           string
	Timeout        time.Duration
	RequestsPerSec float64 // 0 disables client-side limiting
	Burst          int
}

// Client searches ShopStyle. It is safe for concurrent use.
type Client struct {
	url        string
	pid        string
	sort       string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *resilience.Breaker[[]models.RawProduct]
	logger     zerolog.Logger
}

// New creates a ShopStyle client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.PID) == "" {
		return nil, ErrMissingPID
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Sort == "" {
		cfg.Sort = "Popular"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := max(cfg.Burst, 1)

	logger = logger.With().Str("component", "shopstyle").Logger()
	return &Client{
		url:        strings.TrimSuffix(cfg.URL, "/"),
		pid:        cfg.PID,
		sort:       cfg.Sort,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    resilience.New[[]models.RawProduct]("shopstyle-api", resilience.DefaultSettings(), logger),
		logger:     logger,
	}, nil
}

// Search runs one full-text product search.
func (c *Client) Search(ctx context.Context, req models.SearchRequest) ([]models.RawProduct, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordSearch(Source, time.Since(start), 0, err)
		return nil, fmt.Errorf("shopstyle rate limit wait: %w", err)
	}

	products, err := c.breaker.Execute(func() ([]models.RawProduct, error) {
		return c.search(ctx, req)
	})
	metrics.RecordSearch(Source, time.Since(start), len(products), err)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("query", req.Query).
		Int("results", len(products)).
		Dur("duration", time.Since(start)).
		Msg("shopstyle search complete")
	return products, nil
}

func (c *Client) search(ctx context.Context, req models.SearchRequest) ([]models.RawProduct, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+c.params(req).Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build shopstyle request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("shopstyle request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(io.LimitReader(resp.Body, 512))
		if err != nil {
			return nil, fmt.Errorf("shopstyle returned status %d (failed to read body)", resp.StatusCode)
		}
		return nil, fmt.Errorf("shopstyle returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode shopstyle response: %w", err)
	}

	products := make([]models.RawProduct, 0, len(payload.Products))
	for i := range payload.Products {
		products = append(products, formatProduct(&payload.Products[i], req.Query))
	}
	return products, nil
}

func (c *Client) params(req models.SearchRequest) url.Values {
	q := url.Values{}
	q.Set("pid", c.pid)
	q.Set("fts", req.Query)
	q.Set("sort", c.sort)
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Price.Min > 0 {
		q.Set("pmin", strconv.FormatFloat(req.Price.Min, 'f', -1, 64))
	}
	if req.Price.Max > 0 {
		q.Set("pmax", strconv.FormatFloat(req.Price.Max, 'f', -1, 64))
	}
	return q
}
