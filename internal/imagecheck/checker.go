// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

// Package imagecheck drops candidates whose product image cannot be loaded.
package imagecheck

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moodboard/internal/metrics"
	"github.com/tomtom215/moodboard/internal/models"
	"github.com/tomtom215/moodboard/internal/shopping"
)

var _ shopping.ImageFilter = (*Checker)(nil)

// Config configures a Checker.
type Config struct {
	Timeout  time.Duration // per HEAD request
	MinBytes int64         // minimum Content-Length when the header is present
	Workers  int
}

// Checker validates image URLs with HEAD requests.
type Checker struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger
}

// New creates a checker. Zero values get defaults of 3s, 10KB and 10 workers.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg Config, logger zerolog.Logger) *Checker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.MinBytes <= 0 {
		cfg.MinBytes = 10 * 1024
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 10
	}
	return &Checker{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("component", "imagecheck").Logger(),
	}
}

// Filter keeps candidates with a valid image, in input order. If none
// survive, the input is returned unchanged.
func (c *Checker) Filter(ctx context.Context, candidates []*models.Candidate) []*models.Candidate {
	if len(candidates) == 0 {
		return candidates
	}

	ok := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)
	for i, cand := range candidates {
		g.Go(func() error {
			result := c.check(gctx, cand.ImageURL)
			metrics.RecordImageCheck(result)
			ok[i] = result == "ok"
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	kept := make([]*models.Candidate, 0, len(candidates))
	for i, cand := range candidates {
		if ok[i] {
			kept = append(kept, cand)
		}
	}

	if len(kept) == 0 {
		c.logger.Warn().Int("candidates", len(candidates)).Msg("no image passed validation, keeping all")
		return candidates
	}
	if dropped := len(candidates) - len(kept); dropped > 0 {
		c.logger.Debug().Int("dropped", dropped).Int("kept", len(kept)).Msg("image validation")
	}
	return kept
}

// check returns "ok" or the reason the image was rejected.
func (c *Checker) check(ctx context.Context, url string) string {
	if url == "" {
		return "missing"
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return "invalid"
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "error"
	}
	_ = resp.Body.Close()

	switch {
	case resp.StatusCode != http.StatusOK:
		return "bad_status"
	case !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/"):
		return "not_image"
	case resp.ContentLength >= 0 && resp.ContentLength < c.cfg.MinBytes:
		return "too_small"
	}
	return "ok"
}
