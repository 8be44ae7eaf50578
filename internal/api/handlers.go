// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package api

import (
	"context"
	"errors"

	"github.com/tomtom215/moodboard/internal/models"
	"github.com/tomtom215/moodboard/internal/validation"
)

// serviceName is reported by the health endpoint.
const serviceName = "moodboard-api"

// defaultMaxBodyBytes covers five 5MB images after base64 expansion.
const defaultMaxBodyBytes int64 = 35 << 20

// Analyzer runs a moodcheck. Implemented by *moodcheck.Service.
type Analyzer interface {
	Analyze(ctx context.Context, req models.MoodcheckRequest) (*models.MoodcheckResult, error)
}

// TrendLookup summarizes search interest. Implemented by *trends.Service.
type TrendLookup interface {
	Summary(ctx context.Context, keyword string) models.TrendSummary
}

// HandlerConfig holds Handler dependencies.
type HandlerConfig struct {
	Analyzer     Analyzer
	Trends       TrendLookup // optional; nil reports every keyword as unknown
	Limits       validation.Limits
	MaxBodyBytes int64
	Version      string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_moodcheck.go: POST /api/moodcheck
//   - handlers_trends.go: GET /api/trends
//   - handlers_health.go: GET /api/health
type Handler struct {
	analyzer     Analyzer
	trends       TrendLookup
	limits       validation.Limits
	maxBodyBytes int64
	version      string
}

// NewHandler creates a new API handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Analyzer == nil {
		return nil, errors.New("api: analyzer is required")
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{
		analyzer:     cfg.Analyzer,
		trends:       cfg.Trends,
		limits:       cfg.Limits,
		maxBodyBytes: cfg.MaxBodyBytes,
		version:      cfg.Version,
	}, nil
}
