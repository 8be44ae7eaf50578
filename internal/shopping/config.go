// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopping

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/moodboard/internal/models"
)

// Config holds the ranking policy. Every threshold is a knob.
type Config struct {
	// Query building
	MaxQueries      int
	MaxSeedQueries  int
	MaxBrandQueries int

	// Fetching
	LimitPerQuery int
	MaxWorkers    int
	QueryTimeout  time.Duration

	// Trust filter
	TrustedRetailers []string
	TrustFloor       int

	// Relevance ranking
	VisualBatchSize int
	TextBatchSize   int
	VisualMinScore  int
	TextMinScore    int
	NeutralScore    int
	TailScore       int

	// Diversity
	MinPerCategory int
	MaxPerCategory int

	// Coherence refinement
	CoherenceEnabled bool
	CoherenceMinSize int
	CoherenceMaxSent int
	BenchSize        int
	MaxSwaps         int

	// Budget price bounds
	AffordableMax float64
	MidRangeMin   float64
	MidRangeMax   float64
	LuxuryMin     float64
}

// DefaultConfig returns the production policy.
func DefaultConfig() Config {
	return Config{
		MaxQueries:       10,
		MaxSeedQueries:   6,
		MaxBrandQueries:  4,
		LimitPerQuery:    8,
		MaxWorkers:       8,
		QueryTimeout:     10 * time.Second,
		TrustFloor:       10,
		VisualBatchSize:  15,
		TextBatchSize:    15,
		VisualMinScore:   6,
		TextMinScore:     5,
		NeutralScore:     5,
		TailScore:        3,
		MinPerCategory:   1,
		MaxPerCategory:   4,
		CoherenceEnabled: true,
		CoherenceMinSize: 5,
		CoherenceMaxSent: 15,
		BenchSize:        15,
		MaxSwaps:         3,
		AffordableMax:    75,
		MidRangeMin:      50,
		MidRangeMax:      200,
		LuxuryMin:        150,
	}
}

// Validate rejects configurations the stages cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxQueries < 1 {
		errs = append(errs, fmt.Errorf("MaxQueries must be positive, got %d", c.MaxQueries))
	}
	if c.MaxSeedQueries < 1 || c.MaxBrandQueries < 0 {
		errs = append(errs, errors.New("MaxSeedQueries must be positive and MaxBrandQueries not negative"))
	}
	if c.LimitPerQuery < 1 {
		errs = append(errs, fmt.Errorf("LimitPerQuery must be positive, got %d", c.LimitPerQuery))
	}
	if c.MaxWorkers < 1 {
		errs = append(errs, fmt.Errorf("MaxWorkers must be positive, got %d", c.MaxWorkers))
	}
	if c.QueryTimeout <= 0 {
		errs = append(errs, errors.New("QueryTimeout must be positive"))
	}
	if c.VisualBatchSize < 1 || c.TextBatchSize < 0 {
		errs = append(errs, errors.New("VisualBatchSize must be positive and TextBatchSize not negative"))
	}
	for name, v := range map[string]int{
		"VisualMinScore": c.VisualMinScore,
		"TextMinScore":   c.TextMinScore,
		"NeutralScore":   c.NeutralScore,
		"TailScore":      c.TailScore,
	} {
		if v < minScore || v > maxScore {
			errs = append(errs, fmt.Errorf("%s must be within %d..%d, got %d", name, minScore, maxScore, v))
		}
	}
	if c.MinPerCategory < 0 || c.MaxPerCategory < 1 || c.MinPerCategory > c.MaxPerCategory {
		errs = append(errs, fmt.Errorf("category quotas invalid: min %d, max %d", c.MinPerCategory, c.MaxPerCategory))
	}
	if c.MaxSwaps < 0 || c.BenchSize < 0 || c.TrustFloor < 0 {
		errs = append(errs, errors.New("MaxSwaps, BenchSize and TrustFloor must not be negative"))
	}
	return errors.Join(errs...)
}

// PriceBounds maps a budget onto the search price filter.
func (c *Config) PriceBounds(b models.Budget) models.PriceRange {
	switch b {
	case models.BudgetAffordable:
		return models.PriceRange{Max: c.AffordableMax}
	case models.BudgetMidRange:
		return models.PriceRange{Min: c.MidRangeMin, Max: c.MidRangeMax}
	case models.BudgetLuxury:
		return models.PriceRange{Min: c.LuxuryMin}
	default:
		return models.PriceRange{}
	}
}
