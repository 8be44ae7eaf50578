// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ValueLogCollector reclaims space in a badger value log.
// Satisfied by *trends.DiskStore.
type ValueLogCollector interface {
	RunGC(discardRatio float64) (int, error)
}

// TrendCacheGCService periodically garbage-collects the trend disk cache.
// Expired entries only free value-log space after a GC pass.
type TrendCacheGCService struct {
	store        ValueLogCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
}

// NewTrendCacheGCService creates the GC loop. Zero values fall back to a
// 10 minute interval and a 0.5 discard ratio.
func NewTrendCacheGCService(store ValueLogCollector, interval time.Duration, discardRatio float64, logger zerolog.Logger) *TrendCacheGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &TrendCacheGCService{
		store:        store,
		interval:     interval,
		discardRatio: discardRatio,
		logger:       logger.With().Str("service", "trend-cache-gc").Logger(),
	}
}

// Serve implements suture.Service. A GC error is logged and the loop
// continues; returning would only make suture restart an identical loop.
func (s *TrendCacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			rewrites, err := s.store.RunGC(s.discardRatio)
			if err != nil {
				s.logger.Warn().Err(err).Msg("Trend cache GC failed")
				continue
			}
			s.logger.Debug().
				Int("rewrites", rewrites).
				Dur("duration", time.Since(start)).
				Msg("Trend cache GC complete")
		}
	}
}

// String identifies the service in suture events.
func (s *TrendCacheGCService) String() string {
	return "trend-cache-gc"
}
