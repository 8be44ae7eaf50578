// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package trends produces search-interest summaries for aesthetic names.

Series are looked up in two cache tiers before the source is asked: an
in-process TTL map (one hour by default) and a badger store (24 hours).
Failed lookups are cached as well, so an unreachable source is not hit on
every request. A lookup abandoned by its caller is not cached.
*/
package trends

import (
	"context"
	"crypto/md5" //nolint:gosec // cache key, not a security boundary
	"encoding/hex"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/cache"
	"github.com/tomtom215/moodboard/internal/metrics"
	"github.com/tomtom215/moodboard/internal/models"
)

// Series error markers.
const (
	ErrorNoData      = "no_data"
	ErrorUnavailable = "unavailable"
)

// Service answers trend summaries. It is safe for concurrent use.
type Service struct {
	source Source
	memory *cache.TTLCache[models.TrendSeries]
	disk   *DiskStore // optional
	logger zerolog.Logger
}

// NewService creates a service. disk may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(source Source, disk *DiskStore, memoryTTL time.Duration, logger zerolog.Logger) *Service {
	if memoryTTL <= 0 {
		memoryTTL = time.Hour
	}
	return &Service{
		source: source,
		memory: cache.NewTTL[models.TrendSeries](memoryTTL),
		disk:   disk,
		logger: logger.With().Str("component", "trends").Logger(),
	}
}

// Summary returns the trend card for keyword. It never fails; missing data
// yields an unknown summary.
func (s *Service) Summary(ctx context.Context, keyword string) models.TrendSummary {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return models.UnknownTrend(keyword)
	}
	return Summarize(keyword, s.Series(ctx, keyword))
}

// Series returns the interest series for keyword, from cache when possible.
func (s *Service) Series(ctx context.Context, keyword string) models.TrendSeries {
	normalized := strings.ToLower(strings.TrimSpace(keyword))
	key := cacheKey(normalized)

	if series, ok := s.memory.Get(key); ok {
		metrics.RecordTrendCache("memory", true)
		return series
	}
	metrics.RecordTrendCache("memory", false)

	if s.disk != nil {
		series, ok, err := s.disk.Get(key)
		if err != nil {
			s.logger.Warn().Err(err).Str("keyword", normalized).Msg("trend cache read failed")
		}
		metrics.RecordTrendCache("disk", ok)
		if ok {
			s.memory.Set(key, series)
			return series
		}
	}

	series, err := s.fetch(ctx, normalized)
	if err != nil && ctx.Err() != nil {
		return series
	}
	s.memory.Set(key, series)
	if s.disk != nil {
		if err := s.disk.Set(key, series); err != nil {
			s.logger.Warn().Err(err).Str("keyword", normalized).Msg("trend cache write failed")
		}
	}
	return series
}

// fetch asks the source. A failure is returned as an unavailable series
// together with the error.
func (s *Service) fetch(ctx context.Context, keyword string) (models.TrendSeries, error) {
	unavailable := models.TrendSeries{Keyword: keyword, Data: []int{}, Error: ErrorUnavailable}
	if s.source == nil {
		return unavailable, nil
	}
	series, err := s.source.Fetch(ctx, keyword)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Debug().Err(err).Str("keyword", keyword).Msg("trend fetch abandoned")
		} else {
			s.logger.Warn().Err(err).Str("keyword", keyword).Msg("trend fetch failed")
		}
		return unavailable, err
	}
	if len(series.Data) == 0 {
		series.Error = ErrorNoData
	}
	series.Keyword = keyword
	return series, nil
}

// Clear empties both tiers and returns the number of entries removed.
func (s *Service) Clear() int {
	stats := s.memory.Stats()
	n := s.memory.Clear()
	if s.disk != nil {
		d, err := s.disk.Clear()
		if err != nil {
			s.logger.Warn().Err(err).Msg("trend cache clear failed")
		}
		n += d
	}
	s.logger.Info().
		Int("removed", n).
		Int64("memory_hits", stats.Hits).
		Int64("memory_misses", stats.Misses).
		Msg("trend cache cleared")
	return n
}

func cacheKey(normalized string) string {
	sum := md5.Sum([]byte(normalized)) //nolint:gosec // cache key
	return hex.EncodeToString(sum[:])
}
