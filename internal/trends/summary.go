// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package trends

import (
	"fmt"
	"slices"

	"github.com/tomtom215/moodboard/internal/models"
)

const (
	directionThreshold = 15.0 // percent
	sparklinePoints    = 10
)

// Summarize reduces an interest series to the compact card view.
// The series is assumed to be in chronological order, one point per day.
func Summarize(keyword string, s models.TrendSeries) models.TrendSummary {
	data := s.Data
	if s.Error != "" || len(data) == 0 {
		return models.UnknownTrend(keyword)
	}
	if len(data) < 2 {
		current := data[0]
		return models.TrendSummary{
			Keyword:   keyword,
			Direction: models.TrendUnknown,
			Sparkline: slices.Clone(data),
			Current:   &current,
		}
	}

	current := data[len(data)-1]
	previous := data[0]

	var pct float64
	switch {
	case previous > 0:
		pct = float64(current-previous) / float64(previous) * 100
	case current > 0:
		pct = 100
	}

	direction := models.TrendStable
	if pct > directionThreshold {
		direction = models.TrendRising
	} else if pct < -directionThreshold {
		direction = models.TrendFalling
	}

	change := fmt.Sprintf("%d%%", int(pct))
	if pct >= 0 {
		change = "+" + change
	}

	peak := peakLabel(len(data) - 1 - peakIndex(data))

	return models.TrendSummary{
		Keyword:   keyword,
		Direction: direction,
		Change:    &change,
		Sparkline: sparkline(data),
		Peak:      &peak,
		Current:   &current,
	}
}

// peakIndex returns the index of the first maximum.
func peakIndex(data []int) int {
	best := 0
	for i, v := range data {
		if v > data[best] {
			best = i
		}
	}
	return best
}

// peakLabel describes a peak daysAgo points before the latest one.
func peakLabel(daysAgo int) string {
	if daysAgo == 0 {
		return "now"
	}
	weeks := daysAgo / 7
	switch {
	case weeks == 0:
		return "this week"
	case weeks == 1:
		return "1 week ago"
	case weeks < 4:
		return fmt.Sprintf("%d weeks ago", weeks)
	}
	if months := weeks / 4; months != 1 {
		return fmt.Sprintf("%d months ago", months)
	}
	return "1 month ago"
}

// sparkline samples at most ten evenly stepped points.
func sparkline(data []int) []int {
	if len(data) <= sparklinePoints {
		return slices.Clone(data)
	}
	step := len(data) / sparklinePoints
	out := make([]int, 0, sparklinePoints)
	for i := 0; i < len(data) && len(out) < sparklinePoints; i += step {
		out = append(out, data[i])
	}
	return out
}
