// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package models

// TrendDirection summarizes the movement of search interest.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendStable  TrendDirection = "stable"
	TrendUnknown TrendDirection = "unknown"
)

// TrendSummary is the compact popularity view shown next to a vibe.
// Nil pointers serialize as null when no data is available.
type TrendSummary struct {
	Keyword   string         `json:"keyword"`
	Direction TrendDirection `json:"direction"`
	Change    *string        `json:"change"`    // "+34%", "-12%"
	Sparkline []int          `json:"sparkline"` // at most 10 points
	Peak      *string        `json:"peak"`      // "now", "2 weeks ago"
	Current   *int           `json:"current"`   // 0-100
}

// UnknownTrend is returned when no interest data is available.
func UnknownTrend(keyword string) TrendSummary {
	return TrendSummary{
		Keyword:   keyword,
		Direction: TrendUnknown,
		Sparkline: []int{},
	}
}

// TrendSeries is the raw interest-over-time data for a keyword.
type TrendSeries struct {
	Keyword   string   `json:"keyword"`
	Data      []int    `json:"data"`
	Dates     []string `json:"dates,omitempty"`
	Timeframe string   `json:"timeframe,omitempty"`
	Error     string   `json:"error,omitempty"` // "no_data", "unavailable"
}
