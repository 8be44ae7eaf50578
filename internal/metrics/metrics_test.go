// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSearch(t *testing.T) {
	tests := []struct {
		name    string
		results int
		err     error
		label   string
	}{
		{"success", 5, nil, "success"},
		{"empty", 0, nil, "empty"},
		{"error", 0, errors.New("timeout"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := "test-search-" + tt.name
			before := testutil.ToFloat64(SearchRequests.WithLabelValues(source, tt.label))
			RecordSearch(source, 10*time.Millisecond, tt.results, tt.err)
			after := testutil.ToFloat64(SearchRequests.WithLabelValues(source, tt.label))
			if after-before != 1 {
				t.Errorf("search_requests_total{result=%q} delta = %v, want 1", tt.label, after-before)
			}
		})
	}
}

func TestRecordPipelineRun(t *testing.T) {
	before := testutil.ToFloat64(PipelineRuns.WithLabelValues("empty"))
	RecordPipelineRun(0, nil)
	if got := testutil.ToFloat64(PipelineRuns.WithLabelValues("empty")) - before; got != 1 {
		t.Errorf("empty delta = %v, want 1", got)
	}

	before = testutil.ToFloat64(PipelineRuns.WithLabelValues("error"))
	RecordPipelineRun(3, errors.New("bad input"))
	if got := testutil.ToFloat64(PipelineRuns.WithLabelValues("error")) - before; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestRecordOracle(t *testing.T) {
	before := testutil.ToFloat64(OracleRequests.WithLabelValues("coherence-test", "error"))
	RecordOracle("coherence-test", time.Second, errors.New("malformed"))
	if got := testutil.ToFloat64(OracleRequests.WithLabelValues("coherence-test", "error")) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestRecordSwaps(t *testing.T) {
	before := testutil.ToFloat64(CoherenceSwaps)
	RecordSwaps(0)
	RecordSwaps(2)
	if got := testutil.ToFloat64(CoherenceSwaps) - before; got != 2 {
		t.Errorf("delta = %v, want 2", got)
	}
}

func TestRecordTrendCache(t *testing.T) {
	before := testutil.ToFloat64(TrendCacheRequests.WithLabelValues("memory", "hit"))
	RecordTrendCache("memory", true)
	if got := testutil.ToFloat64(TrendCacheRequests.WithLabelValues("memory", "hit")) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestRecordStageAndAPI(t *testing.T) {
	// Histograms only need to accept observations without panicking.
	RecordStage("fetch", 150*time.Millisecond, 42)
	RecordAPIRequest("POST", "/api/moodcheck", "200", 3*time.Second)
	RecordImageCheck("ok")

	if n := testutil.CollectAndCount(PipelineStageDuration); n < 1 {
		t.Errorf("pipeline_stage_duration_seconds series = %d, want >= 1", n)
	}
}
