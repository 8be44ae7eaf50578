// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package models defines the data structures shared across Moodboard.

Key types:

  - AestheticProfile: structured mood extracted from inspiration images
  - RawProduct: one record returned by the product search collaborator
  - Candidate: a RawProduct enriched by the ranking pipeline
  - OracleRequest / OracleVerdict: batches sent to the scoring oracle
  - TrendSeries / TrendSummary: search interest data and its card view
  - MoodcheckRequest / MoodcheckResult: the public API payloads
  - APIError: the error object of the HTTP response envelope

Candidates are created once per pipeline run and mutated in place by each
stage; nothing here is persisted across requests.
*/
package models
