// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package vision

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/tomtom215/moodboard/internal/models"
	"github.com/tomtom215/moodboard/internal/shopping"
)

var _ shopping.Scorer = (*Client)(nil)

// Models sometimes answer with fractional numbers, so indices and scores
// are decoded as floats and rounded.
type scoreEntry struct {
	Index float64 `json:"index"`
	Score float64 `json:"score"`
}

type relevanceResponse struct {
	Scores []scoreEntry `json:"scores"`
}

type decisionEntry struct {
	Index  float64 `json:"index"`
	Action string  `json:"action"`
	Reason string  `json:"reason"`
}

type coherenceResponse struct {
	Decisions []decisionEntry `json:"decisions"`
}

// ScoreBatch asks the model about one batch of products. Indices in the
// answer are returned as given; the caller normalizes them.
func (c *Client) ScoreBatch(ctx context.Context, req models.OracleRequest) ([]models.OracleVerdict, error) {
	if len(req.Items) == 0 {
		return nil, nil
	}

	system := relevanceSystem
	if req.Mode == models.OracleCoherence {
		system = coherenceSystem
	}

	text, err := c.complete(ctx, completion{
		mode:        string(req.Mode),
		model:       c.cfg.OracleModel,
		temperature: oracleTemperature,
		timeout:     c.cfg.OracleTimeout,
		messages: []openai.ChatCompletionMessageParamUnion{
			systemMessage(system),
			userMessage(oracleParts(req)),
		},
	})
	if err != nil {
		return nil, err
	}

	switch req.Mode {
	case models.OracleCoherence:
		return parseDecisions(text)
	case models.OracleRelevance:
		return parseScores(text)
	default:
		return nil, fmt.Errorf("unknown oracle mode %q", req.Mode)
	}
}

// oracleParts lists the profile and the numbered items. In visual mode each
// item line is followed by its image at low detail.
func oracleParts(req models.OracleRequest) []openai.ChatCompletionContentPartUnionParam {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, 2*len(req.Items)+1)

	var b strings.Builder
	b.WriteString(describeProfile(req.Profile))
	b.WriteString("\n\nProducts:")
	if !req.Visual {
		for _, it := range req.Items {
			b.WriteString("\n")
			b.WriteString(describeItem(it))
		}
		return append(parts, textPart(b.String()))
	}

	parts = append(parts, textPart(b.String()))
	for _, it := range req.Items {
		parts = append(parts, textPart(describeItem(it)))
		if it.ImageURL != "" {
			parts = append(parts, imagePart(it.ImageURL, true))
		}
	}
	return parts
}

func parseScores(text string) ([]models.OracleVerdict, error) {
	var resp relevanceResponse
	if err := decodeObject(text, &resp); err != nil {
		return nil, err
	}
	out := make([]models.OracleVerdict, 0, len(resp.Scores))
	for _, s := range resp.Scores {
		out = append(out, models.OracleVerdict{
			Index: int(math.Round(s.Index)),
			Score: int(math.Round(s.Score)),
		})
	}
	return out, nil
}

func parseDecisions(text string) ([]models.OracleVerdict, error) {
	var resp coherenceResponse
	if err := decodeObject(text, &resp); err != nil {
		return nil, err
	}
	out := make([]models.OracleVerdict, 0, len(resp.Decisions))
	for _, d := range resp.Decisions {
		out = append(out, models.OracleVerdict{
			Index:  int(math.Round(d.Index)),
			Action: strings.ToLower(strings.TrimSpace(d.Action)),
			Reason: d.Reason,
		})
	}
	return out, nil
}
