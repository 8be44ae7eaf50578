// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/tomtom215/moodboard/internal/models"
)

// ErrNothingToAnalyze is returned when neither images nor a prompt is given.
var ErrNothingToAnalyze = errors.New("provide images and/or describe the look you want")

// Extract builds an aesthetic profile from image data URIs and an optional
// free-text prompt. Either may be empty but not both.
func (c *Client) Extract(ctx context.Context, images []string, prompt string) (*models.AestheticProfile, error) {
	if len(images) == 0 && strings.TrimSpace(prompt) == "" {
		return nil, ErrNothingToAnalyze
	}

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, imagePart(img, false))
	}
	parts = append(parts, textPart(extractionText(prompt, len(images) > 0)))

	text, err := c.complete(ctx, completion{
		mode:        "extract",
		model:       c.cfg.Model,
		temperature: c.cfg.Temperature,
		timeout:     c.cfg.ExtractTimeout,
		messages:    []openai.ChatCompletionMessageParamUnion{userMessage(parts)},
	})
	if err != nil {
		return nil, err
	}

	var profile models.AestheticProfile
	if err := decodeObject(text, &profile); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrMalformedProfile, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("profile", profile.Name).
		Int("images", len(images)).
		Int("search_queries", len(profile.SearchQueries)).
		Msg("profile extracted")
	return &profile, nil
}
