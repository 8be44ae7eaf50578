// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package vision talks to an OpenAI-compatible chat completions API for two
jobs: extracting an aesthetic profile from inspiration images, and acting as
the scoring oracle for the ranking pipeline (relevance scores and coherence
keep/swap decisions).

All calls share one circuit breaker ("openai-api") and record the oracle
request metrics labeled by call mode ("extract", "relevance", "coherence").
*/
package vision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/metrics"
	"github.com/tomtom215/moodboard/internal/resilience"
)

// ErrMissingAPIKey is returned by New without credentials.
var ErrMissingAPIKey = errors.New("openai api key is required")

// errEmptyResponse is returned when the model produced no choices.
var errEmptyResponse = errors.New("model returned no choices")

// oracleTemperature keeps scoring close to deterministic.
const oracleTemperature = 0.2

// Config configures a Client.
type Config struct {
	APIKey         string
	BaseURL        string // empty uses the SDK default
	Model          string
	OracleModel    string // empty uses Model
	MaxTokens      int
	Temperature    float64
	ExtractTimeout time.Duration
	OracleTimeout  time.Duration
	MaxRetries     int
}

// Client is both the profile extractor and the scoring oracle.
// It is safe for concurrent use.
type Client struct {
	api     openai.Client
	cfg     Config
	breaker *resilience.Breaker[string]
	logger  zerolog.Logger
}

// New creates a client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.OracleModel == "" {
		cfg.OracleModel = cfg.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 45 * time.Second
	}
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = 30 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(max(cfg.MaxRetries, 0)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	logger = logger.With().Str("component", "vision").Logger()
	return &Client{
		api:     openai.NewClient(opts...),
		cfg:     cfg,
		breaker: resilience.New[string]("openai-api", resilience.DefaultSettings(), logger),
		logger:  logger,
	}, nil
}

// completion is one chat call.
type completion struct {
	mode        string
	model       string
	temperature float64
	timeout     time.Duration
	messages    []openai.ChatCompletionMessageParamUnion
}

// complete runs a chat completion that must answer with a JSON object and
// returns the raw message text.
func (c *Client) complete(ctx context.Context, req completion) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, req.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.model),
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
		Temperature: openai.Float(req.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Messages: req.messages,
	}

	start := time.Now()
	text, err := c.breaker.Execute(func() (string, error) {
		resp, err := c.api.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errEmptyResponse
		}
		return resp.Choices[0].Message.Content, nil
	})
	metrics.RecordOracle(req.mode, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", req.mode, err)
	}

	c.logger.Debug().
		Str("mode", req.mode).
		Str("model", req.model).
		Dur("duration", time.Since(start)).
		Int("chars", len(text)).
		Msg("completion received")
	return text, nil
}

func systemMessage(text string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfSystem: &openai.ChatCompletionSystemMessageParam{
			Content: openai.ChatCompletionSystemMessageParamContentUnion{
				OfString: openai.String(text),
			},
		},
	}
}

func userMessage(parts []openai.ChatCompletionContentPartUnionParam) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: parts,
			},
		},
	}
}

func textPart(text string) openai.ChatCompletionContentPartUnionParam {
	return openai.ChatCompletionContentPartUnionParam{
		OfText: &openai.ChatCompletionContentPartTextParam{Text: text},
	}
}

// imagePart attaches an image. Low detail is used for product thumbnails.
func imagePart(url string, low bool) openai.ChatCompletionContentPartUnionParam {
	img := openai.ChatCompletionContentPartImageImageURLParam{URL: url, Detail: "auto"}
	if low {
		img.Detail = "low"
	}
	return openai.ChatCompletionContentPartUnionParam{
		OfImageURL: &openai.ChatCompletionContentPartImageParam{ImageURL: img},
	}
}
