// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
		c.validateOpenAI,
		c.validateShopStyle,
		c.validatePipeline,
		c.validateImageCheck,
		c.validateTrends,
		c.validateLimits,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production; set explicit origins")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}

// validateOpenAI only checks shape. A missing API key is reported by
// RequireCredentials so that tests and local tooling can load config
// without secrets.
func (c *Config) validateOpenAI() error {
	if c.OpenAI.Model == "" {
		return fmt.Errorf("OPENAI_MODEL is required")
	}
	if c.OpenAI.MaxTokens < 1 {
		return fmt.Errorf("OPENAI_MAX_TOKENS must be positive")
	}
	if c.OpenAI.BaseURL != "" {
		if err := validateHTTPURL(c.OpenAI.BaseURL, "OPENAI_BASE_URL"); err != nil {
			return err
		}
	}
	if c.OpenAI.ExtractTimeout <= 0 || c.OpenAI.OracleTimeout <= 0 {
		return fmt.Errorf("OpenAI timeouts must be positive")
	}
	return nil
}

func (c *Config) validateShopStyle() error {
	if err := validateHTTPURL(c.ShopStyle.URL, "SHOPSTYLE_URL"); err != nil {
		return err
	}
	if c.ShopStyle.Timeout <= 0 {
		return fmt.Errorf("SHOPSTYLE_TIMEOUT must be positive")
	}
	if c.ShopStyle.RequestsPerSec <= 0 || c.ShopStyle.Burst < 1 {
		return fmt.Errorf("SHOPSTYLE_RPS and SHOPSTYLE_BURST must be positive")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	p := &c.Pipeline
	positive := map[string]int{
		"PIPELINE_MAX_PRODUCTS":      p.MaxProducts,
		"pipeline.max_queries":       p.MaxQueries,
		"PIPELINE_LIMIT_PER_QUERY":   p.LimitPerQuery,
		"PIPELINE_MAX_WORKERS":       p.MaxWorkers,
		"PIPELINE_VISUAL_BATCH_SIZE": p.VisualBatchSize,
		"PIPELINE_MAX_PER_CATEGORY":  p.MaxPerCategory,
	}
	for name, v := range positive {
		if v < 1 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	if p.TextBatchSize < 0 || p.MaxSwaps < 0 || p.BenchSize < 0 || p.TrustFloor < 0 || p.MinPerCategory < 0 {
		return fmt.Errorf("pipeline sizes must not be negative")
	}
	if p.MinPerCategory > p.MaxPerCategory {
		return fmt.Errorf("PIPELINE_MIN_PER_CATEGORY (%d) exceeds PIPELINE_MAX_PER_CATEGORY (%d)", p.MinPerCategory, p.MaxPerCategory)
	}
	for name, v := range map[string]int{
		"PIPELINE_VISUAL_MIN_SCORE": p.VisualMinScore,
		"PIPELINE_TEXT_MIN_SCORE":   p.TextMinScore,
		"PIPELINE_NEUTRAL_SCORE":    p.NeutralScore,
		"PIPELINE_TAIL_SCORE":       p.TailScore,
	} {
		if v < 0 || v > 10 {
			return fmt.Errorf("%s must be between 0 and 10, got %d", name, v)
		}
	}
	if p.QueryTimeout <= 0 {
		return fmt.Errorf("PIPELINE_QUERY_TIMEOUT must be positive")
	}
	if p.MidRangeMin > p.MidRangeMax {
		return fmt.Errorf("mid-range price bounds are inverted: %.2f > %.2f", p.MidRangeMin, p.MidRangeMax)
	}
	return nil
}

func (c *Config) validateImageCheck() error {
	if !c.ImageCheck.Enabled {
		return nil
	}
	if c.ImageCheck.Workers < 1 {
		return fmt.Errorf("IMAGE_CHECK_WORKERS must be positive")
	}
	if c.ImageCheck.Timeout <= 0 {
		return fmt.Errorf("IMAGE_CHECK_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateTrends() error {
	if !c.Trends.Enabled {
		return nil
	}
	if c.Trends.SourceURL != "" {
		if err := validateHTTPURL(c.Trends.SourceURL, "TRENDS_SOURCE_URL"); err != nil {
			return err
		}
	}
	if c.Trends.MemoryTTL <= 0 || c.Trends.DiskTTL <= 0 {
		return fmt.Errorf("trend cache TTLs must be positive")
	}
	if c.Trends.GCDiscardPc <= 0 || c.Trends.GCDiscardPc >= 1 {
		return fmt.Errorf("trends.gc_discard_ratio must be in (0, 1)")
	}
	return nil
}

func (c *Config) validateLimits() error {
	if c.Limits.MaxImages < 1 || c.Limits.MaxImageBytes < 1 || c.Limits.MaxPromptLength < 1 {
		return fmt.Errorf("request limits must be positive")
	}
	return nil
}

// RequireCredentials reports missing secrets needed to serve traffic.
func (c *Config) RequireCredentials() error {
	var missing []string
	if c.OpenAI.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.ShopStyle.PID == "" {
		missing = append(missing, "SHOPSTYLE_PID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}
