// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

// Package config loads Moodboard configuration with Koanf v2.
//
// Sources are layered, later ones winning:
//  1. Defaults from defaultConfig
//  2. An optional YAML file (CONFIG_PATH, config.yaml, /etc/moodboard/config.yaml)
//  3. Environment variables listed in envMappings
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	OpenAI     OpenAIConfig     `koanf:"openai"`
	ShopStyle  ShopStyleConfig  `koanf:"shopstyle"`
	Pipeline   PipelineConfig   `koanf:"pipeline"`
	ImageCheck ImageCheckConfig `koanf:"image_check"`
	Trends     TrendsConfig     `koanf:"trends"`
	Limits     LimitsConfig     `koanf:"limits"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_PORT: listen port (default: 5000)
//   - HTTP_TIMEOUT: read/write timeout (default: 60s)
//   - ENVIRONMENT: development or production
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// SecurityConfig holds CORS and inbound rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings passed to logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// OpenAIConfig configures the vision extractor and the scoring oracle.
// BaseURL may point at any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey         string        `koanf:"api_key"`
	BaseURL        string        `koanf:"base_url"`
	Model          string        `koanf:"model"`
	OracleModel    string        `koanf:"oracle_model"` // defaults to Model when empty
	MaxTokens      int           `koanf:"max_tokens"`
	Temperature    float64       `koanf:"temperature"`
	ExtractTimeout time.Duration `koanf:"extract_timeout"`
	OracleTimeout  time.Duration `koanf:"oracle_timeout"`
	MaxRetries     int           `koanf:"max_retries"`
}

// ShopStyleConfig configures the product search collaborator.
type ShopStyleConfig struct {
	URL            string        `koanf:"url"`
	PID            string        `koanf:"pid"`
	Sort           string        `koanf:"sort"`
	Timeout        time.Duration `koanf:"timeout"`
	RequestsPerSec float64       `koanf:"requests_per_second"`
	Burst          int           `koanf:"burst"`
}

// PipelineConfig holds every ranking policy knob.
type PipelineConfig struct {
	MaxProducts      int           `koanf:"max_products"`
	MaxQueries       int           `koanf:"max_queries"`
	MaxSeedQueries   int           `koanf:"max_seed_queries"`
	MaxBrandQueries  int           `koanf:"max_brand_queries"`
	LimitPerQuery    int           `koanf:"limit_per_query"`
	MaxWorkers       int           `koanf:"max_workers"`
	QueryTimeout     time.Duration `koanf:"query_timeout"`
	TrustedRetailers []string      `koanf:"trusted_retailers"`
	TrustFloor       int           `koanf:"trust_floor"`
	VisualBatchSize  int           `koanf:"visual_batch_size"`
	TextBatchSize    int           `koanf:"text_batch_size"`
	VisualMinScore   int           `koanf:"visual_min_score"`
	TextMinScore     int           `koanf:"text_min_score"`
	NeutralScore     int           `koanf:"neutral_score"`
	TailScore        int           `koanf:"tail_score"`
	MinPerCategory   int           `koanf:"min_per_category"`
	MaxPerCategory   int           `koanf:"max_per_category"`
	CoherenceMinSize int           `koanf:"coherence_min_size"`
	CoherenceMaxSent int           `koanf:"coherence_max_sent"`
	BenchSize        int           `koanf:"bench_size"`
	MaxSwaps         int           `koanf:"max_swaps"`
	CoherenceEnabled bool          `koanf:"coherence_enabled"`
	AffordableMax    float64       `koanf:"affordable_max_price"`
	MidRangeMin      float64       `koanf:"mid_range_min_price"`
	MidRangeMax      float64       `koanf:"mid_range_max_price"`
	LuxuryMin        float64       `koanf:"luxury_min_price"`
}

// ImageCheckConfig configures the optional product image validation stage.
type ImageCheckConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Timeout  time.Duration `koanf:"timeout"`
	MinBytes int64         `koanf:"min_bytes"`
	Workers  int           `koanf:"workers"`
}

// TrendsConfig configures the trend summary service and its cache tiers.
type TrendsConfig struct {
	Enabled      bool          `koanf:"enabled"`
	SourceURL    string        `koanf:"source_url"`
	Timeframe    string        `koanf:"timeframe"`
	Timeout      time.Duration `koanf:"timeout"`
	MemoryTTL    time.Duration `koanf:"memory_ttl"`
	DiskTTL      time.Duration `koanf:"disk_ttl"`
	CachePath    string        `koanf:"cache_path"` // empty keeps the disk tier in memory
	GCInterval   time.Duration `koanf:"gc_interval"`
	GCDiscardPc  float64       `koanf:"gc_discard_ratio"`
	ClearOnStart bool          `koanf:"clear_on_start"` // drop both cache tiers at startup
}

// LimitsConfig bounds the moodcheck request body.
type LimitsConfig struct {
	MaxImages       int   `koanf:"max_images"`
	MaxImageBytes   int64 `koanf:"max_image_bytes"`
	MaxPromptLength int   `koanf:"max_prompt_length"`
	MaxBodyBytes    int64 `koanf:"max_body_bytes"`
}

// Load is an alias for LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// OracleModelName returns the model used for scoring calls.
func (c *OpenAIConfig) OracleModelName() string {
	if c.OracleModel != "" {
		return c.OracleModel
	}
	return c.Model
}
