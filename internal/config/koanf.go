// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodboard/config.yaml",
	"/etc/moodboard/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultTrustedRetailers is the retailer allow-list used by the trust filter.
var DefaultTrustedRetailers = []string{
	"Nordstrom",
	"Shopbop",
	"Net-a-Porter",
	"Saks Fifth Avenue",
	"Bloomingdale's",
	"Revolve",
	"SSENSE",
	"Farfetch",
	"Mytheresa",
	"Madewell",
	"J.Crew",
	"Anthropologie",
	"Free People",
	"Urban Outfitters",
	"ASOS",
	"Zara",
	"H&M",
	"Mango",
	"COS",
	"& Other Stories",
	"Everlane",
	"Reformation",
	"Abercrombie & Fitch",
	"Aritzia",
	"Macy's",
	"Neiman Marcus",
	"Matches",
	"Uniqlo",
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			Timeout:         60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   30,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		OpenAI: OpenAIConfig{
			Model:          "gpt-4o",
			MaxTokens:      2000,
			Temperature:    0.7,
			ExtractTimeout: 45 * time.Second,
			OracleTimeout:  30 * time.Second,
			MaxRetries:     1,
		},
		ShopStyle: ShopStyleConfig{
			URL:            "https://api.shopstyle.com/api/v2/products",
			Sort:           "Popular",
			Timeout:        10 * time.Second,
			RequestsPerSec: 10,
			Burst:          10,
		},
		Pipeline: PipelineConfig{
			MaxProducts:      20,
			MaxQueries:       10,
			MaxSeedQueries:   6,
			MaxBrandQueries:  4,
			LimitPerQuery:    8,
			MaxWorkers:       8,
			QueryTimeout:     10 * time.Second,
			TrustedRetailers: DefaultTrustedRetailers,
			TrustFloor:       10,
			VisualBatchSize:  15,
			TextBatchSize:    15,
			VisualMinScore:   6,
			TextMinScore:     5,
			NeutralScore:     5,
			TailScore:        3,
			MinPerCategory:   1,
			MaxPerCategory:   4,
			CoherenceMinSize: 5,
			CoherenceMaxSent: 15,
			BenchSize:        15,
			MaxSwaps:         3,
			CoherenceEnabled: true,
			AffordableMax:    75,
			MidRangeMin:      50,
			MidRangeMax:      200,
			LuxuryMin:        150,
		},
		ImageCheck: ImageCheckConfig{
			Enabled:  false,
			Timeout:  3 * time.Second,
			MinBytes: 10 * 1024,
			Workers:  10,
		},
		Trends: TrendsConfig{
			Enabled:     true,
			Timeframe:   "today 3-m",
			Timeout:     10 * time.Second,
			MemoryTTL:   time.Hour,
			DiskTTL:     24 * time.Hour,
			CachePath:   "/data/trends",
			GCInterval:  10 * time.Minute,
			GCDiscardPc: 0.5,
		},
		Limits: LimitsConfig{
			MaxImages:       5,
			MaxImageBytes:   5 * 1024 * 1024,
			MaxPromptLength: 500,
			MaxBodyBytes:    40 * 1024 * 1024,
		},
	}
}

// LoadWithKoanf loads defaults, then the optional config file, then
// environment variables, and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"pipeline.trusted_retailers",
}

// processSliceFields converts comma-separated strings into slices. Values
// that already arrived as slices from YAML are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"port":                  "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"openai_api_key":         "openai.api_key",
	"openai_base_url":        "openai.base_url",
	"openai_model":           "openai.model",
	"openai_oracle_model":    "openai.oracle_model",
	"openai_max_tokens":      "openai.max_tokens",
	"openai_temperature":     "openai.temperature",
	"openai_extract_timeout": "openai.extract_timeout",
	"openai_oracle_timeout":  "openai.oracle_timeout",
	"openai_max_retries":     "openai.max_retries",

	"shopstyle_url":     "shopstyle.url",
	"shopstyle_pid":     "shopstyle.pid",
	"shopstyle_sort":    "shopstyle.sort",
	"shopstyle_timeout": "shopstyle.timeout",
	"shopstyle_rps":     "shopstyle.requests_per_second",
	"shopstyle_burst":   "shopstyle.burst",

	"pipeline_max_products":      "pipeline.max_products",
	"pipeline_limit_per_query":   "pipeline.limit_per_query",
	"pipeline_max_workers":       "pipeline.max_workers",
	"pipeline_query_timeout":     "pipeline.query_timeout",
	"trusted_retailers":          "pipeline.trusted_retailers",
	"pipeline_trust_floor":       "pipeline.trust_floor",
	"pipeline_visual_batch_size": "pipeline.visual_batch_size",
	"pipeline_text_batch_size":   "pipeline.text_batch_size",
	"pipeline_visual_min_score":  "pipeline.visual_min_score",
	"pipeline_text_min_score":    "pipeline.text_min_score",
	"pipeline_neutral_score":     "pipeline.neutral_score",
	"pipeline_tail_score":        "pipeline.tail_score",
	"pipeline_min_per_category":  "pipeline.min_per_category",
	"pipeline_max_per_category":  "pipeline.max_per_category",
	"pipeline_max_swaps":         "pipeline.max_swaps",
	"pipeline_bench_size":        "pipeline.bench_size",
	"pipeline_coherence_enabled": "pipeline.coherence_enabled",

	"image_check_enabled":   "image_check.enabled",
	"image_check_timeout":   "image_check.timeout",
	"image_check_min_bytes": "image_check.min_bytes",
	"image_check_workers":   "image_check.workers",

	"trends_enabled":        "trends.enabled",
	"trends_source_url":     "trends.source_url",
	"trends_timeframe":      "trends.timeframe",
	"trends_timeout":        "trends.timeout",
	"trends_memory_ttl":     "trends.memory_ttl",
	"trends_disk_ttl":       "trends.disk_ttl",
	"trends_cache_path":     "trends.cache_path",
	"trends_gc_interval":    "trends.gc_interval",
	"trends_clear_on_start": "trends.clear_on_start",

	"max_images":        "limits.max_images",
	"max_image_bytes":   "limits.max_image_bytes",
	"max_prompt_length": "limits.max_prompt_length",
}

// envTransformFunc maps an environment variable name to a koanf path.
//
// Examples:
//   - OPENAI_API_KEY -> openai.api_key
//   - SHOPSTYLE_PID -> shopstyle.pid
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
