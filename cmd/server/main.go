// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/moodboard/internal/api"
	"github.com/tomtom215/moodboard/internal/config"
	"github.com/tomtom215/moodboard/internal/imagecheck"
	"github.com/tomtom215/moodboard/internal/logging"
	"github.com/tomtom215/moodboard/internal/metrics"
	"github.com/tomtom215/moodboard/internal/moodcheck"
	"github.com/tomtom215/moodboard/internal/shopping"
	"github.com/tomtom215/moodboard/internal/shopstyle"
	"github.com/tomtom215/moodboard/internal/supervisor"
	"github.com/tomtom215/moodboard/internal/supervisor/services"
	"github.com/tomtom215/moodboard/internal/trends"
	"github.com/tomtom215/moodboard/internal/validation"
	"github.com/tomtom215/moodboard/internal/vision"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Moodboard with supervisor tree")

	if err := cfg.RequireCredentials(); err != nil {
		logging.Fatal().Err(err).Msg("Missing credentials")
	}
	validation.SetMaxImageBytes(cfg.Limits.MaxImageBytes)

	// ========================
	// Collaborators
	// ========================
	searcher, err := shopstyle.New(shopstyle.Config{
		URL:            cfg.ShopStyle.URL,
		PID:            cfg.ShopStyle.PID,
		Sort:           cfg.ShopStyle.Sort,
		Timeout:        cfg.ShopStyle.Timeout,
		RequestsPerSec: cfg.ShopStyle.RequestsPerSec,
		Burst:          cfg.ShopStyle.Burst,
	}, logging.WithComponent("shopstyle"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create product search client")
	}

	visionClient, err := vision.New(vision.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		Model:          cfg.OpenAI.Model,
		OracleModel:    cfg.OpenAI.OracleModelName(),
		MaxTokens:      cfg.OpenAI.MaxTokens,
		Temperature:    cfg.OpenAI.Temperature,
		ExtractTimeout: cfg.OpenAI.ExtractTimeout,
		OracleTimeout:  cfg.OpenAI.OracleTimeout,
		MaxRetries:     cfg.OpenAI.MaxRetries,
	}, logging.WithComponent("vision"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create vision client")
	}

	var engineOpts []shopping.Option
	if cfg.ImageCheck.Enabled {
		engineOpts = append(engineOpts, shopping.WithImageFilter(imagecheck.New(imagecheck.Config{
			Timeout:  cfg.ImageCheck.Timeout,
			MinBytes: cfg.ImageCheck.MinBytes,
			Workers:  cfg.ImageCheck.Workers,
		}, logging.WithComponent("imagecheck"))))
		logging.Info().Msg("Product image validation enabled")
	}

	engine, err := shopping.NewEngine(pipelineConfig(&cfg.Pipeline), searcher, visionClient,
		logging.WithComponent("shopping"), engineOpts...)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create ranking engine")
	}

	// ========================
	// Trends (optional)
	// ========================
	var (
		trendService *trends.Service
		trendStore   *trends.DiskStore
	)
	if cfg.Trends.Enabled {
		trendService, trendStore, err = initTrends(&cfg.Trends)
		if err != nil {
			logging.Warn().Err(err).Msg("Trend summaries disabled")
		}
	} else {
		logging.Info().Msg("Trend summaries disabled (TRENDS_ENABLED=false)")
	}
	if trendStore != nil {
		defer func() {
			if err := trendStore.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing trend cache")
			}
		}()
	}

	// Interfaces must stay untyped nil when trends are off
	var (
		moodTrends moodcheck.TrendLookup
		apiTrends  api.TrendLookup
	)
	if trendService != nil {
		moodTrends = trendService
		apiTrends = trendService
	}

	analyzer, err := moodcheck.New(visionClient, engine, moodTrends, cfg.Pipeline.MaxProducts,
		logging.WithComponent("moodcheck"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create moodcheck service")
	}

	// ========================
	// HTTP
	// ========================
	handler, err := api.NewHandler(api.HandlerConfig{
		Analyzer: analyzer,
		Trends:   apiTrends,
		Limits: validation.Limits{
			MaxImages:       cfg.Limits.MaxImages,
			MaxPromptLength: cfg.Limits.MaxPromptLength,
		},
		MaxBodyBytes: cfg.Limits.MaxBodyBytes,
		Version:      version,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           api.NewRouter(handler, mwConfig).Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 30*time.Second, // a moodcheck may use the full oracle budget
		IdleTimeout:       2 * time.Minute,
	}

	// ========================
	// Supervisor tree
	// ========================
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if trendStore != nil {
		tree.AddDataService(services.NewTrendCacheGCService(trendStore, cfg.Trends.GCInterval,
			cfg.Trends.GCDiscardPc, logging.Logger()))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// initTrends opens the disk cache and builds the trend service.
func initTrends(cfg *config.TrendsConfig) (*trends.Service, *trends.DiskStore, error) {
	logger := logging.WithComponent("trends")

	source, err := trends.NewHTTPSource(trends.SourceConfig{
		URL:       cfg.SourceURL,
		Timeframe: cfg.Timeframe,
		Timeout:   cfg.Timeout,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("trend source: %w", err)
	}

	store, err := trends.OpenDiskStore(cfg.CachePath, cfg.DiskTTL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("trend cache: %w", err)
	}

	logger.Info().
		Str("source", cfg.SourceURL).
		Str("cache_path", cfg.CachePath).
		Dur("memory_ttl", cfg.MemoryTTL).
		Dur("disk_ttl", cfg.DiskTTL).
		Msg("Trend summaries enabled")
	svc := trends.NewService(source, store, cfg.MemoryTTL, logger)
	if cfg.ClearOnStart {
		svc.Clear()
	}
	return svc, store, nil
}

// pipelineConfig maps the loaded pipeline settings onto the engine config.
func pipelineConfig(p *config.PipelineConfig) shopping.Config {
	return shopping.Config{
		MaxQueries:       p.MaxQueries,
		MaxSeedQueries:   p.MaxSeedQueries,
		MaxBrandQueries:  p.MaxBrandQueries,
		LimitPerQuery:    p.LimitPerQuery,
		MaxWorkers:       p.MaxWorkers,
		QueryTimeout:     p.QueryTimeout,
		TrustedRetailers: p.TrustedRetailers,
		TrustFloor:       p.TrustFloor,
		VisualBatchSize:  p.VisualBatchSize,
		TextBatchSize:    p.TextBatchSize,
		VisualMinScore:   p.VisualMinScore,
		TextMinScore:     p.TextMinScore,
		NeutralScore:     p.NeutralScore,
		TailScore:        p.TailScore,
		MinPerCategory:   p.MinPerCategory,
		MaxPerCategory:   p.MaxPerCategory,
		CoherenceEnabled: p.CoherenceEnabled,
		CoherenceMinSize: p.CoherenceMinSize,
		CoherenceMaxSent: p.CoherenceMaxSent,
		BenchSize:        p.BenchSize,
		MaxSwaps:         p.MaxSwaps,
		AffordableMax:    p.AffordableMax,
		MidRangeMin:      p.MidRangeMin,
		MidRangeMax:      p.MidRangeMax,
		LuxuryMin:        p.LuxuryMin,
	}
}
