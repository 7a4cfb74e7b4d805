package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/arrxxhh/walmart/config"
	httpDelivery "github.com/arrxxhh/walmart/internal/delivery/http"
	"github.com/arrxxhh/walmart/internal/domain"
	"github.com/arrxxhh/walmart/internal/infrastructure/cache"
	"github.com/arrxxhh/walmart/internal/infrastructure/catalog"
	"github.com/arrxxhh/walmart/internal/infrastructure/logging"
	"github.com/arrxxhh/walmart/internal/usecase"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, "allergen-scanner")
	logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("starting allergen scanner")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx := context.Background()

	// Catalog is loaded once and never mutated afterwards
	source, err := catalog.NewSource(cfg.Catalog.Source, cfg.Catalog.Path)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(ctx, source, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	var scanCache domain.CacheRepository
	if cfg.Cache.Enabled {
		memoryCache := cache.NewMemoryCache(cfg.Cache.TTL)
		defer memoryCache.Close()
		scanCache = memoryCache
		logger.Info().Str("type", cfg.Cache.Type).Dur("ttl", cfg.Cache.TTL).Msg("scan cache enabled")
	}

	policy, err := usecase.ParseCategoryPolicy(cfg.Ranking.CategoryPolicy)
	if err != nil {
		return err
	}

	// Initialize usecase layer
	scanner := usecase.NewScannerService(
		cat,
		scanCache,
		usecase.ScannerServiceConfig{
			DefaultLimit:        cfg.Ranking.DefaultLimit,
			MaxLimit:            cfg.Ranking.MaxLimit,
			CategoryPolicy:      policy,
			MinAlternativeScore: cfg.Ranking.MinAlternativeScore,
			CacheTTL:            cfg.Cache.TTL,
		},
		logger,
	)
	matcher := usecase.NewProductMatcher(usecase.MatchConfig{MinConfidence: cfg.Matching.MinConfidence}, logger)
	cart := usecase.NewCartService(scanner, matcher, logger)

	logger.Info().
		Str("category_policy", string(policy)).
		Int("default_limit", cfg.Ranking.DefaultLimit).
		Int("max_limit", cfg.Ranking.MaxLimit).
		Float64("min_confidence", cfg.Matching.MinConfidence).
		Msg("ranking configured")

	if cfg.IsDevelopment() {
		logger.Info().Strs("allowed_origins", cfg.Server.AllowedOrigins).Msg("development mode")
	}

	handler := httpDelivery.NewHandler(scanner, cart, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}
