package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/top-places-service/internal/adapter/http"
	"github.com/couchcryptid/top-places-service/internal/adapter/yelp"
	"github.com/couchcryptid/top-places-service/internal/cache"
	"github.com/couchcryptid/top-places-service/internal/config"
	"github.com/couchcryptid/top-places-service/internal/observability"
	"github.com/couchcryptid/top-places-service/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := yelp.NewClient(cfg.YelpAPIKey, metrics, logger)
	responseCache := cache.New(cache.DefaultMaxEntries, cache.DefaultTTL, nil)
	svc := search.New(client, responseCache, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
