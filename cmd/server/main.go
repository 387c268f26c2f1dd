package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nandini/ppi-explorer/internal/config"
	"github.com/nandini/ppi-explorer/internal/dataset"
	"github.com/nandini/ppi-explorer/internal/logging"
	"github.com/nandini/ppi-explorer/internal/metrics"
	"github.com/nandini/ppi-explorer/internal/repository"
	"github.com/nandini/ppi-explorer/internal/server"
	"github.com/nandini/ppi-explorer/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	ctx := context.Background()
	store, err := dataset.Open(ctx, dataset.Options{
		EdgesSource:     cfg.Data.EdgesSource,
		IdmapSource:     cfg.Data.IdmapSource,
		CacheDir:        cfg.Data.CacheDir,
		DownloadTimeout: cfg.Data.DownloadTimeout,
		Logger:          logger,
	})
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing dataset failed", "error", err)
		}
	}()

	var (
		m              *metrics.Metrics
		metricsHandler http.Handler
	)
	if cfg.HTTP.MetricsEnabled {
		m = metrics.New()
		metricsHandler = m.Handler()
	}

	repo := repository.New(store.DB())
	explorer := service.NewExplorer(repo, m, logger)
	apiHandlers := server.NewAPIHandlers(logger, explorer)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.DatasetHealthService{Store: store},
		API:              apiHandlers,
		Metrics:          metricsHandler,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
