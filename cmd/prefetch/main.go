// Command prefetch warms the dataset download cache and reports table counts,
// so the first server start (or a container health check) does not pay the
// download cost.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nandini/ppi-explorer/internal/config"
	"github.com/nandini/ppi-explorer/internal/dataset"
	"github.com/nandini/ppi-explorer/internal/logging"
)

func main() {
	var (
		edges = flag.String("edges", "", "edge table source (overrides EDGES_SOURCE)")
		idmap = flag.String("idmap", "", "identifier table source (overrides IDMAP_SOURCE)")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "prefetch")

	if *edges != "" {
		cfg.Data.EdgesSource = *edges
	}
	if *idmap != "" {
		cfg.Data.IdmapSource = *idmap
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	store, err := dataset.Open(ctx, dataset.Options{
		EdgesSource:     cfg.Data.EdgesSource,
		IdmapSource:     cfg.Data.IdmapSource,
		CacheDir:        cfg.Data.CacheDir,
		DownloadTimeout: cfg.Data.DownloadTimeout,
		Logger:          logger,
	})
	if err != nil {
		logger.Error("prefetch failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	edgeCount, proteinCount := store.Counts()
	logger.Info("prefetch complete",
		"edges", edgeCount,
		"proteins", proteinCount,
		"duration", time.Since(start).String(),
	)
}
