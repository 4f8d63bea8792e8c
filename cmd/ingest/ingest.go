// Package ingest implements the ingest command: it runs the processing
// pipeline over a feed of raw scraped records.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/tourcrawl/internal/config"
	"github.com/jonesrussell/tourcrawl/internal/database"
	"github.com/jonesrussell/tourcrawl/internal/feed"
	"github.com/jonesrussell/tourcrawl/internal/geocode"
	"github.com/jonesrussell/tourcrawl/internal/logger"
	"github.com/jonesrussell/tourcrawl/internal/metrics"
	"github.com/jonesrussell/tourcrawl/internal/pipeline"
)

// Command returns the ingest command for use in the root command.
func Command() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "ingest [records.ndjson]",
		Short: "Run the processing pipeline over a feed of raw records",
		Long: `Reads raw candidate records (one JSON object per line) produced by the
extraction step, then validates, deduplicates, geocodes and stores each
record and prints the run statistics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], workers)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "override the configured worker count")

	return cmd
}

func run(ctx context.Context, feedPath string, workersOverride int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage unavailability is the only run-fatal error.
	db, err := database.NewSQLiteConnection(ctx, database.Config{Path: cfg.Database.Path})
	if err != nil {
		return fmt.Errorf("failed to open storage backend: %w", err)
	}
	defer db.Close()

	var resolver geocode.Resolver
	if cfg.Geocoding.Enabled {
		resolver = geocode.NewChain(cfg.Geocoding, log)
	}

	p := pipeline.New(
		pipeline.Options{
			ValidationEnabled: cfg.Pipeline.ValidationEnabled,
			GeocodingEnabled:  cfg.Geocoding.Enabled,
		},
		resolver,
		database.NewActivityRepository(db),
		metrics.NewDefault(),
		log,
	)

	source, err := os.Open(feedPath)
	if err != nil {
		return fmt.Errorf("failed to open feed: %w", err)
	}
	defer source.Close()

	workers := cfg.Pipeline.Workers
	if workersOverride > 0 {
		workers = workersOverride
	}

	log.Info("ingest started",
		"feed", feedPath,
		"database", cfg.Database.Path,
		"workers", workers,
		"geocoding", cfg.Geocoding.Enabled,
	)

	reader := feed.NewReader(cfg.App.Version, log)
	runErr := pipeline.NewRunner(p, workers, log).Run(ctx, reader.Stream(ctx, source))

	report := p.Report()
	renderReport(os.Stdout, report)

	if reportPath, writeErr := writeReport(cfg.Stats.ReportDir, report); writeErr != nil {
		log.Error("failed to write statistics report", "error", writeErr)
	} else {
		log.Info("statistics report written", "path", reportPath)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("pipeline run failed: %w", runErr)
	}

	return nil
}
