// Command importvenues loads the venue catalogue from a CSV export.
//
//	importvenues -file recintos.csv
//
// Rows are upserted by código, so the same file can be imported again after
// corrections.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	regapp "github.com/sereci/sirepre/internal/application/registration"
	"github.com/sereci/sirepre/internal/infrastructure/cache"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	"github.com/sereci/sirepre/internal/infrastructure/logger"
	"github.com/sereci/sirepre/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		file     string
		logLevel string
		timeout  time.Duration
	)
	flag.StringVar(&file, "file", "", "CSV file with the venue catalogue (required)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Abort the import after this long")
	flag.Parse()

	if file == "" {
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	f, err := os.Open(file)
	if err != nil {
		log.Fatal("Failed to open CSV file", zap.String("file", file), zap.Error(err))
	}
	defer f.Close()
	if info, err := f.Stat(); err == nil {
		log.Info("Importing venues",
			zap.String("file", file),
			zap.String("size", humanize.Bytes(uint64(info.Size()))),
		)
	}

	db, err := persistence.NewDatabase(&cfg.Database, log, "warn")
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// The server caches the venue list; importing through the service drops
	// the shared Redis entry so the form sees the new catalogue.
	var venueCache cache.VenueCache
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, server caches expire on their own", zap.Error(err))
		} else {
			defer client.Close()
			venueCache = cache.NewVenueCache(client, cfg.Redis.VenueCacheTTL, log)
		}
	}

	venues := regapp.NewVenueService(persistence.NewGormVenueRepository(db.DB), venueCache, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	result, err := venues.Import(ctx, f)
	if err != nil {
		log.Fatal("Import failed", zap.Error(err))
	}

	for _, rowErr := range result.Errors {
		log.Warn("Row rejected",
			zap.Int("row", rowErr.Row),
			zap.String("column", rowErr.Column),
			zap.String("code", rowErr.Code),
			zap.String("value", rowErr.Value),
			zap.String("message", rowErr.Message),
		)
	}
	if result.IsTruncated {
		log.Warn("Only the first row errors were listed", zap.Int("listed", len(result.Errors)))
	}

	log.Info("Import finished",
		zap.String("rows", humanize.Comma(int64(result.Total()))),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
		zap.Duration("took", time.Since(start).Round(time.Millisecond)),
	)
	if result.Failed > 0 {
		os.Exit(1)
	}
}
