package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/arrxxhh/walmart/config"
	"github.com/arrxxhh/walmart/internal/infrastructure/catalog"
	"github.com/arrxxhh/walmart/internal/infrastructure/logging"
)

var (
	inPath   = flag.String("in", "", "Catalog file to import (.json, .yaml or .yml)")
	dbPath   = flag.String("db", "catalog.db", "SQLite database to write")
	logLevel = flag.String("log-level", "info", "Log level")
)

func main() {
	flag.Parse()

	logger := logging.New(config.LogConfig{Level: *logLevel, Format: "console"}, "catalog-import")

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: catalog-import -in catalog.json -db catalog.db")
		os.Exit(2)
	}

	if err := run(context.Background(), *inPath, *dbPath, logger); err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}
}

func run(ctx context.Context, in, db string, logger zerolog.Logger) error {
	data, err := catalog.FileSource{Path: in}.Load(ctx)
	if err != nil {
		return err
	}

	// Reject anything the server would refuse to start with
	cat, err := catalog.New(data)
	if err != nil {
		return err
	}

	if err := catalog.WriteSQLite(ctx, db, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", db, err)
	}

	products, profiles := cat.Stats()
	logger.Info().
		Str("in", in).
		Str("db", db).
		Int("products", products).
		Int("profiles", profiles).
		Msg("catalog imported")

	return nil
}
