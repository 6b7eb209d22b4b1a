package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftplan/internal/config"
	"github.com/claude/liftplan/internal/planfile"
	"github.com/claude/liftplan/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	plansPath := flag.String("path", "", "path to plan definitions directory (required)")
	stateDir := flag.String("state-dir", ".liftplan", "directory for the import state database")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *plansPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftplan-import -config config.yaml -path /path/to/plans [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*plansPath)
	if err != nil || !info.IsDir() {
		log.Error("plans path does not exist or is not a directory", "path", *plansPath)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Open import state
	var state *planfile.StateDB
	if !*dryRun {
		state, err = planfile.OpenStateDB(*stateDir)
		if err != nil {
			log.Error("failed to open state db", "error", err)
			os.Exit(1)
		}
		defer state.Close()
	}

	// Run import
	imp := planfile.New(db, state, log, *dryRun)
	stats, err := imp.Import(ctx, *plansPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *planfile.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"plans_created", stats.PlansCreated,
		"exercises_created", stats.ExercisesCreated,
		"exercises_reused", stats.ExercisesReused,
	)
}
