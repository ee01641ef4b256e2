package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/liftlog/liftlog/internal/config"
	"github.com/liftlog/liftlog/internal/importer"
	"github.com/liftlog/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("path", "", "path to a CSV file or directory of CSV files (required)")
	userEmail := flag.String("user", "", "email of the user to import sessions for (required)")
	stateDir := flag.String("state", ".liftlog-import", "directory for the import state database")
	dryRun := flag.Bool("dry-run", false, "report counts without writing to the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *csvPath == "" || *userEmail == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -user you@example.com -path workouts.csv [-dry-run]\n")
		flag.PrintDefaults()
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

	user, err := db.GetUserByEmail(ctx, *userEmail)
	if err != nil {
		log.Error("user lookup failed", "email", *userEmail, "error", err)
		os.Exit(1)
	}

	state, err := importer.OpenStateDB(*stateDir)
	if err != nil {
		log.Error("failed to open state db", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	// Run import
	imp := importer.New(db, log, *dryRun)
	stats, err := imp.Import(ctx, state, user.ID, *csvPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"sessions_saved", stats.SessionsSaved,
		"sets_imported", stats.SetsImported,
		"rows_dropped", stats.RowsDropped,
	)
	if len(stats.UnknownExercises) > 0 {
		log.Info("unknown exercises (rows dropped)", "exercises", stats.UnknownExercises)
	}
}
