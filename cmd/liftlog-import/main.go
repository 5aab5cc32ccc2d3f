package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/importer"
	"github.com/claude/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("csv", "", "path to exercise catalog CSV (required)")
	stateDir := flag.String("state-dir", ".", "directory for the import state database")
	force := flag.Bool("force", false, "import even if the file was already imported")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *csvPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -csv exercises.csv [-state-dir DIR] [-force]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*csvPath)
	if err != nil {
		log.Error("CSV file not found", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	hash, err := importer.HashFile(*csvPath)
	if err != nil {
		log.Error("hashing CSV failed", "error", err)
		os.Exit(1)
	}

	state, err := importer.OpenStateDB(*stateDir)
	if err != nil {
		log.Error("opening state database failed", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if !*force {
		done, err := state.IsImported(*csvPath, info.Size(), hash)
		if err != nil {
			log.Error("checking import state failed", "error", err)
			os.Exit(1)
		}
		if done {
			log.Info("file unchanged since last import, skipping", "path", *csvPath)
			return
		}
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

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Error("opening CSV failed", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	// Run import
	imp := importer.New(db, log)
	count, err := imp.ImportCSV(ctx, f)
	if err != nil {
		log.Error("import failed", "error", err, "rows_imported", count)
		os.Exit(1)
	}

	if err := state.MarkImported(*csvPath, info.Size(), hash, count); err != nil {
		log.Warn("recording import state failed", "error", err)
	}

	log.Info("import complete", "path", *csvPath, "rows_imported", count)
}
