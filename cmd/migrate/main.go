package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/ptorrado/predio/internal/config"
	"github.com/ptorrado/predio/internal/database"
)

// Applies every .sql file under migrations/ in lexical order. Files are
// written to be idempotent (CREATE TABLE IF NOT EXISTS), so re-running is
// safe.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		slog.Error("failed to list migrations", "error", err)
		os.Exit(1)
	}

	sort.Strings(files)

	ctx := context.Background()

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			slog.Error("failed to read migration", "file", file, "error", err)
			os.Exit(1)
		}

		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			slog.Error("failed to apply migration", "file", file, "error", err)
			os.Exit(1)
		}

		slog.Info("applied migration", "file", file)
	}

	slog.Info("migrations complete", "count", len(files))
}
