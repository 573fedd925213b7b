package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Lilw3n/multisite-platform-sub002/internal/config"
	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/metrics"
	"github.com/Lilw3n/multisite-platform-sub002/internal/sqlite"
)

func loadConfig() (config.Config, error) {
	if configFile != "" {
		return config.LoadFrom(configFile)
	}
	return config.Load()
}

// app bundles the long-lived dependencies shared by every command.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sqlite.DB
	projects *project.Service
	closers  []io.Closer
}

// newApp opens the database and loads the project store. Logs go to stderr
// when stdout carries protocol traffic or command output.
func newApp(ctx context.Context, cfg config.Config, logToStderr bool) (*app, error) {
	a := &app{cfg: cfg}

	logWriter := io.Writer(os.Stdout)
	if logToStderr {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		file, err := openCappedLog(cfg.Log.Path, maxLogSizeBytes, keepLogSizeBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file)
			logWriter = file
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.db = db
	a.closers = append([]io.Closer{db}, a.closers...)

	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := sqlite.NewSnapshotRepository(db, cfg.Store.SnapshotKey)
	a.projects = project.NewService(repo, a.logger,
		project.WithObserver(metrics.StoreObserver{}),
		project.WithDemoFallback(cfg.Store.SeedDemo),
	)
	a.projects.Load(ctx)
	return a, nil
}

// Close releases the database and log file.
func (a *app) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
