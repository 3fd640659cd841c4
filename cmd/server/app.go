package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/costtrack/internal/api"
	"github.com/rpggio/costtrack/internal/config"
	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/insight"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/export"
	"github.com/rpggio/costtrack/internal/gemini"
	"github.com/rpggio/costtrack/internal/mcp"
	"github.com/rpggio/costtrack/internal/sqlite"
	"github.com/rpggio/costtrack/internal/store"
	"gopkg.in/natefinch/lumberjack.v2"
)

// app holds the wired services shared by every command.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	db      *sqlite.DB
	store   *store.Store
	apiKeys *sqlite.APIKeyRepository

	activity  *activity.Service
	projects  *project.Service
	expenses  *expense.Service
	labor     *labor.Service
	inventory *inventory.Service
	metrics   *metrics.Service
	insight   *insight.Service
	export    *export.Service

	logFile io.Closer
}

func newLogger(cfg config.Config) (*slog.Logger, io.Closer) {
	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	var w io.Writer = os.Stdout
	if cfg.Transport.Mode == "stdio" {
		w = os.Stderr
	}
	var closer io.Closer
	if cfg.Log.Path != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.Log.Path,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		}
		w = io.MultiWriter(w, rotated)
		closer = rotated
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, closer
}

func bootstrap(ctx context.Context, cfg config.Config) (*app, error) {
	logger, logFile := newLogger(cfg)
	a := &app{cfg: cfg, logger: logger, logFile: logFile}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db
	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, err
	}

	st, err := store.Open(ctx, sqlite.NewKVRepository(db), cfg.Store.Namespace, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = st
	a.apiKeys = sqlite.NewAPIKeyRepository(db)

	projectRepo := store.NewProjectRepository(st)
	expenseRepo := store.NewExpenseRepository(st)
	laborRepo := store.NewLaborRepository(st)

	a.activity = activity.NewService(sqlite.NewActivityRepository(db), logger)
	a.projects = project.NewService(projectRepo, a.activity, logger)
	a.expenses = expense.NewService(expenseRepo, a.activity, logger)
	a.labor = labor.NewService(laborRepo, a.activity, logger)
	a.inventory = inventory.NewService(store.NewInventoryRepository(st), a.activity, logger)
	a.metrics = metrics.NewService(projectRepo, expenseRepo, laborRepo)

	if cfg.Store.SeedDemo {
		if _, err := a.projects.SeedDemo(activity.WithActor(ctx, "seed")); err != nil {
			a.Close()
			return nil, err
		}
	}

	var generator insight.Generator
	if cfg.AI.APIKey != "" {
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
			BaseURL: cfg.AI.BaseURL,
		}, logger)
		if err != nil {
			logger.Warn("gemini client unavailable, insights will use fallback text", "error", err)
		} else {
			generator = client
		}
	} else {
		logger.Info("no AI API key configured, insights will use fallback text")
	}
	a.insight = insight.NewService(a.metrics, generator, a.activity, logger)
	a.export = export.NewService(a.projects, a.expenses, a.metrics, cfg.Export.Dir, logger)

	return a, nil
}

func (a *app) mcpServices() mcp.Services {
	return mcp.Services{
		Projects:  a.projects,
		Expenses:  a.expenses,
		Labor:     a.labor,
		Inventory: a.inventory,
		Metrics:   a.metrics,
		Insight:   a.insight,
		Export:    a.export,
		Activity:  a.activity,
	}
}

func (a *app) apiServices() api.Services {
	return api.Services{
		Projects:  a.projects,
		Expenses:  a.expenses,
		Labor:     a.labor,
		Inventory: a.inventory,
		Metrics:   a.metrics,
		Insight:   a.insight,
		Export:    a.export,
		Activity:  a.activity,
	}
}

// Close flushes the store and releases the database and log file.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Flush(context.Background()); err != nil {
			a.logger.Error("final flush failed", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
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

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
