package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/easybill/internal/config"
	"github.com/JonMunkholm/easybill/internal/core"
	_ "github.com/JonMunkholm/easybill/internal/core/tables" // Register all tables
	"github.com/JonMunkholm/easybill/internal/logging"
	"github.com/JonMunkholm/easybill/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"fixture_dir", cfg.Data.FixtureDir,
		"watch", cfg.Data.Watch,
		"audit_db", cfg.Database.URL != "",
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	opts := core.Options{PageSize: cfg.Table.PageSize}

	if cfg.Table.ViewsFile != "" {
		views, err := config.LoadViews(cfg.Table.ViewsFile)
		if err != nil {
			slog.Error("failed to load table views", "file", cfg.Table.ViewsFile, "error", err)
			os.Exit(1)
		}
		opts.Views = views
	}

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	// The audit database is optional; without it entries stay in memory.
	if cfg.Database.URL != "" {
		pool, err := core.NewPool(jobCtx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// Log which database we connected to
		if u, err := url.Parse(cfg.Database.URL); err == nil {
			slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
		} else {
			slog.Info("connected to database")
		}

		sink, err := core.NewPgAuditSink(jobCtx, pool)
		if err != nil {
			slog.Error("failed to prepare audit table", "error", err)
			os.Exit(1)
		}
		opts.Audit = sink

		go core.StartAuditRetention(jobCtx, sink, core.RetentionConfig{
			Retention:     cfg.Database.AuditRetention,
			CheckInterval: cfg.Database.AuditPurgeInterval,
		})
	}

	fixtures := core.EmbeddedFixtures()
	if cfg.Data.FixtureDir != "" {
		fixtures = core.DirFixtures(cfg.Data.FixtureDir)
	}

	service, err := core.NewService(jobCtx, fixtures, opts)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	// Log registered tables
	slog.Info("tables registered",
		"count", core.TableCount(),
		"groups", len(core.Groups()),
	)

	if cfg.Data.Watch && cfg.Data.FixtureDir != "" {
		go func() {
			if err := service.Watch(jobCtx, cfg.Data.FixtureDir, cfg.Data.WatchDebounce); err != nil {
				slog.Error("fixture watcher failed", "error", err)
			}
		}()
	}

	// Create server with config
	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
