package core

// scheduler.go provides background maintenance for the audit database.
//
// The retention job deletes audit entries older than the configured
// retention. It runs once on start and then on every interval until the
// context is cancelled. Failed runs are logged and retried on the next
// tick; they never stop the application.

import (
	"context"
	"log/slog"
	"time"
)

// AuditPurger deletes audit entries older than a retention period.
type AuditPurger interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

// RetentionConfig holds configuration for the retention scheduler.
type RetentionConfig struct {
	Retention     time.Duration // Age after which entries are deleted; 0 disables the job
	CheckInterval time.Duration // How often to run (default: 24h)
}

// StartAuditRetention blocks, purging expired audit entries on every
// CheckInterval. Run it in its own goroutine.
func StartAuditRetention(ctx context.Context, purger AuditPurger, cfg RetentionConfig) {
	if cfg.Retention <= 0 {
		slog.Info("audit retention disabled")
		return
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 24 * time.Hour
	}

	slog.Info("audit retention scheduler started",
		"retention", cfg.Retention.String(),
		"interval", cfg.CheckInterval.String(),
	)

	// Run immediately on startup
	runRetentionJob(ctx, purger, cfg.Retention)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit retention scheduler stopped")
			return
		case <-ticker.C:
			runRetentionJob(ctx, purger, cfg.Retention)
		}
	}
}

// runRetentionJob performs one purge cycle.
func runRetentionJob(ctx context.Context, purger AuditPurger, retention time.Duration) {
	start := time.Now()
	purged, err := purger.Purge(ctx, retention)
	if err != nil {
		slog.Error("audit purge failed", "error", err)
		return
	}
	slog.Info("purged audit entries",
		"entries_purged", purged,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
