// Package admin provides maintenance operations for the audit database.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ResetTimeout is the maximum duration for audit maintenance operations.
const ResetTimeout = 30 * time.Second

// AuditStore is the part of the audit database that maintenance touches.
// core.PgAuditSink satisfies it.
type AuditStore interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
	Reset(ctx context.Context) error
}

// Maintenance runs administrative operations on the audit store.
type Maintenance struct {
	Audit AuditStore
}

type maintenanceFn func(ctx context.Context) error

// ResetAll deletes every audit entry.
// This is a destructive operation - use with caution.
func (m *Maintenance) ResetAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	if err := m.run(ctx, []maintenanceFn{m.Audit.Reset}); err != nil {
		return err
	}
	slog.Warn("audit log reset")
	return nil
}

// PurgeOlderThan deletes entries older than retention and returns how
// many were removed.
func (m *Maintenance) PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("retention must be positive, got %s", retention)
	}
	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	var deleted int64
	err := m.run(ctx, []maintenanceFn{func(ctx context.Context) error {
		n, err := m.Audit.Purge(ctx, retention)
		deleted = n
		return err
	}})
	if err != nil {
		return 0, err
	}
	slog.Info("audit log purged", "deleted", deleted, "retention", retention.String())
	return deleted, nil
}

func (m *Maintenance) run(ctx context.Context, steps []maintenanceFn) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
