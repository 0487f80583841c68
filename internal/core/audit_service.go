package core

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/easybill/internal/config"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS easybill_audit (
	id            UUID PRIMARY KEY,
	action        TEXT NOT NULL,
	severity      TEXT NOT NULL,
	table_key     TEXT,
	ip_address    INET,
	user_agent    TEXT,
	request_id    TEXT,
	row_key       TEXT,
	column_name   TEXT,
	old_value     TEXT,
	new_value     TEXT,
	rows_affected INTEGER,
	reason        TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS easybill_audit_created_at_idx ON easybill_audit (created_at DESC);
`

// PgAuditSink persists audit entries in PostgreSQL.
type PgAuditSink struct {
	pool *pgxpool.Pool
}

// NewPool opens a connection pool sized from cfg and verifies it with a ping.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// NewPgAuditSink creates the audit table if needed.
func NewPgAuditSink(ctx context.Context, pool *pgxpool.Pool) (*PgAuditSink, error) {
	if _, err := pool.Exec(ctx, auditSchema); err != nil {
		return nil, fmt.Errorf("create audit table: %w", err)
	}
	return &PgAuditSink{pool: pool}, nil
}

// Record inserts one entry.
func (a *PgAuditSink) Record(ctx context.Context, e AuditEntry) error {
	id, err := toPgUUID(e.ID)
	if err != nil {
		return err
	}

	_, err = a.pool.Exec(ctx, `
		INSERT INTO easybill_audit (
			id, action, severity, table_key, ip_address, user_agent, request_id,
			row_key, column_name, old_value, new_value, rows_affected, reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		id,
		string(e.Action),
		string(e.Severity),
		toPgText(e.TableKey),
		parseIP(e.IPAddress),
		toPgText(e.UserAgent),
		toPgText(e.RequestID),
		toPgText(e.RowKey),
		toPgText(e.ColumnName),
		toPgText(e.OldValue),
		toPgText(e.NewValue),
		pgtype.Int4{Int32: int32(e.RowsAffected), Valid: e.RowsAffected != 0},
		toPgText(e.Reason),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries matching q.
func (a *PgAuditSink) Recent(ctx context.Context, q AuditQuery) ([]AuditEntry, error) {
	var (
		conditions []string
		args       []any
	)
	if q.TableKey != "" {
		args = append(args, q.TableKey)
		conditions = append(conditions, fmt.Sprintf("table_key = $%d", len(args)))
	}
	if q.Action != "" {
		args = append(args, string(q.Action))
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	args = append(args, limit)

	query := `SELECT id, action, severity, table_key, host(ip_address), user_agent, request_id,
		row_key, column_name, old_value, new_value, rows_affected, reason, created_at
		FROM easybill_audit`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		e, err := scanAuditRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Purge deletes entries older than retention and returns how many went.
func (a *PgAuditSink) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM easybill_audit WHERE created_at < $1`, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("purge audit log: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAuditRow(rows pgx.Rows) (AuditEntry, error) {
	var (
		e        AuditEntry
		id       pgtype.UUID
		affected pgtype.Int4
		text     [11]pgtype.Text
	)
	if err := rows.Scan(&id, &text[0], &text[1], &text[2], &text[3], &text[4], &text[5],
		&text[6], &text[7], &text[8], &text[9], &affected, &text[10], &e.CreatedAt); err != nil {
		return AuditEntry{}, fmt.Errorf("scan audit row: %w", err)
	}

	e.ID = uuid.UUID(id.Bytes).String()
	e.Action = AuditAction(text[0].String)
	e.Severity = AuditSeverity(text[1].String)
	e.TableKey = text[2].String
	e.IPAddress = text[3].String
	e.UserAgent = text[4].String
	e.RequestID = text[5].String
	e.RowKey = text[6].String
	e.ColumnName = text[7].String
	e.OldValue = text[8].String
	e.NewValue = text[9].String
	e.RowsAffected = int(affected.Int32)
	e.Reason = text[10].String
	return e, nil
}

func toPgUUID(s string) (pgtype.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid audit id %q: %w", s, err)
	}
	return pgtype.UUID{Bytes: id, Valid: true}, nil
}

func toPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// parseIP strips a port and returns nil for anything that is not an address.
func parseIP(s string) *netip.Addr {
	if s == "" {
		return nil
	}
	host := s
	if h, _, err := net.SplitHostPort(s); err == nil {
		host = h
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return nil
	}
	return &addr
}

// Reset removes every audit entry.
func (a *PgAuditSink) Reset(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, `TRUNCATE easybill_audit`); err != nil {
		return fmt.Errorf("reset audit log: %w", err)
	}
	return nil
}
