package core

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionReload          AuditAction = "reload"
	ActionCellEdit        AuditAction = "cell_edit"
	ActionRowDelete       AuditAction = "row_delete"
	ActionRowReorder      AuditAction = "row_reorder"
	ActionChecklistToggle AuditAction = "checklist_toggle"
	ActionSendInvoices    AuditAction = "send_invoices"
	ActionCreateShipments AuditAction = "create_shipments"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "low"
	SeverityMedium   AuditSeverity = "medium"
	SeverityHigh     AuditSeverity = "high"
	SeverityCritical AuditSeverity = "critical"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID           string        `json:"id"`
	Action       AuditAction   `json:"action"`
	Severity     AuditSeverity `json:"severity"`
	TableKey     string        `json:"tableKey,omitempty"`
	IPAddress    string        `json:"ipAddress,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	RequestID    string        `json:"requestId,omitempty"`
	RowKey       string        `json:"rowKey,omitempty"`
	ColumnName   string        `json:"columnName,omitempty"`
	OldValue     string        `json:"oldValue,omitempty"`
	NewValue     string        `json:"newValue,omitempty"`
	RowsAffected int           `json:"rowsAffected,omitempty"`
	Reason       string        `json:"reason,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// AuditQuery filters audit entries. Zero fields match everything.
type AuditQuery struct {
	TableKey string
	Action   AuditAction
	Limit    int
}

// DefaultAuditLimit caps audit queries without a limit.
const DefaultAuditLimit = 100

// AuditSink stores audit entries.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
	Recent(ctx context.Context, q AuditQuery) ([]AuditEntry, error)
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionSendInvoices, ActionCreateShipments, ActionRowDelete:
		return SeverityHigh
	case ActionReload:
		return SeverityCritical
	case ActionRowReorder:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// recordAudit completes entry from ctx and hands it to the sink. Audit
// failures are logged and never fail the audited operation.
func (s *Service) recordAudit(ctx context.Context, entry AuditEntry) {
	entry.ID = uuid.NewString()
	entry.Severity = determineSeverity(entry.Action)
	entry.IPAddress = GetIPAddressFromContext(ctx)
	entry.UserAgent = GetUserAgentFromContext(ctx)
	entry.RequestID = GetRequestIDFromContext(ctx)
	entry.CreatedAt = time.Now().UTC()

	if err := s.audit.Record(ctx, entry); err != nil {
		slog.Warn("audit record failed", "action", entry.Action, "table", entry.TableKey, "error", err)
	}
}

// AuditLog returns recent audit entries, newest first.
func (s *Service) AuditLog(ctx context.Context, q AuditQuery) ([]AuditEntry, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultAuditLimit
	}
	return s.audit.Recent(ctx, q)
}

// MemoryAuditSink keeps the most recent entries in memory. It is the
// sink used when no audit database is configured.
type MemoryAuditSink struct {
	mu      sync.Mutex
	max     int
	entries []AuditEntry
}

// NewMemoryAuditSink keeps at most max entries.
func NewMemoryAuditSink(max int) *MemoryAuditSink {
	if max <= 0 {
		max = DefaultAuditLimit
	}
	return &MemoryAuditSink{max: max}
}

func (m *MemoryAuditSink) Record(_ context.Context, entry AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	if over := len(m.entries) - m.max; over > 0 {
		m.entries = slices.Delete(m.entries, 0, over)
	}
	slog.Info("audit", "action", entry.Action, "table", entry.TableKey, "rows", entry.RowsAffected, "request_id", entry.RequestID)
	return nil
}

func (m *MemoryAuditSink) Recent(_ context.Context, q AuditQuery) ([]AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []AuditEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if q.TableKey != "" && e.TableKey != q.TableKey {
			continue
		}
		if q.Action != "" && e.Action != q.Action {
			continue
		}
		out = append(out, e)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}
