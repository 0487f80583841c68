package web

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/web/templates"
)

// auditQuery reads the table, action and limit parameters.
func auditQuery(r *http.Request) core.AuditQuery {
	return core.AuditQuery{
		TableKey: r.URL.Query().Get("table"),
		Action:   core.AuditAction(r.URL.Query().Get("action")),
		Limit:    parseIntParam(r, "limit", core.DefaultAuditLimit),
	}
}

// handleAuditLog returns recent audit entries as JSON, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.AuditLog(r.Context(), auditQuery(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}
	writeJSON(w, entries)
}

// handleAuditLogPage renders the audit log page.
func (s *Server) handleAuditLogPage(w http.ResponseWriter, r *http.Request) {
	q := auditQuery(r)
	entries, err := s.service.AuditLog(r.Context(), q)
	if err != nil {
		fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	sidebar := templates.SidebarParams{Tables: s.service.ListTables(), ActivePage: "audit"}
	if err := templates.AuditLogPage(sidebar, q, entries).Render(r.Context(), w); err != nil {
		slog.Warn("render audit log", "error", err)
	}
}

// handleAuditLogExport exports audit entries as a CSV file.
func (s *Server) handleAuditLogExport(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.AuditLog(r.Context(), auditQuery(r))
	if err != nil {
		fail(w, r, err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="audit_log_%s.csv"`, timestamp))

	csvWriter := csv.NewWriter(w)
	_ = csvWriter.Write([]string{
		"ID", "Timestamp", "Action", "Severity", "Table",
		"IP Address", "Request ID", "Row Key", "Column",
		"Old Value", "New Value", "Rows Affected", "Reason",
	})
	for _, e := range entries {
		if err := csvWriter.Write([]string{
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			string(e.Action),
			string(e.Severity),
			e.TableKey,
			e.IPAddress,
			e.RequestID,
			e.RowKey,
			e.ColumnName,
			e.OldValue,
			e.NewValue,
			strconv.Itoa(e.RowsAffected),
			e.Reason,
		}); err != nil {
			slog.Warn("audit export failed", "error", err)
			return
		}
	}
	csvWriter.Flush()
}
