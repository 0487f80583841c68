package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/easybill/internal/web/templates"
)

// handleListTables returns all registered tables.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.ListTables())
}

// handleTableView applies the query parameters to a table and returns the
// resulting page as JSON.
func (s *Server) handleTableView(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		fail(w, r, err)
		return
	}

	view, err := s.service.TableView(tableKey(r), q)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, view)
}

// handleTablePage renders the table page, or only the table for HTMX requests.
func (s *Server) handleTablePage(w http.ResponseWriter, r *http.Request) {
	key := tableKey(r)
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		fail(w, r, err)
		return
	}

	view, err := s.service.TableView(key, q)
	if err != nil {
		fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isHTMX(r) {
		err = templates.TablePartial(view).Render(r.Context(), w)
	} else {
		sidebar := templates.SidebarParams{Tables: s.service.ListTables(), ActiveTable: key}
		err = templates.TablePage(sidebar, view).Render(r.Context(), w)
	}
	if err != nil {
		slog.Warn("render table page", "table", key, "error", err)
	}
}

// handleChecklist returns the checklist map keyed by order number.
func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Checklist())
}

// handleExportData exports the filtered and sorted rows of a table as CSV.
func (s *Server) handleExportData(w http.ResponseWriter, r *http.Request) {
	key := tableKey(r)
	if _, err := s.service.Rows(key); err != nil {
		fail(w, r, err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.csv", key, timestamp)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	n, err := s.service.ExportCSV(r.Context(), key, w)
	if err != nil {
		// Headers are already sent.
		slog.Warn("export failed", "table", key, "rows", n, "error", err)
		return
	}
	slog.Debug("table exported", "table", key, "rows", n)
}
