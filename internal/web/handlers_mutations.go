package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/schema"
)

// respondView writes the current view of a table after a mutation.
func (s *Server) respondView(w http.ResponseWriter, r *http.Request, key string) {
	view, err := s.service.TableView(key, core.Query{})
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, view)
}

// simple wraps a mutation that only needs the table key.
func (s *Server) simple(fn func(key string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := tableKey(r)
		if err := fn(key); err != nil {
			fail(w, r, err)
			return
		}
		s.respondView(w, r, key)
	}
}

// handleMarkRow marks or unmarks one row; shift extends to the last mark.
func (s *Server) handleMarkRow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nr    schema.Nr `json:"nr"`
		Shift bool      `json:"shift"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if req.Nr.IsZero() {
		fail(w, r, fmt.Errorf("%w: nr is required", errBadRequest))
		return
	}

	key := tableKey(r)
	if err := s.service.MarkRow(key, req.Nr, req.Shift); err != nil {
		fail(w, r, err)
		return
	}
	s.respondView(w, r, key)
}

func (s *Server) handleToggleMarkAll(w http.ResponseWriter, r *http.Request) {
	s.simple(s.service.ToggleMarkAll)(w, r)
}

func (s *Server) handleClearMarks(w http.ResponseWriter, r *http.Request) {
	s.simple(s.service.ClearMarks)(w, r)
}

func (s *Server) handleToggleAllOnPage(w http.ResponseWriter, r *http.Request) {
	s.simple(s.service.ToggleAllOnPage)(w, r)
}

func (s *Server) handleToggleSelectedForMarked(w http.ResponseWriter, r *http.Request) {
	s.simple(s.service.ToggleSelectedForMarked)(w, r)
}

func (s *Server) handleHideFloating(w http.ResponseWriter, r *http.Request) {
	s.simple(s.service.HideAllFloating)(w, r)
}

// handleToggleSelected flips the selection of one row.
func (s *Server) handleToggleSelected(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nr schema.Nr `json:"nr"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	key := tableKey(r)
	if err := s.service.ToggleSelected(key, req.Nr); err != nil {
		fail(w, r, err)
		return
	}
	s.respondView(w, r, key)
}

// handleSetSelection replaces the selection from a map of visible row
// indices, e.g. {"rows": {"0": true, "3": true}}.
func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rows map[int]bool `json:"rows"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	key := tableKey(r)
	if err := s.service.SetRowSelection(key, req.Rows); err != nil {
		fail(w, r, err)
		return
	}
	s.respondView(w, r, key)
}

// handleReorder moves a row between two visible indices.
func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	key := tableKey(r)
	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.ReorderRows(ctx, key, req.From, req.To); err != nil {
		fail(w, r, err)
		return
	}
	s.respondView(w, r, key)
}

// handleVisibility shows or hides one column.
func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Column  string `json:"column"`
		Visible bool   `json:"visible"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if req.Column == "" {
		fail(w, r, fmt.Errorf("%w: column is required", errBadRequest))
		return
	}

	key := tableKey(r)
	if err := s.service.SetColumnVisibility(key, req.Column, req.Visible); err != nil {
		fail(w, r, err)
		return
	}
	s.respondView(w, r, key)
}

// handleDeleteRows removes rows until the next reload.
func (s *Server) handleDeleteRows(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nrs []schema.Nr `json:"nrs"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if len(req.Nrs) == 0 {
		fail(w, r, fmt.Errorf("%w: no rows specified", errBadRequest))
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.DeleteRows(ctx, tableKey(r), req.Nrs)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleUpdateField changes one editable field of a row.
func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	nr, err := nrParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if req.Field == "" {
		fail(w, r, fmt.Errorf("%w: field is required", errBadRequest))
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	order, err := s.service.UpdateField(ctx, tableKey(r), nr, req.Field, req.Value)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, order)
}
