package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/easybill/internal/schema"
)

// handleSendInvoices marks the invoices of the marked rows as sent.
// Send {"force": true} to include rows that were sent before.
func (s *Server) handleSendInvoices(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Force bool `json:"force"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.SendInvoices(ctx, tableKey(r), req.Force)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleCreateShipments flags shipments as created for the marked rows.
func (s *Server) handleCreateShipments(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.CreateShipments(ctx, tableKey(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleSetChecklistFlag sets one workflow flag of an order.
func (s *Server) handleSetChecklistFlag(w http.ResponseWriter, r *http.Request) {
	nr, err := nrParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	n, ok := nr.LeadingInt()
	if !ok {
		fail(w, r, fmt.Errorf("%w: nr %q has no order number", errBadRequest, nr))
		return
	}

	var req struct {
		Field schema.ChecklistField `json:"field"`
		Value bool                  `json:"value"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	c, err := s.service.SetChecklistFlag(ctx, n, req.Field, req.Value)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, c)
}

// handleReload re-reads the fixtures, discarding all edits.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.Reload(ctx); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, map[string]any{
		"status":   "reloaded",
		"loadedAt": s.service.LoadedAt(),
	})
}
