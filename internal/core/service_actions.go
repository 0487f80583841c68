package core

// service_actions.go holds the bulk actions of the toolbar. They run over
// the marked rows that are currently visible and only change dashboard
// state: no invoice is sent and no shipment is booked with a carrier.

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/easybill/internal/schema"
)

// markedNrs returns the marked visible rows of t and their order numbers.
// Callers hold s.mu.
func markedNrs(t *tableState) ([]schema.Order, []int, error) {
	rows := t.view.MarkedRows()
	if len(rows) == 0 {
		return nil, nil, ErrNoRowsMarked
	}
	nrs := make([]int, 0, len(rows))
	for _, o := range rows {
		if n, ok := o.Nr.LeadingInt(); ok {
			nrs = append(nrs, n)
		}
	}
	return rows, nrs, nil
}

// SendInvoices marks the invoices of the marked rows as sent. If some of
// them were sent already the action is refused unless force is set.
// Marks are cleared on success.
func (s *Service) SendInvoices(ctx context.Context, key string, force bool) (ActionResult, error) {
	s.mu.Lock()
	t, err := s.table(key)
	if err != nil {
		s.mu.Unlock()
		return ActionResult{}, err
	}
	rows, nrs, err := markedNrs(t)
	if err != nil {
		s.mu.Unlock()
		return ActionResult{}, err
	}

	sent := 0
	for _, o := range rows {
		if s.checklist.Flag(o.Nr, schema.RechnungVersendet) {
			sent++
		}
	}
	if sent > 0 && !force {
		s.mu.Unlock()
		return ActionResult{}, fmt.Errorf("%w: %d of %d marked rows", ErrAlreadySent, sent, len(rows))
	}

	marked := make(map[schema.Nr]bool, len(rows))
	result := ActionResult{Affected: len(rows)}
	for _, o := range rows {
		marked[o.Nr] = true
		result.Identities = append(result.Identities, o.Nr)
	}

	data := make([]schema.Order, len(t.view.Data()))
	for i, o := range t.view.Data() {
		if marked[o.Nr] {
			o.StatusRechnungsversand = schema.InvoiceSent
		}
		data[i] = o
	}
	if err := t.view.SetData(data); err != nil {
		s.mu.Unlock()
		return ActionResult{}, err
	}

	s.checklist = s.checklist.WithFlags(nrs, schema.RechnungVersendet, true)
	t.view.ClearMarks()
	s.refreshLocked()
	s.mu.Unlock()

	s.recordAudit(ctx, AuditEntry{
		Action:       ActionSendInvoices,
		TableKey:     key,
		RowKey:       joinNrs(result.Identities),
		RowsAffected: result.Affected,
		Reason:       forceReason(force, sent),
	})
	return result, nil
}

// CreateShipments sets sendungErstellt on the marked rows that do not
// have it yet. Rows that already have a shipment are skipped. Marks are
// cleared on success.
func (s *Service) CreateShipments(ctx context.Context, key string) (ActionResult, error) {
	s.mu.Lock()
	t, err := s.table(key)
	if err != nil {
		s.mu.Unlock()
		return ActionResult{}, err
	}
	rows, _, err := markedNrs(t)
	if err != nil {
		s.mu.Unlock()
		return ActionResult{}, err
	}

	var (
		result ActionResult
		nrs    []int
	)
	for _, o := range rows {
		n, ok := o.Nr.LeadingInt()
		if !ok || s.checklist.Flag(o.Nr, schema.SendungErstellt) {
			result.Skipped++
			continue
		}
		nrs = append(nrs, n)
		result.Identities = append(result.Identities, o.Nr)
	}
	result.Affected = len(result.Identities)

	s.checklist = s.checklist.WithFlags(nrs, schema.SendungErstellt, true)
	t.view.ClearMarks()
	s.refreshLocked()
	s.mu.Unlock()

	s.recordAudit(ctx, AuditEntry{
		Action:       ActionCreateShipments,
		TableKey:     key,
		RowKey:       joinNrs(result.Identities),
		RowsAffected: result.Affected,
	})
	return result, nil
}

func forceReason(force bool, alreadySent int) string {
	if !force || alreadySent == 0 {
		return ""
	}
	return fmt.Sprintf("forced, %d already sent", alreadySent)
}
