package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JonMunkholm/easybill/internal/datatable"
	"github.com/JonMunkholm/easybill/internal/schema"
)

// EditableFields are the order fields that can be changed inline.
var EditableFields = []string{
	"versandverpackung",
	"versanddienstleister",
	"versandprofil",
	"kundeAdresse",
	"email",
	"telefonnummer",
}

// withView runs fn on the engine of table key under the write lock.
func (s *Service) withView(key string, fn func(v *OrderView) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(key)
	if err != nil {
		return err
	}
	return fn(t.view)
}

// MarkRow marks or unmarks one row. With shift the whole range back to
// the last marked row follows the clicked row's new state.
func (s *Service) MarkRow(key string, nr schema.Nr, shift bool) error {
	return s.withView(key, func(v *OrderView) error {
		return v.MarkRow(nr, datatable.MarkEvent{Shift: shift})
	})
}

// ToggleMarkAll marks every visible row, or clears all marks if any exist.
func (s *Service) ToggleMarkAll(key string) error {
	return s.withView(key, func(v *OrderView) error {
		v.ToggleMarkAll()
		return nil
	})
}

// ClearMarks removes every mark of table key.
func (s *Service) ClearMarks(key string) error {
	return s.withView(key, func(v *OrderView) error {
		v.ClearMarks()
		return nil
	})
}

// ToggleSelected flips the selection of one row.
func (s *Service) ToggleSelected(key string, nr schema.Nr) error {
	return s.withView(key, func(v *OrderView) error {
		if _, ok := v.Find(nr); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRow, nr)
		}
		v.ToggleRowSelected(nr)
		return nil
	})
}

// ToggleAllOnPage selects the current page, or clears it when fully selected.
func (s *Service) ToggleAllOnPage(key string) error {
	return s.withView(key, func(v *OrderView) error {
		v.ToggleAllOnPage()
		return nil
	})
}

// SetRowSelection replaces the selection from visible row indices.
func (s *Service) SetRowSelection(key string, byIndex map[int]bool) error {
	return s.withView(key, func(v *OrderView) error {
		v.SetRowSelection(byIndex)
		return nil
	})
}

// ToggleSelectedForMarked selects all marked rows, or deselects them
// when all are already selected.
func (s *Service) ToggleSelectedForMarked(key string) error {
	return s.withView(key, func(v *OrderView) error {
		v.ToggleSelectedForMarked()
		return nil
	})
}

// SetColumnVisibility shows or hides one column.
func (s *Service) SetColumnVisibility(key, columnID string, visible bool) error {
	return s.withView(key, func(v *OrderView) error {
		return v.SetColumnVisibility(columnID, visible)
	})
}

// HideAllFloating hides every checklist column.
func (s *Service) HideAllFloating(key string) error {
	return s.withView(key, func(v *OrderView) error {
		v.HideAllFloating()
		return nil
	})
}

// ReorderRows moves the row at visible index from to visible index to.
func (s *Service) ReorderRows(ctx context.Context, key string, from, to int) error {
	var moved schema.Nr
	err := s.withView(key, func(v *OrderView) error {
		rows := v.Rows()
		if from >= 0 && from < len(rows) {
			moved = rows[from].Nr
		}
		_, err := v.ReorderRow(from, to)
		return err
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, AuditEntry{
		Action:   ActionRowReorder,
		TableKey: key,
		RowKey:   moved.String(),
		OldValue: fmt.Sprint(from),
		NewValue: fmt.Sprint(to),
	})
	return nil
}

// DeleteRows removes rows from table key until the next reload. Unknown
// identities are skipped. Marks are cleared.
func (s *Service) DeleteRows(ctx context.Context, key string, nrs []schema.Nr) (ActionResult, error) {
	var result ActionResult
	err := s.withView(key, func(v *OrderView) error {
		drop := datatable.NewSet(nrs...)
		data := v.Data()
		next := make([]schema.Order, 0, len(data))
		for _, o := range data {
			if drop.Has(o.Nr) {
				result.Identities = append(result.Identities, o.Nr)
				continue
			}
			next = append(next, o)
		}
		result.Affected = len(result.Identities)
		result.Skipped = drop.Len() - result.Affected

		if err := v.SetData(next); err != nil {
			return err
		}
		v.ClearMarks()
		return nil
	})
	if err != nil {
		return ActionResult{}, err
	}

	s.recordAudit(ctx, AuditEntry{
		Action:       ActionRowDelete,
		TableKey:     key,
		RowKey:       joinNrs(result.Identities),
		RowsAffected: result.Affected,
	})
	return result, nil
}

// UpdateField changes one editable field of row nr in table key and
// returns the updated row.
//
// Setting a shipping profile with a fixed carrier also sets the carrier
// and the versandprofilHinzugefuegt flag of the order. A profile of "" or
// "-" removes the profile.
func (s *Service) UpdateField(ctx context.Context, key string, nr schema.Nr, field, value string) (schema.Order, error) {
	if !slices.Contains(EditableFields, field) {
		return schema.Order{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	value = strings.TrimSpace(value)

	var (
		updated  schema.Order
		oldValue string
	)
	err := s.withView(key, func(v *OrderView) error {
		data := slices.Clone(v.Data())
		i := slices.IndexFunc(data, func(o schema.Order) bool { return o.Nr == nr })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrUnknownRow, nr)
		}

		o := &data[i]
		switch field {
		case "versandverpackung":
			oldValue, o.Versandverpackung = o.Versandverpackung, value
		case "versanddienstleister":
			oldValue, o.Versanddienstleister = o.Versanddienstleister, value
		case "kundeAdresse":
			oldValue, o.KundeAdresse = o.KundeAdresse, value
		case "email":
			oldValue, o.Email = o.Email, value
		case "telefonnummer":
			oldValue, o.Telefonnummer = o.Telefonnummer, value
		case "versandprofil":
			oldValue = o.Profile()
			s.applyProfile(o, value)
		}

		if err := v.SetData(data); err != nil {
			return err
		}
		s.refreshLocked()
		updated = *o
		return nil
	})
	if err != nil {
		return schema.Order{}, err
	}

	s.recordAudit(ctx, AuditEntry{
		Action:     ActionCellEdit,
		TableKey:   key,
		RowKey:     nr.String(),
		ColumnName: field,
		OldValue:   oldValue,
		NewValue:   value,
	})
	return updated, nil
}

// applyProfile sets the profile of o and derives carrier and checklist
// flag. Callers hold s.mu.
func (s *Service) applyProfile(o *schema.Order, profile string) {
	if profile == "" || profile == "-" {
		o.Versandprofil = nil
		return
	}
	o.Versandprofil = schema.Str(profile)

	carrier, ok := schema.CarrierFor(profile)
	if !ok {
		return
	}
	o.Versanddienstleister = carrier
	if n, ok := o.Nr.LeadingInt(); ok {
		s.checklist = s.checklist.WithFlag(n, schema.VersandprofilHinzugefuegt, true)
	}
}

// SetChecklistFlag sets one workflow flag of order nr. The checklist map
// is replaced, never modified, and every table is re-filtered.
func (s *Service) SetChecklistFlag(ctx context.Context, nr int, field schema.ChecklistField, value bool) (schema.Checklist, error) {
	if !field.Valid() {
		return schema.Checklist{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	s.mu.Lock()
	old := s.checklist.Flag(schema.IntNr(nr), field)
	s.checklist = s.checklist.WithFlag(nr, field, value)
	c, _ := s.checklist.Get(nr)
	s.refreshLocked()
	s.mu.Unlock()

	s.recordAudit(ctx, AuditEntry{
		Action:     ActionChecklistToggle,
		RowKey:     fmt.Sprint(nr),
		ColumnName: string(field),
		OldValue:   fmt.Sprint(old),
		NewValue:   fmt.Sprint(value),
	})
	return c, nil
}

// refreshLocked re-runs filtering and sorting of every table after a
// checklist change. Callers hold s.mu.
func (s *Service) refreshLocked() {
	for _, t := range s.tables {
		t.view.Refresh()
	}
}

func joinNrs(nrs []schema.Nr) string {
	parts := make([]string, len(nrs))
	for i, nr := range nrs {
		parts[i] = nr.String()
	}
	return strings.Join(parts, ",")
}
