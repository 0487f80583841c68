package datatable

import "fmt"

// SetColumnVisibility shows or hides a column. The column stays in the
// definition set.
func (v *View[T, K]) SetColumnVisibility(columnID string, visible bool) error {
	col, err := v.column(columnID)
	if err != nil {
		return err
	}
	if !col.EnableHiding {
		return fmt.Errorf("%w: %s", ErrNotHideable, columnID)
	}
	v.visibility.Set(v.visibility.Get().with(columnID, visible))
	v.notify(ChangeVisibility)
	return nil
}

// HideAllFloating hides every hideable floating column.
func (v *View[T, K]) HideAllFloating() {
	next := make(Visibility)
	for k, val := range v.visibility.Get() {
		next[k] = val
	}
	for _, col := range v.columns {
		if col.Floating && col.EnableHiding {
			next[col.ID] = false
		}
	}
	v.visibility.Set(next)
	v.notify(ChangeVisibility)
}

// Visibility returns the current column visibility.
func (v *View[T, K]) Visibility() Visibility { return v.visibility.Get() }

// IsColumnVisible reports whether column id is shown.
func (v *View[T, K]) IsColumnVisible(id string) bool {
	return v.visibility.Get().Visible(id)
}

// VisibleColumns returns the shown columns in definition order.
func (v *View[T, K]) VisibleColumns() []ColumnDef[T] {
	vis := v.visibility.Get()
	out := make([]ColumnDef[T], 0, len(v.columns))
	for _, col := range v.columns {
		if vis.Visible(col.ID) {
			out = append(out, col)
		}
	}
	return out
}

// FloatingOffsets returns the distance in px of each visible floating
// column from the trailing edge. The last defined visible column sits at
// 0 and each earlier one FloatingColumnWidth further in. Hidden floating
// columns are absent. Offsets are derived from the current visibility on
// every call.
func (v *View[T, K]) FloatingOffsets() map[string]int {
	vis := v.visibility.Get()
	var floating []string
	for _, col := range v.columns {
		if col.Floating && vis.Visible(col.ID) {
			floating = append(floating, col.ID)
		}
	}

	n := len(floating)
	offsets := make(map[string]int, n)
	for i, id := range floating {
		offsets[id] = (n - 1 - i) * FloatingColumnWidth
	}
	return offsets
}
