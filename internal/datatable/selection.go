package datatable

// ToggleRowSelected flips the selection of one row.
func (v *View[T, K]) ToggleRowSelected(id K) {
	v.selection.Set(v.selection.Get().Toggle(id))
	v.notify(ChangeSelection)
}

// ToggleAllOnPage selects every row of the current page, or clears them
// when all are already selected.
func (v *View[T, K]) ToggleAllOnPage() {
	page := v.Page().Rows
	if len(page) == 0 {
		return
	}
	sel := v.selection.Get()

	ids := make([]K, len(page))
	all := true
	for i, r := range page {
		ids[i] = v.identity(r)
		if !sel.Has(ids[i]) {
			all = false
		}
	}
	if all {
		sel = sel.Without(ids...)
	} else {
		sel = sel.With(ids...)
	}
	v.selection.Set(sel)
	v.notify(ChangeSelection)
}

// SetRowSelection replaces the selection from an index-keyed map. Keys
// are positions in Rows; they are translated to identities at once.
// Out-of-range indices are ignored.
func (v *View[T, K]) SetRowSelection(byIndex map[int]bool) {
	ids := make([]K, 0, len(byIndex))
	for i, selected := range byIndex {
		if selected && i >= 0 && i < len(v.rows) {
			ids = append(ids, v.identity(v.rows[i]))
		}
	}
	v.selection.Set(NewSet(ids...))
	v.notify(ChangeSelection)
}

// SetSelection replaces the selection with ids.
func (v *View[T, K]) SetSelection(ids Set[K]) {
	v.selection.Set(ids)
	v.notify(ChangeSelection)
}

// Selection returns the selected identities, visible or not.
func (v *View[T, K]) Selection() Set[K] { return v.selection.Get() }

// RowSelection returns the selection keyed by position in Rows. Selected
// rows that are filtered out are not included.
func (v *View[T, K]) RowSelection() map[int]bool {
	sel := v.selection.Get()
	out := make(map[int]bool, sel.Len())
	sel.Each(func(id K) {
		if i, ok := v.index[id]; ok {
			out[i] = true
		}
	})
	return out
}

// IsSelected reports whether row id is selected.
func (v *View[T, K]) IsSelected(id K) bool { return v.selection.Get().Has(id) }

// SelectedRows returns the visible selected rows in row order.
func (v *View[T, K]) SelectedRows() []T {
	return v.rowsIn(v.selection.Get())
}

// ToggleSelectedForMarked selects all visible marked rows, or deselects
// them when every one is already selected.
func (v *View[T, K]) ToggleSelectedForMarked() {
	marked := v.MarkedRows()
	if len(marked) == 0 {
		return
	}
	sel := v.selection.Get()

	ids := make([]K, len(marked))
	all := true
	for i, r := range marked {
		ids[i] = v.identity(r)
		if !sel.Has(ids[i]) {
			all = false
		}
	}
	if all {
		sel = sel.Without(ids...)
	} else {
		sel = sel.With(ids...)
	}
	v.selection.Set(sel)
	v.notify(ChangeSelection)
}

func (v *View[T, K]) rowsIn(s Set[K]) []T {
	var out []T
	for _, r := range v.rows {
		if s.Has(v.identity(r)) {
			out = append(out, r)
		}
	}
	return out
}
