package datatable

// MarkEvent carries the modifier state of a mark click.
type MarkEvent struct {
	Shift bool
}

// MarkRow toggles the mark of row id.
//
// With Shift held and a previously marked row still visible, the whole
// range between the two rows in the current row order is set to the
// opposite of the clicked row's mark state. The clicked row becomes the
// new anchor either way.
func (v *View[T, K]) MarkRow(id K, ev MarkEvent) error {
	cur, ok := v.index[id]
	if !ok {
		return ErrRowNotVisible
	}

	anchor := v.LastMarkedIndex()
	if ev.Shift && anchor >= 0 {
		lo, hi := min(anchor, cur), max(anchor, cur)
		ids := make([]K, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			ids = append(ids, v.identity(v.rows[i]))
		}
		if v.marks.Has(id) {
			v.marks = v.marks.Without(ids...)
		} else {
			v.marks = v.marks.With(ids...)
		}
	} else {
		v.marks = v.marks.Toggle(id)
	}

	v.lastMarked = &id
	v.notify(ChangeMark)
	return nil
}

// ToggleMarkAll clears all marks when any row is marked, otherwise
// marks every visible row.
func (v *View[T, K]) ToggleMarkAll() {
	if v.marks.Len() > 0 {
		v.marks = NewSet[K]()
	} else {
		ids := make([]K, len(v.rows))
		for i, r := range v.rows {
			ids[i] = v.identity(r)
		}
		v.marks = NewSet(ids...)
	}
	v.notify(ChangeMark)
}

// ClearMarks removes every mark and the range anchor.
func (v *View[T, K]) ClearMarks() {
	v.marks = NewSet[K]()
	v.lastMarked = nil
	v.notify(ChangeMark)
}

// IsMarked reports whether row id is marked.
func (v *View[T, K]) IsMarked(id K) bool { return v.marks.Has(id) }

// Marks returns the marked identities, visible or not.
func (v *View[T, K]) Marks() Set[K] { return v.marks }

// MarkedRows returns the visible marked rows in row order.
func (v *View[T, K]) MarkedRows() []T { return v.rowsIn(v.marks) }

// LastMarkedIndex returns the current position of the last clicked row,
// or -1 when there is none or it is filtered out.
func (v *View[T, K]) LastMarkedIndex() int {
	if v.lastMarked == nil {
		return -1
	}
	return v.VisibleIndex(*v.lastMarked)
}
