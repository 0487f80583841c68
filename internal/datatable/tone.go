package datatable

// Tone is the highlight of a row or floating cell.
type Tone string

const (
	ToneDefault  Tone = "default"
	ToneMarked   Tone = "marked"
	ToneSelected Tone = "selected"
)

// RowTone returns the highlight of row id. Selection wins over marks.
func (v *View[T, K]) RowTone(id K) Tone {
	switch {
	case v.IsSelected(id):
		return ToneSelected
	case v.IsMarked(id):
		return ToneMarked
	default:
		return ToneDefault
	}
}

// FloatingCellTone returns the highlight of a floating cell. Error
// indicator columns always use the default tone.
func (v *View[T, K]) FloatingCellTone(columnID string, id K) Tone {
	col, err := v.column(columnID)
	if err != nil || col.ErrorIndicator {
		return ToneDefault
	}
	return v.RowTone(id)
}

// ShowsCheckbox reports whether a floating column renders a checkbox.
func (v *View[T, K]) ShowsCheckbox(columnID string) bool {
	col, err := v.column(columnID)
	return err == nil && col.Floating && !col.ErrorIndicator
}
