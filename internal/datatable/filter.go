package datatable

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// SetColumnFilter filters one column by value. An empty value removes
// the filter. Without a FilterFn the column matches when its text
// contains value, ignoring case.
func (v *View[T, K]) SetColumnFilter(columnID, value string) error {
	if err := v.CheckColumnFilter(columnID); err != nil {
		return err
	}

	if value == "" {
		delete(v.columnFilters, columnID)
	} else {
		v.columnFilters[columnID] = value
	}
	v.recompute()
	v.notify(ChangeFilter)
	return nil
}

// CheckColumnFilter reports whether SetColumnFilter would accept columnID.
func (v *View[T, K]) CheckColumnFilter(columnID string) error {
	col, err := v.column(columnID)
	if err != nil {
		return err
	}
	if !col.filterable() {
		return fmt.Errorf("%w: %s", ErrNotFilterable, columnID)
	}
	return nil
}

// ColumnFilters returns the active column filters.
func (v *View[T, K]) ColumnFilters() map[string]string {
	return maps.Clone(v.columnFilters)
}

// SetGlobalFilter searches every field of every row for value.
func (v *View[T, K]) SetGlobalFilter(value string) error {
	if !v.globalEnabled {
		return ErrGlobalFilterDisabled
	}
	v.globalFilter.Set(value)
	v.recompute()
	v.notify(ChangeFilter)
	return nil
}

// GlobalFilterEnabled reports whether SetGlobalFilter is allowed.
func (v *View[T, K]) GlobalFilterEnabled() bool { return v.globalEnabled }

// GlobalFilter returns the current global filter value.
func (v *View[T, K]) GlobalFilter() string { return v.globalFilter.Get() }

// SetPredicate installs a named row predicate, AND-ed with all other
// filters. A nil fn removes it. Callers use this for filters that are
// not tied to one column, such as presets or date ranges.
func (v *View[T, K]) SetPredicate(name string, fn func(T) bool) {
	if fn == nil {
		delete(v.predicates, name)
	} else {
		v.predicates[name] = fn
	}
	v.recompute()
	v.notify(ChangeFilter)
}

// filter returns a new slice of the rows that pass every filter.
func (v *View[T, K]) filter(data []T) []T {
	needle := ""
	if v.globalEnabled {
		needle = normalizeNeedle(v.globalFilter.Get())
	}

	type colFilter struct {
		col   ColumnDef[T]
		value string
	}
	colFilters := make([]colFilter, 0, len(v.columnFilters))
	for _, id := range slices.Sorted(maps.Keys(v.columnFilters)) {
		if col, err := v.column(id); err == nil {
			colFilters = append(colFilters, colFilter{col: col, value: v.columnFilters[id]})
		}
	}

	out := make([]T, 0, len(data))
rows:
	for _, row := range data {
		for _, cf := range colFilters {
			if !matchColumn(cf.col, row, cf.value) {
				continue rows
			}
		}
		for _, pred := range v.predicates {
			if !pred(row) {
				continue rows
			}
		}
		if needle != "" && !containsText(row, needle) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchColumn[T any](col ColumnDef[T], row T, value string) bool {
	if col.FilterFn != nil {
		return col.FilterFn(row, value)
	}
	return strings.Contains(strings.ToLower(Text(col.Value(row))), strings.ToLower(strings.TrimSpace(value)))
}
