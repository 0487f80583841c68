package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// SetSort sorts by one column. It replaces any previous sort.
func (v *View[T, K]) SetSort(columnID string, desc bool) error {
	if err := v.CheckSort(columnID); err != nil {
		return err
	}
	v.sort = &SortState{ColumnID: columnID, Desc: desc}
	v.recompute()
	v.notify(ChangeSort)
	return nil
}

// CheckSort reports whether SetSort would accept columnID.
func (v *View[T, K]) CheckSort(columnID string) error {
	col, err := v.column(columnID)
	if err != nil {
		return err
	}
	if !col.sortable() {
		return fmt.Errorf("%w: %s", ErrNotSortable, columnID)
	}
	return nil
}

// ClearSort restores the backing order.
func (v *View[T, K]) ClearSort() {
	if v.sort == nil {
		return
	}
	v.sort = nil
	v.recompute()
	v.notify(ChangeSort)
}

// Sort returns the active sort, or nil.
func (v *View[T, K]) Sort() *SortState {
	if v.sort == nil {
		return nil
	}
	s := *v.sort
	return &s
}

// sortRows sorts rows in place; rows is a fresh slice owned by recompute.
func (v *View[T, K]) sortRows(rows []T) {
	if v.sort == nil {
		return
	}
	col, err := v.column(v.sort.ColumnID)
	if err != nil {
		return
	}
	desc := v.sort.Desc

	slices.SortStableFunc(rows, func(a, b T) int {
		if col.SortFn != nil {
			c := col.SortFn(a, b)
			if desc {
				return -c
			}
			return c
		}

		av, bv := deref(col.Value(a)), deref(col.Value(b))
		switch {
		case av == nil && bv == nil:
			return 0
		case av == nil:
			return 1
		case bv == nil:
			return -1
		}
		c := CompareValues(av, bv)
		if desc {
			return -c
		}
		return c
	})
}

// CompareValues is the default comparator. Numbers compare numerically,
// booleans false before true, everything else by its text. Nil sorts
// last.
func CompareValues(a, b any) int {
	a, b = deref(a), deref(b)
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if af, ok := number(a); ok {
		if bf, ok := number(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(Text(a), Text(b))
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
