package datatable

import (
	"fmt"
	"reflect"
	"strconv"
)

// FloatingColumnWidth is the pixel width of one floating column.
const FloatingColumnWidth = 50

// ColumnDef describes one column of a View.
//
// Accessor returns the raw value used for default sorting, column
// filtering and text rendering. A column without Accessor or SortFn
// cannot be sorted; one without Accessor or FilterFn cannot be filtered.
type ColumnDef[T any] struct {
	ID          string
	AccessorKey string
	Header      string
	Accessor    func(T) any
	Cell        func(T) string
	Size        int // fixed width in px, 0 for auto

	SortFn   func(a, b T) int
	FilterFn func(row T, value string) bool

	EnableHiding bool

	// Floating columns are pinned to the trailing edge of the table.
	// An ErrorIndicator column is floating, renders an icon instead of a
	// checkbox and never takes the selected or marked tone.
	Floating       bool
	ErrorIndicator bool

	ClassName string
}

// Value returns the accessor value for row, or nil.
func (c ColumnDef[T]) Value(row T) any {
	if c.Accessor == nil {
		return nil
	}
	return c.Accessor(row)
}

// Render returns the cell text for row.
func (c ColumnDef[T]) Render(row T) string {
	if c.Cell != nil {
		return c.Cell(row)
	}
	return Text(c.Value(row))
}

func (c ColumnDef[T]) sortable() bool   { return c.SortFn != nil || c.Accessor != nil }
func (c ColumnDef[T]) filterable() bool { return c.FilterFn != nil || c.Accessor != nil }

// Text formats a cell value. Nil pointers render empty, numbers use the
// shortest representation ("4.19", "12").
func Text(v any) string {
	v = deref(v)
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// deref follows pointers; a nil pointer becomes nil.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
