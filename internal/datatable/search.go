package datatable

import (
	"fmt"
	"reflect"
	"strings"
)

// maxSearchDepth bounds the walk through nested values.
const maxSearchDepth = 16

// Search reports whether any value inside record contains needle. The
// walk descends into struct fields, pointers, slices, arrays and map
// values; values implementing fmt.Stringer are matched by their text.
// Matching lower-cases both sides and trims the needle; letters are
// not transliterated, so "mueller" does not match "Müller".
func Search(record any, needle string) bool {
	needle = normalizeNeedle(needle)
	if needle == "" {
		return true
	}
	return containsText(record, needle)
}

func normalizeNeedle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsText expects an already normalized needle.
func containsText(record any, needle string) bool {
	return walk(reflect.ValueOf(record), needle, 0)
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

func walk(rv reflect.Value, needle string, depth int) bool {
	if !rv.IsValid() || depth > maxSearchDepth {
		return false
	}

	if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface &&
		rv.Type().Implements(stringerType) && rv.CanInterface() {
		return match(rv.Interface().(fmt.Stringer).String(), needle)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return walk(rv.Elem(), needle, depth+1)
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if !rv.Type().Field(i).IsExported() {
				continue
			}
			if walk(rv.Field(i), needle, depth+1) {
				return true
			}
		}
		return false
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if walk(rv.Index(i), needle, depth+1) {
				return true
			}
		}
		return false
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if walk(iter.Value(), needle, depth+1) {
				return true
			}
		}
		return false
	case reflect.String:
		return match(rv.String(), needle)
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if !rv.CanInterface() {
			return false
		}
		return match(Text(rv.Interface()), needle)
	}
	return false
}

func match(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
