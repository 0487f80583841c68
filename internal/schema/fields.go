package schema

// FieldKind selects how a source cell is coerced before it is assigned.
type FieldKind int

const (
	KindText         FieldKind = iota
	KindIdentity                // integer when possible, otherwise the text
	KindInt                     // leading integer, 0 on failure
	KindFloat                   // leading decimal, 0 on failure
	KindNullableDate            // empty is nil, otherwise the text unvalidated
	KindOptional                // empty is nil ("not set"), otherwise the text
	KindEnum                    // member of EnumValues, otherwise Unknown
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindIdentity:
		return "identity"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindNullableDate:
		return "nullable-date"
	case KindOptional:
		return "optional"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Value is a coerced source cell. Only the member matching Kind is set.
type Value struct {
	Kind  FieldKind
	Raw   string // trimmed cell text
	Text  string
	Int   int
	Float float64
	Nr    Nr
	Null  bool // empty nullable or optional cell
}

// Ptr returns nil for a null value, otherwise a pointer to the text.
func (v Value) Ptr() *string {
	if v.Null {
		return nil
	}
	return Str(v.Text)
}

// FieldSpec maps one exact source header onto a field of T.
type FieldSpec[T any] struct {
	Header     string    // source column header, matched exactly
	Field      string    // record field id
	Kind       FieldKind // coercion applied to the cell
	EnumValues []string  // accepted values for KindEnum
	Unknown    string    // KindEnum fallback for values outside EnumValues
	Assign     func(*T, Value)
}

// HeaderMap is the full set of field specs for one record type.
type HeaderMap[T any] []FieldSpec[T]

// Lookup returns the spec for an exact header.
func (m HeaderMap[T]) Lookup(header string) (FieldSpec[T], bool) {
	for _, spec := range m {
		if spec.Header == header {
			return spec, true
		}
	}
	return FieldSpec[T]{}, false
}

// Headers returns the source headers in declaration order.
func (m HeaderMap[T]) Headers() []string {
	out := make([]string, len(m))
	for i, spec := range m {
		out[i] = spec.Header
	}
	return out
}
