package core

// convert.go coerces raw CSV cells into the typed values assigned to records.
//
// Coercion never fails. Dirty cells fall back to a default (0, nil, the
// enum's unknown variant) so that one bad field cannot keep the rest of a
// table from loading. Numbers follow leading-prefix parsing: "12 Stk"
// yields 12 and "abc" yields 0.

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/JonMunkholm/easybill/internal/schema"
)

var (
	leadingIntRegex   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloatRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// ToInt returns the integer formed by the leading digits of s, or 0.
func ToInt(s string) int {
	n, _ := leadingInt(s)
	return n
}

func leadingInt(s string) (int, bool) {
	m := leadingIntRegex.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ToFloat returns the decimal number at the start of s, or 0.
func ToFloat(s string) float64 {
	m := leadingFloatRegex.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// ToNullable returns nil for an empty cell, otherwise the trimmed text.
// Dates pass through unvalidated.
func ToNullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ToNr converts an identity cell. Whole integers become numeric
// identities, anything else keeps its text ("14-0").
func ToNr(s string) schema.Nr {
	return schema.ParseNr(s)
}

// ToEnum returns the legal value matching s case-insensitively, or unknown.
func ToEnum(s string, legal []string, unknown string) string {
	s = strings.TrimSpace(s)
	for _, v := range legal {
		if strings.EqualFold(v, s) {
			return v
		}
	}
	return unknown
}

// ToBool reports whether a checklist cell reads TRUE, ignoring case and
// surrounding space. Everything else, blank included, is false.
func ToBool(s string) bool {
	return strings.ToUpper(strings.TrimSpace(s)) == "TRUE"
}

// Coerce converts one cell for a field spec. It returns false when the
// cell should leave the record default in place, which is the case for
// an empty enum cell.
func Coerce[T any](spec schema.FieldSpec[T], raw string) (schema.Value, bool) {
	raw = CleanCell(raw)
	v := schema.Value{Kind: spec.Kind, Raw: raw}

	switch spec.Kind {
	case schema.KindIdentity:
		v.Nr = ToNr(raw)
		v.Text = v.Nr.String()
	case schema.KindInt:
		v.Int = ToInt(raw)
	case schema.KindFloat:
		v.Float = ToFloat(raw)
	case schema.KindNullableDate, schema.KindOptional:
		v.Text = raw
		v.Null = raw == ""
	case schema.KindEnum:
		if raw == "" {
			return v, false
		}
		v.Text = ToEnum(raw, spec.EnumValues, spec.Unknown)
		if v.Text == spec.Unknown {
			slog.Warn("unknown enum value", "field", spec.Field, "value", raw, "fallback", spec.Unknown)
		}
	default:
		v.Text = raw
	}

	return v, true
}

// CleanCell trims surrounding whitespace, including the carriage return
// left on the last cell of a CRLF line.
func CleanCell(s string) string {
	return strings.TrimSpace(s)
}

var (
	isoDateRegex    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	germanDateRegex = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
)

// NormalizeDate returns a yyyy-MM-dd or dd.MM.yyyy date as yyyy-MM-dd so
// that dates from both export formats compare as strings. Anything else
// yields "".
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if isoDateRegex.MatchString(s) {
		return s
	}
	m := germanDateRegex.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
}
