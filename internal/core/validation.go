package core

// validation.go checks a header row against a header map before records
// are parsed. Header problems are reported, never fatal: unmapped source
// columns are ignored and missing fields keep their record defaults.

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/easybill/internal/schema"
)

// HeaderReport describes how a source header row maps onto a record type.
type HeaderReport struct {
	Matched  []string // source headers bound to a field
	Unmapped []string // source headers with no field
	Missing  []string // expected headers absent from the source
}

// Complete reports whether every expected header is present.
func (r HeaderReport) Complete() bool { return len(r.Missing) == 0 }

func (r HeaderReport) String() string {
	return fmt.Sprintf("matched=%d unmapped=[%s] missing=[%s]",
		len(r.Matched), strings.Join(r.Unmapped, ", "), strings.Join(r.Missing, ", "))
}

// ValidateHeaders compares header against specs using exact matches.
func ValidateHeaders[T any](header []string, specs schema.HeaderMap[T]) HeaderReport {
	var report HeaderReport
	present := make(map[string]bool, len(header))

	for _, h := range header {
		h = CleanCell(h)
		if h == "" {
			continue
		}
		present[h] = true
		if _, ok := specs.Lookup(h); ok {
			report.Matched = append(report.Matched, h)
		} else {
			report.Unmapped = append(report.Unmapped, h)
		}
	}

	for _, spec := range specs {
		if !present[spec.Header] {
			report.Missing = append(report.Missing, spec.Header)
		}
	}

	return report
}

// bindHeaders resolves each header position to its spec. Positions
// without a spec are nil.
func bindHeaders[T any](header []string, specs schema.HeaderMap[T]) []*schema.FieldSpec[T] {
	bound := make([]*schema.FieldSpec[T], len(header))
	for i, h := range header {
		if spec, ok := specs.Lookup(CleanCell(h)); ok {
			bound[i] = &spec
		}
	}
	return bound
}
