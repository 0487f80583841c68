package core

import (
	"log/slog"

	"github.com/JonMunkholm/easybill/internal/schema"
)

// ParseRecords parses delimited text into records of type T.
//
// Row 0 is the header row, matched exactly against specs. Every record
// starts from newRecord(), so fields absent from the source or from a
// short row keep their defaults and each record is total. Unmapped
// headers are logged and ignored.
func ParseRecords[T any](text string, specs schema.HeaderMap[T], newRecord func() T) []T {
	rows := ParseDelimited(text)
	if len(rows) == 0 {
		return nil
	}

	header := rows[0]
	if report := ValidateHeaders(header, specs); len(report.Unmapped) > 0 || !report.Complete() {
		slog.Warn("header mismatch", "unmapped", report.Unmapped, "missing", report.Missing)
	}
	bound := bindHeaders(header, specs)

	records := make([]T, 0, len(rows)-1)
	for _, values := range rows[1:] {
		rec := newRecord()
		for col, spec := range bound {
			if spec == nil || col >= len(values) {
				continue
			}
			if v, ok := Coerce(*spec, values[col]); ok {
				spec.Assign(&rec, v)
			}
		}
		records = append(records, rec)
	}

	slog.Debug("parsed records", "count", len(records), "columns", len(header))
	return records
}

// ParseOrders parses an orders or shipments export. Rows without a Type
// get defaultType.
func ParseOrders(text, defaultType string) []schema.Order {
	orders := ParseRecords(text, schema.OrderFieldSpecs, schema.NewOrder)
	for i := range orders {
		if orders[i].Type == "" {
			orders[i].Type = defaultType
		}
	}
	return orders
}
