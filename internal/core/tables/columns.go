package tables

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/datatable"
	"github.com/JonMunkholm/easybill/internal/schema"
)

type column = datatable.ColumnDef[schema.Order]

// ChecklistColumnID returns the id of the floating column showing flag f.
func ChecklistColumnID(f schema.ChecklistField) string {
	return "floating-col-" + string(f)
}

// ChecklistFieldOf is the inverse of ChecklistColumnID.
func ChecklistFieldOf(columnID string) (schema.ChecklistField, bool) {
	f, ok := strings.CutPrefix(columnID, "floating-col-")
	if !ok {
		return "", false
	}
	field := schema.ChecklistField(f)
	return field, field.Valid()
}

func nrColumn() column {
	return column{
		ID:          "nr",
		AccessorKey: "nr",
		Header:      "Nr",
		Accessor:    func(o schema.Order) any { return o.Nr },
		SortFn:      func(a, b schema.Order) int { return schema.CompareNr(a.Nr, b.Nr) },
		Size:        70,
	}
}

func textColumn(id, header string, get func(schema.Order) string) column {
	return column{
		ID:           id,
		AccessorKey:  id,
		Header:       header,
		Accessor:     func(o schema.Order) any { return get(o) },
		EnableHiding: true,
	}
}

func intColumn(id, header string, get func(schema.Order) int) column {
	return column{
		ID:           id,
		AccessorKey:  id,
		Header:       header,
		Accessor:     func(o schema.Order) any { return get(o) },
		EnableHiding: true,
		ClassName:    "text-right",
	}
}

// nullableColumn shows "-" for a nil value. Nil values sort last.
func nullableColumn(id, header string, get func(schema.Order) *string) column {
	return column{
		ID:          id,
		AccessorKey: id,
		Header:      header,
		Accessor:    func(o schema.Order) any { return get(o) },
		Cell: func(o schema.Order) string {
			if v := get(o); v != nil && *v != "" {
				return *v
			}
			return "-"
		},
		EnableHiding: true,
	}
}

// dateColumn sorts dd.MM.yyyy and yyyy-MM-dd values chronologically.
func dateColumn(id, header string, get func(schema.Order) string) column {
	col := textColumn(id, header, get)
	col.SortFn = func(a, b schema.Order) int {
		return strings.Compare(core.NormalizeDate(get(a)), core.NormalizeDate(get(b)))
	}
	col.Size = 110
	return col
}

func moneyColumn(id, header string, get func(schema.Order) float64) column {
	return column{
		ID:           id,
		AccessorKey:  id,
		Header:       header,
		Accessor:     func(o schema.Order) any { return get(o) },
		Cell:         func(o schema.Order) string { return FormatEuro(get(o)) },
		EnableHiding: true,
		ClassName:    "text-right",
	}
}

// FormatEuro renders an amount the way the German exports do: "23,79 €".
func FormatEuro(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1) + " €"
}

// checklistColumns returns the eight floating flag columns in display
// order. The error flag comes last and is rendered as an indicator.
func checklistColumns(env core.TableEnv) []column {
	cols := make([]column, 0, len(schema.ChecklistFields))
	for _, f := range schema.ChecklistFields {
		cols = append(cols, column{
			ID:       ChecklistColumnID(f),
			Header:   f.Label(),
			Accessor: func(o schema.Order) any { return env.Checklist().Flag(o.Nr, f) },
			Cell: func(o schema.Order) string {
				if env.Checklist().Flag(o.Nr, f) {
					return "✓"
				}
				return ""
			},
			Size:           datatable.FloatingColumnWidth,
			EnableHiding:   true,
			Floating:       true,
			ErrorIndicator: f == schema.Fehler,
			ClassName:      "floating-col",
		})
	}
	return cols
}
