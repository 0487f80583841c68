package core

import (
	"log/slog"
	"strings"

	"github.com/JonMunkholm/easybill/internal/schema"
)

// ChecklistNr is the pseudo field matched by the checklist's number column.
const ChecklistNr schema.ChecklistField = "nr"

// checklistRules are tried in order; the first rule whose keywords all
// occur in the normalized header wins.
var checklistRules = []struct {
	field schema.ChecklistField
	exact string
	all   []string
	anyOf []string
}{
	{field: ChecklistNr, exact: "nr"},
	{field: schema.RechnungVersendet, all: []string{"rechnung", "versendet"}},
	{field: schema.SendungErstellt, all: []string{"sendung", "erstellt"}},
	{field: schema.VersandprofilHinzugefuegt, all: []string{"versandprofil"}, anyOf: []string{"hinzu", "gef"}},
	{field: schema.PicklisteErstellt, all: []string{"pickliste", "erstellt"}},
	{field: schema.PacklisteErstellt, all: []string{"packliste", "erstellt"}},
	{field: schema.PaketlisteGedruckt, all: []string{"paketliste", "gedruckt"}},
	{field: schema.Versendet, exact: "versendet"},
	{field: schema.Fehler, exact: "fehler"},
}

// MatchChecklistHeader maps a checklist header onto a flag. Matching is
// case-insensitive and keyword based, so "Sendung Erstellt" and
// "erstellt_sendung" both resolve to sendungErstellt. The number column
// resolves to ChecklistNr.
func MatchChecklistHeader(header string) (schema.ChecklistField, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return "", false
	}

	for _, rule := range checklistRules {
		if rule.exact != "" {
			if h == rule.exact {
				return rule.field, true
			}
			continue
		}
		if containsAll(h, rule.all) && (len(rule.anyOf) == 0 || containsAny(h, rule.anyOf)) {
			return rule.field, true
		}
	}
	return "", false
}

func containsAll(s string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

func containsAny(s string, parts []string) bool {
	for _, p := range parts {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// ParseChecklist parses the checklist export into a map keyed by order
// number. Flag cells are true only when they read TRUE. Rows whose number
// cell has no leading integer are dropped with a warning.
func ParseChecklist(text string) schema.ChecklistMap {
	rows := ParseDelimited(text)
	if len(rows) == 0 {
		return schema.NewChecklistMap()
	}

	header := rows[0]
	fields := make([]schema.ChecklistField, len(header))
	for i, h := range header {
		field, ok := MatchChecklistHeader(h)
		if !ok {
			if strings.TrimSpace(h) != "" {
				slog.Warn("unmapped checklist header", "header", h)
			}
			continue
		}
		fields[i] = field
	}

	entries := make([]schema.Checklist, 0, len(rows)-1)
	for line, values := range rows[1:] {
		var (
			entry schema.Checklist
			hasNr bool
		)
		for col, field := range fields {
			if field == "" || col >= len(values) {
				continue
			}
			if field == ChecklistNr {
				entry.Nr, hasNr = leadingInt(values[col])
				continue
			}
			entry = entry.With(field, ToBool(values[col]))
		}

		if !hasNr {
			slog.Warn("checklist row has no valid nr, dropped", "row", line+1, "values", values)
			continue
		}
		entries = append(entries, entry)
	}

	slog.Debug("parsed checklist", "entries", len(entries))
	return schema.NewChecklistMap(entries...)
}
