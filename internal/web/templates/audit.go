package templates

import (
	"strconv"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/a-h/templ"
)

// AuditLogPage renders the most recent audit entries.
func AuditLogPage(sidebar SidebarParams, q core.AuditQuery, entries []core.AuditEntry) templ.Component {
	return Layout("Audit-Log", sidebar, component(func(h *html) {
		h.raw(`<h1>Audit-Log</h1><p><a href="/api/audit/export?table=`)
		h.text(q.TableKey)
		h.raw(`&amp;action=`)
		h.text(string(q.Action))
		h.raw(`">CSV exportieren</a></p>`)

		if len(entries) == 0 {
			h.raw(`<p class="empty">Keine Einträge.</p>`)
			return
		}

		h.raw(`<table class="audit"><thead><tr><th>Zeit</th><th>Aktion</th><th>Stufe</th><th>Tabelle</th><th>Zeilen</th><th>Spalte</th><th>Alt</th><th>Neu</th><th>Anzahl</th></tr></thead><tbody>`)
		for _, e := range entries {
			h.raw(`<tr class="severity-`)
			h.text(string(e.Severity))
			h.raw(`">`)
			for _, cell := range []string{
				e.CreatedAt.Local().Format("02.01.2006 15:04:05"),
				string(e.Action),
				string(e.Severity),
				e.TableKey,
				e.RowKey,
				e.ColumnName,
				e.OldValue,
				e.NewValue,
				strconv.Itoa(e.RowsAffected),
			} {
				h.raw(`<td>`)
				h.text(cell)
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
	}))
}
