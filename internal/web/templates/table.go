package templates

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/datatable"
	"github.com/a-h/templ"
)

// TablePage renders a full page for one table.
func TablePage(sidebar SidebarParams, view *core.TableViewResult) templ.Component {
	return Layout(view.Table.Label, sidebar, TablePartial(view))
}

// TablePartial renders the toolbar, the table and the pager.
func TablePartial(view *core.TableViewResult) templ.Component {
	return component(func(h *html) {
		base := "/table/" + view.Table.Key
		h.raw(`<section id="table" data-table="`)
		h.text(view.Table.Key)
		h.raw(`"><header class="toolbar"><h1>`)
		h.text(view.Table.Label)
		h.raw(`</h1>`)
		writePresets(h, base, view)
		h.raw(fmt.Sprintf(`<span class="counts">%d von %d Zeilen · %d markiert</span>`, view.Total, view.TotalRows, len(view.Marked)))
		h.raw(`</header>`)
		writeTable(h, base, view)
		writePager(h, base, view)
		h.raw(`</section>`)
	})
}

func writePresets(h *html, base string, view *core.TableViewResult) {
	var active []string
	for _, p := range view.Presets {
		if p.Active {
			active = append(active, p.ID)
		}
	}

	h.raw(`<nav class="presets">`)
	for _, p := range view.Presets {
		next := slices.DeleteFunc(slices.Clone(active), func(id string) bool { return id == p.ID })
		if !p.Active {
			next = append(next, p.ID)
		}
		q := url.Values{"preset": next}
		if len(next) == 0 {
			q.Set("preset", "")
		}

		class := "preset"
		if p.Active {
			class += " active"
		}
		h.raw(`<a class="` + class + `" href="`)
		h.text(base + "?" + q.Encode())
		h.raw(`">`)
		h.text(p.Label)
		h.raw(fmt.Sprintf(` <span class="badge">%d</span></a>`, p.Count))
	}
	h.raw(`</nav>`)
}

func writeTable(h *html, base string, view *core.TableViewResult) {
	columns := make(map[string]core.ColumnView, len(view.Columns))
	for _, c := range view.Columns {
		columns[c.ID] = c
	}

	h.raw(`<div class="table-wrap"><table class="data"><thead><tr>`)
	for _, c := range view.Columns {
		if !c.Visible {
			continue
		}
		h.raw(`<th`)
		writeColumnAttrs(h, c)
		h.raw(`><a href="`)
		h.text(base + "?" + sortLink(view.Sort, c.ID).Encode())
		h.raw(`">`)
		h.text(c.Header)
		if view.Sort != nil && view.Sort.ColumnID == c.ID {
			if view.Sort.Desc {
				h.raw(` ▼`)
			} else {
				h.raw(` ▲`)
			}
		}
		h.raw(`</a></th>`)
	}
	h.raw(`</tr></thead><tbody>`)

	if len(view.Rows) == 0 {
		h.raw(`<tr><td class="empty" colspan="99">Keine Zeilen.</td></tr>`)
	}
	for _, row := range view.Rows {
		h.raw(`<tr class="tone-` + string(row.Tone) + `" data-nr="`)
		h.text(row.Nr.String())
		h.raw(`" data-index="` + strconv.Itoa(row.Index) + `">`)
		for _, cell := range row.Cells {
			c := columns[cell.Column]
			h.raw(`<td`)
			writeColumnAttrs(h, c)
			if c.Floating {
				h.raw(` data-tone="` + string(cell.Tone) + `"`)
			}
			h.raw(`>`)
			writeCell(h, c, cell)
			h.raw(`</td>`)
		}
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table></div>`)
}

func writeColumnAttrs(h *html, c core.ColumnView) {
	class := c.ClassName
	if c.ErrorIndicator {
		class += " error-indicator"
	}
	if class != "" {
		h.raw(` class="`)
		h.text(class)
		h.raw(`"`)
	}
	var style string
	if c.Size > 0 {
		style = fmt.Sprintf("width:%dpx;min-width:%dpx;", c.Size, c.Size)
	}
	if c.Offset != nil {
		style += fmt.Sprintf("position:sticky;right:%dpx;", *c.Offset)
	}
	if style != "" {
		h.raw(` style="` + style + `"`)
	}
}

func writeCell(h *html, c core.ColumnView, cell core.CellView) {
	if cell.Flag == nil {
		h.text(cell.Text)
		return
	}
	switch {
	case c.ErrorIndicator && *cell.Flag:
		h.raw(`<span class="error-icon" title="Fehler">!</span>`)
	case c.ErrorIndicator:
	case *cell.Flag:
		h.raw(`<input type="checkbox" checked disabled>`)
	default:
		h.raw(`<input type="checkbox" disabled>`)
	}
}

// sortLink cycles a column through ascending, descending and unsorted.
func sortLink(cur *datatable.SortState, columnID string) url.Values {
	q := url.Values{"sort": {columnID}}
	switch {
	case cur == nil || cur.ColumnID != columnID:
	case !cur.Desc:
		q.Set("dir", "desc")
	default:
		q.Set("sort", "")
	}
	return q
}

func writePager(h *html, base string, view *core.TableViewResult) {
	h.raw(`<footer class="pager">`)
	if view.Page > 1 {
		h.raw(`<a href="`)
		h.text(fmt.Sprintf("%s?page=%d", base, view.Page-1))
		h.raw(`">‹ Zurück</a>`)
	}
	h.raw(fmt.Sprintf(` <span>Seite %d von %d</span> `, view.Page, max(view.PageCount, 1)))
	if view.Page < view.PageCount {
		h.raw(`<a href="`)
		h.text(fmt.Sprintf("%s?page=%d", base, view.Page+1))
		h.raw(`">Weiter ›</a>`)
	}
	h.raw(`<form method="get" action="`)
	h.text(base)
	h.raw(`"><select name="size" onchange="this.form.submit()">`)
	for _, size := range core.PageSizes {
		selected := ""
		if size == view.PageSize {
			selected = " selected"
		}
		h.raw(fmt.Sprintf(`<option value="%d"%s>%d</option>`, size, selected, size))
	}
	h.raw(`</select></form></footer>`)
}
