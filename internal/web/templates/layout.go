// Package templates holds the server-rendered HTML components of the
// dashboard, written against the templ runtime.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/a-h/templ"
)

// SidebarParams controls the navigation sidebar.
type SidebarParams struct {
	Tables      []core.TableInfo
	ActiveTable string
	ActivePage  string
}

// html collects markup; every dynamic value goes through text.
type html struct {
	strings.Builder
}

func (h *html) raw(s string)  { h.WriteString(s) }
func (h *html) text(s string) { h.WriteString(templ.EscapeString(s)) }

func component(build func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var h html
		build(&h)
		_, err := io.WriteString(w, h.String())
		return err
	})
}

// Layout wraps body in the page chrome.
func Layout(title string, sidebar SidebarParams, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var h html
		h.raw(`<!DOCTYPE html><html lang="de"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(` · easybill</title><link rel="stylesheet" href="/static/app.css"></head><body><div class="layout">`)
		writeSidebar(&h, sidebar)
		h.raw(`<main id="content">`)
		if _, err := io.WriteString(w, h.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></div></body></html>`)
		return err
	})
}

func writeSidebar(h *html, p SidebarParams) {
	h.raw(`<nav class="sidebar"><ul>`)
	group := ""
	for _, t := range p.Tables {
		if t.Group != group {
			group = t.Group
			h.raw(`<li class="group">`)
			h.text(group)
			h.raw(`</li>`)
		}
		class := ""
		if t.Key == p.ActiveTable {
			class = ` class="active"`
		}
		h.raw(`<li` + class + `><a href="/table/`)
		h.text(t.Key)
		h.raw(`">`)
		h.text(t.Label)
		h.raw(`</a></li>`)
	}
	class := ""
	if p.ActivePage == "audit" {
		class = ` class="active"`
	}
	h.raw(`<li` + class + `><a href="/audit-log">Audit-Log</a></li></ul></nav>`)
}
