package templates

import "github.com/a-h/templ"

// ErrorAlert renders an error fragment for HTMX swaps.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="alert alert-error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(`<p>`)
			h.text(action)
			h.raw(`</p>`)
		}
		h.raw(`<small>Code: `)
		h.text(code)
		h.raw(`</small></div>`)
	})
}
