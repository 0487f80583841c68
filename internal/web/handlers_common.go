// Package web provides HTTP handlers for the order dashboard.
// This file contains shared utilities and helper functions used across handlers.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/schema"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseQuery turns URL parameters into a table query. Parameters that are
// absent leave the corresponding view state unchanged.
//
//	page, size           1-based page and page size
//	sort, dir            column id ("" clears) and asc|desc
//	search               global filter
//	filter[col]          column filters; clear_filters=1 removes all
//	preset               active presets, repeatable; an empty value clears
//	quelle, kauf_from, kauf_to, import_from, import_to   extra filters
func parseQuery(values url.Values) (core.Query, error) {
	var q core.Query

	for _, name := range []string{"page", "size"} {
		if !values.Has(name) {
			continue
		}
		n, err := strconv.Atoi(values.Get(name))
		if err != nil || n < 1 {
			return q, fmt.Errorf("%w: %s must be a positive integer", errBadRequest, name)
		}
		if name == "page" {
			q.Page = &n
		} else {
			q.PageSize = &n
		}
	}

	if values.Has("sort") {
		sort := values.Get("sort")
		q.Sort = &sort
		q.Desc = strings.EqualFold(values.Get("dir"), "desc")
	}

	if values.Has("search") {
		search := values.Get("search")
		q.Search = &search
	}

	if values.Get("clear_filters") == "1" {
		q.Filters = map[string]string{}
	}
	for key := range values {
		col, ok := strings.CutPrefix(key, "filter[")
		if !ok || !strings.HasSuffix(col, "]") {
			continue
		}
		col = strings.TrimSuffix(col, "]")
		if col == "" {
			continue
		}
		if q.Filters == nil {
			q.Filters = map[string]string{}
		}
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			q.Filters[col] = v
		}
	}

	if values.Has("preset") {
		q.Presets = []string{}
		for _, id := range values["preset"] {
			if id = strings.TrimSpace(id); id != "" {
				q.Presets = append(q.Presets, id)
			}
		}
	}

	extraKeys := []string{"quelle", "kauf_from", "kauf_to", "import_from", "import_to"}
	for _, k := range extraKeys {
		if values.Has(k) {
			q.Extra = &core.ExtraFilters{
				Importquelle: strings.TrimSpace(values.Get("quelle")),
				KaufFrom:     strings.TrimSpace(values.Get("kauf_from")),
				KaufTo:       strings.TrimSpace(values.Get("kauf_to")),
				ImportFrom:   strings.TrimSpace(values.Get("import_from")),
				ImportTo:     strings.TrimSpace(values.Get("import_to")),
			}
			break
		}
	}

	return q, nil
}

// decodeJSON reads a JSON request body into v. An empty body leaves v as is.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}

// tableKey returns the {tableKey} URL parameter.
func tableKey(r *http.Request) string {
	return chi.URLParam(r, "tableKey")
}

// nrParam returns the {nr} URL parameter as an order number.
func nrParam(r *http.Request) (schema.Nr, error) {
	raw, err := url.PathUnescape(chi.URLParam(r, "nr"))
	if err != nil || strings.TrimSpace(raw) == "" {
		return schema.Nr{}, fmt.Errorf("%w: missing nr", errBadRequest)
	}
	return schema.ParseNr(raw), nil
}
