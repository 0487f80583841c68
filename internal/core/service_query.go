package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/JonMunkholm/easybill/internal/datatable"
	"github.com/JonMunkholm/easybill/internal/schema"
)

// match applies the extra filters to one row.
func (f ExtraFilters) match(o schema.Order) bool {
	if f.Importquelle != "" && !strings.EqualFold(strings.TrimSpace(o.Importquelle), f.Importquelle) {
		return false
	}
	if !inDateRange(o.Kaufdatum, f.KaufFrom, f.KaufTo) {
		return false
	}
	return inDateRange(o.Importdatum, f.ImportFrom, f.ImportTo)
}

// inDateRange compares normalized yyyy-MM-dd strings. An empty to
// equals from, so a single date matches that day only.
func inDateRange(value, from, to string) bool {
	from, to = NormalizeDate(from), NormalizeDate(to)
	if from == "" && to == "" {
		return true
	}
	d := NormalizeDate(value)
	if d == "" {
		return false
	}
	if to == "" {
		to = from
	}
	if from != "" && d < from {
		return false
	}
	return d <= to
}

// TableView applies q to table key and returns the resulting page.
func (s *Service) TableView(key string, q Query) (*TableViewResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(key)
	if err != nil {
		return nil, err
	}
	if err := t.apply(q); err != nil {
		return nil, err
	}
	return s.render(t), nil
}

// validate checks every part of q against t without changing anything.
func (t *tableState) validate(q Query) error {
	v := t.view
	if q.Presets != nil && t.presets != nil {
		for _, id := range q.Presets {
			if id != "" && !t.presets.Has(id) {
				return fmt.Errorf("%w: %s", ErrUnknownPreset, id)
			}
		}
	}
	if q.Sort != nil && *q.Sort != "" {
		if err := v.CheckSort(*q.Sort); err != nil {
			return err
		}
	}
	if q.Search != nil && *q.Search != v.GlobalFilter() && !v.GlobalFilterEnabled() {
		return datatable.ErrGlobalFilterDisabled
	}
	for id := range q.Filters {
		if err := v.CheckColumnFilter(id); err != nil {
			return err
		}
	}
	if q.PageSize != nil && *q.PageSize < 1 {
		return datatable.ErrInvalidPageSize
	}
	return nil
}

// apply changes the view state of t according to q. Any change to the
// row filters moves back to the first page unless q names a page. An
// invalid query is rejected before any state changes.
func (t *tableState) apply(q Query) error {
	if err := t.validate(q); err != nil {
		return err
	}
	v := t.view
	filtered := false

	if q.Presets != nil && t.presets != nil {
		next := slices.DeleteFunc(slices.Clone(q.Presets), func(id string) bool { return id == "" })
		slices.Sort(next)
		if !slices.Equal(next, sortedStrings(t.presets.Active())) {
			t.presets.Reset()
			for _, id := range next {
				_ = t.presets.Set(id, true)
			}
			v.ClearMarks()
			v.SetSelection(datatable.NewSet[schema.Nr]())
			v.Refresh()
			filtered = true
		}
	}

	if q.Sort != nil {
		if *q.Sort == "" {
			v.ClearSort()
		} else if err := v.SetSort(*q.Sort, q.Desc); err != nil {
			return err
		}
	}

	if q.Search != nil && *q.Search != v.GlobalFilter() {
		if err := v.SetGlobalFilter(*q.Search); err != nil {
			return err
		}
		filtered = true
	}

	if q.Filters != nil && !maps.Equal(q.Filters, v.ColumnFilters()) {
		for id := range v.ColumnFilters() {
			if _, keep := q.Filters[id]; !keep {
				if err := v.SetColumnFilter(id, ""); err != nil {
					return err
				}
			}
		}
		for id, value := range q.Filters {
			if err := v.SetColumnFilter(id, value); err != nil {
				return err
			}
		}
		filtered = true
	}

	if q.Extra != nil && *q.Extra != t.extra {
		t.extra = *q.Extra
		v.Refresh()
		filtered = true
	}

	if q.PageSize != nil {
		if err := v.SetPageSize(*q.PageSize); err != nil {
			return err
		}
	}
	switch {
	case q.Page != nil:
		v.SetPage(*q.Page - 1)
	case filtered:
		v.SetPage(0)
	}
	return nil
}

// render builds the result for the current state of t. Callers hold s.mu.
func (s *Service) render(t *tableState) *TableViewResult {
	v := t.view
	page := v.Page()
	offsets := v.FloatingOffsets()

	columns := make([]ColumnView, 0, len(v.Columns()))
	for _, col := range v.Columns() {
		cv := ColumnView{
			ID:             col.ID,
			Header:         col.Header,
			Size:           col.Size,
			Floating:       col.Floating,
			ErrorIndicator: col.ErrorIndicator,
			Hideable:       col.EnableHiding,
			Visible:        v.IsColumnVisible(col.ID),
			ClassName:      col.ClassName,
		}
		if off, ok := offsets[col.ID]; ok {
			cv.Offset = &off
		}
		columns = append(columns, cv)
	}

	visible := v.VisibleColumns()
	rows := make([]RowView, len(page.Rows))
	for i, o := range page.Rows {
		cells := make([]CellView, len(visible))
		for j, col := range visible {
			cell := CellView{Column: col.ID, Text: col.Render(o), Tone: datatable.ToneDefault}
			if col.Floating {
				cell.Tone = v.FloatingCellTone(col.ID, o.Nr)
				if flag, ok := col.Value(o).(bool); ok {
					cell.Flag = &flag
				}
			}
			cells[j] = cell
		}
		checklist, _ := s.checklist.For(o.Nr)
		rows[i] = RowView{
			Nr:        o.Nr,
			Index:     page.Index*page.Size + i,
			Tone:      v.RowTone(o.Nr),
			Marked:    v.IsMarked(o.Nr),
			Selected:  v.IsSelected(o.Nr),
			Cells:     cells,
			Order:     o,
			Checklist: checklist,
		}
	}

	result := &TableViewResult{
		Table:     t.def.Info,
		Columns:   columns,
		Rows:      rows,
		Page:      page.Index + 1,
		PageSize:  page.Size,
		PageCount: page.Count,
		Total:     page.Total,
		TotalRows: len(v.Data()),
		Sort:      v.Sort(),
		Search:    v.GlobalFilter(),
		Filters:   v.ColumnFilters(),
		Extra:     t.extra,
		Marked:    sortedIDs(v.Marks()),
		Selection: sortedIDs(v.Selection()),
		LastMark:  v.LastMarkedIndex(),
		LoadedAt:  s.loadedAt,
	}
	if t.presets != nil {
		result.Presets = t.presets.Counts(v.Data())
	}
	return result
}

func sortedStrings(s []string) []string {
	s = slices.Clone(s)
	slices.Sort(s)
	return s
}

func sortedIDs(set datatable.Set[schema.Nr]) []schema.Nr {
	ids := make([]schema.Nr, 0, set.Len())
	set.Each(func(id schema.Nr) { ids = append(ids, id) })
	slices.SortFunc(ids, schema.CompareNr)
	return ids
}

// ExportCSV writes the filtered and sorted rows of table key, all pages,
// with one column per visible column.
func (s *Service) ExportCSV(ctx context.Context, key string, w io.Writer) (int, error) {
	s.mu.Lock()
	t, err := s.table(key)
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	columns := t.view.VisibleColumns()
	rows := slices.Clone(t.view.Rows())

	records := make([][]string, 0, len(rows)+1)
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	records = append(records, header)
	for _, o := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = exportCell(col, o)
		}
		records = append(records, record)
	}
	s.mu.Unlock()

	cw := csv.NewWriter(w)
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}
	return len(rows), nil
}

// exportCell writes checklist flags as TRUE/FALSE, the format the
// checklist export is read in.
func exportCell(col datatable.ColumnDef[schema.Order], o schema.Order) string {
	if flag, ok := col.Value(o).(bool); ok {
		if flag {
			return "TRUE"
		}
		return "FALSE"
	}
	return col.Render(o)
}
