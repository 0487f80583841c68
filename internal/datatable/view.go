// Package datatable is an in-memory table view over a collection of
// records: sorting, column and global filtering, pagination, row
// selection, row marks, drag reordering and column visibility with
// floating columns pinned to the trailing edge.
//
// Selection and marks are stored as sets of record identities, never as
// row indices. Indices appear only at the API boundary (SetRowSelection,
// RowSelection, ReorderRow, LastMarkedIndex) and are always resolved
// against the current filtered and sorted row order.
//
// A View is not safe for concurrent use.
package datatable

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultPageSize is used when Config.PageSize is zero.
const DefaultPageSize = 50

var (
	ErrUnknownColumn        = errors.New("unknown column")
	ErrNotHideable          = errors.New("column cannot be hidden")
	ErrNotSortable          = errors.New("column cannot be sorted")
	ErrNotFilterable        = errors.New("column cannot be filtered")
	ErrGlobalFilterDisabled = errors.New("global filter is disabled")
	ErrDuplicateIdentity    = errors.New("duplicate row identity")
	ErrIndexOutOfRange      = errors.New("row index out of range")
	ErrRowNotVisible        = errors.New("row is not visible")
	ErrInvalidPageSize      = errors.New("page size must be positive")
)

// Visibility maps column ids to their visibility. Columns absent from
// the map are visible.
type Visibility map[string]bool

// Visible reports whether column id is visible.
func (v Visibility) Visible(id string) bool {
	visible, ok := v[id]
	return !ok || visible
}

func (v Visibility) with(id string, visible bool) Visibility {
	next := make(Visibility, len(v)+1)
	for k, val := range v {
		next[k] = val
	}
	next[id] = visible
	return next
}

// SortState is the single active sort.
type SortState struct {
	ColumnID string `json:"columnId"`
	Desc     bool   `json:"desc"`
}

// Config configures a View. Identity is required.
type Config[T any, K comparable] struct {
	Identity func(T) K

	InitialSort             *SortState
	InitialColumnVisibility Visibility
	PageSize                int
	EnableGlobalFilter      bool

	// Nil states are kept inside the View.
	ColumnVisibility State[Visibility]
	GlobalFilter     State[string]
	RowSelection     State[Set[K]]
}

// Change identifies which part of the view state changed.
type Change string

const (
	ChangeSort       Change = "sort"
	ChangeFilter     Change = "filter"
	ChangeVisibility Change = "visibility"
	ChangeSelection  Change = "selection"
	ChangeMark       Change = "mark"
	ChangePage       Change = "page"
	ChangeData       Change = "data"
)

// Page is one page of the filtered and sorted rows.
type Page[T any] struct {
	Rows  []T `json:"rows"`
	Index int `json:"index"`
	Size  int `json:"size"`
	Count int `json:"count"` // number of pages
	Total int `json:"total"` // filtered rows across all pages
}

// View is a table over a backing collection of records.
type View[T any, K comparable] struct {
	columns  []ColumnDef[T]
	colIndex map[string]int
	identity func(T) K

	data  []T
	rows  []T       // filtered and sorted, before pagination
	index map[K]int // identity -> position in rows

	sort          *SortState
	columnFilters map[string]string
	predicates    map[string]func(T) bool
	globalEnabled bool

	visibility   State[Visibility]
	globalFilter State[string]
	selection    State[Set[K]]

	marks      Set[K]
	lastMarked *K

	pageIndex int
	pageSize  int

	rowListeners    []func([]T)
	changeListeners []func(Change)
}

// New builds a view over records.
func New[T any, K comparable](records []T, columns []ColumnDef[T], cfg Config[T, K]) (*View[T, K], error) {
	if cfg.Identity == nil {
		return nil, errors.New("datatable: identity accessor is required")
	}

	v := &View[T, K]{
		columns:       columns,
		colIndex:      make(map[string]int, len(columns)),
		identity:      cfg.Identity,
		columnFilters: make(map[string]string),
		predicates:    make(map[string]func(T) bool),
		globalEnabled: cfg.EnableGlobalFilter,
		visibility:    cfg.ColumnVisibility,
		globalFilter:  cfg.GlobalFilter,
		selection:     cfg.RowSelection,
		marks:         NewSet[K](),
		pageSize:      cfg.PageSize,
	}

	for i, col := range columns {
		if col.ID == "" {
			return nil, fmt.Errorf("datatable: column %d has no id", i)
		}
		if _, dup := v.colIndex[col.ID]; dup {
			return nil, fmt.Errorf("datatable: duplicate column id %q", col.ID)
		}
		v.colIndex[col.ID] = i
	}

	if v.pageSize == 0 {
		v.pageSize = DefaultPageSize
	}
	if v.pageSize < 0 {
		return nil, ErrInvalidPageSize
	}
	if v.visibility == nil {
		v.visibility = Local(cfg.InitialColumnVisibility)
	}
	if v.globalFilter == nil {
		v.globalFilter = Local("")
	}
	if v.selection == nil {
		v.selection = Local(NewSet[K]())
	}

	if cfg.InitialSort != nil {
		col, err := v.column(cfg.InitialSort.ColumnID)
		if err != nil {
			return nil, err
		}
		if !col.sortable() {
			return nil, fmt.Errorf("%w: %s", ErrNotSortable, col.ID)
		}
		s := *cfg.InitialSort
		v.sort = &s
	}

	if err := v.CheckData(records); err != nil {
		return nil, err
	}
	v.data = records
	v.recompute()
	return v, nil
}

func (v *View[T, K]) column(id string) (ColumnDef[T], error) {
	i, ok := v.colIndex[id]
	if !ok {
		return ColumnDef[T]{}, fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	return v.columns[i], nil
}

// CheckData reports whether SetData would accept records, that is
// whether every identity is unique.
func (v *View[T, K]) CheckData(records []T) error {
	seen := make(map[K]struct{}, len(records))
	for _, r := range records {
		id := v.identity(r)
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %v", ErrDuplicateIdentity, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Columns returns the column definitions in definition order.
func (v *View[T, K]) Columns() []ColumnDef[T] { return v.columns }

// Column returns the definition of column id.
func (v *View[T, K]) Column(id string) (ColumnDef[T], bool) {
	col, err := v.column(id)
	return col, err == nil
}

// Identity returns the identity of row.
func (v *View[T, K]) Identity(row T) K { return v.identity(row) }

// Data returns the backing collection. Callers must not modify it.
func (v *View[T, K]) Data() []T { return v.data }

// SetData replaces the backing collection. Selected and marked
// identities that no longer exist are dropped.
func (v *View[T, K]) SetData(records []T) error {
	if err := v.CheckData(records); err != nil {
		return err
	}
	v.data = records

	present := make(map[K]struct{}, len(records))
	for _, r := range records {
		present[v.identity(r)] = struct{}{}
	}
	exists := func(id K) bool {
		_, ok := present[id]
		return ok
	}

	sel := v.selection.Get()
	if pruned := sel.Keep(exists); pruned.Len() != sel.Len() {
		v.selection.Set(pruned)
		v.notify(ChangeSelection)
	}
	if pruned := v.marks.Keep(exists); pruned.Len() != v.marks.Len() {
		v.marks = pruned
		v.notify(ChangeMark)
	}
	if v.lastMarked != nil && !exists(*v.lastMarked) {
		v.lastMarked = nil
	}

	v.recompute()
	v.notify(ChangeData)
	return nil
}

// Find returns the backing record with identity id.
func (v *View[T, K]) Find(id K) (T, bool) {
	for _, r := range v.data {
		if v.identity(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Rows returns the filtered and sorted rows across all pages.
func (v *View[T, K]) Rows() []T { return v.rows }

// VisibleIndex returns the position of id in Rows, or -1.
func (v *View[T, K]) VisibleIndex(id K) int {
	if i, ok := v.index[id]; ok {
		return i
	}
	return -1
}

// Refresh recomputes the rows. Call it after changing a controlled
// global filter from outside the View.
func (v *View[T, K]) Refresh() { v.recompute() }

// OnFilteredRowsChanged registers fn to receive the filtered and sorted
// rows after every recompute.
func (v *View[T, K]) OnFilteredRowsChanged(fn func([]T)) {
	v.rowListeners = append(v.rowListeners, fn)
}

// OnChange registers fn to be told about every state change.
func (v *View[T, K]) OnChange(fn func(Change)) {
	v.changeListeners = append(v.changeListeners, fn)
}

func (v *View[T, K]) notify(c Change) {
	for _, fn := range v.changeListeners {
		fn(c)
	}
}

// recompute derives rows from data. data is never modified.
func (v *View[T, K]) recompute() {
	rows := v.filter(v.data)
	v.sortRows(rows)

	v.rows = rows
	v.index = make(map[K]int, len(rows))
	for i, r := range rows {
		v.index[v.identity(r)] = i
	}
	v.clampPage()

	for _, fn := range v.rowListeners {
		fn(slices.Clip(rows))
	}
}

// ReorderRow moves the row at visible index from to visible index to.
// Both indices are resolved to identities in the current row order, and
// the move is applied to the backing collection. The view adopts and
// returns the new backing slice.
func (v *View[T, K]) ReorderRow(from, to int) ([]T, error) {
	if from < 0 || from >= len(v.rows) || to < 0 || to >= len(v.rows) {
		return nil, fmt.Errorf("%w: %d -> %d of %d", ErrIndexOutOfRange, from, to, len(v.rows))
	}
	if from == to {
		return v.data, nil
	}

	fromID := v.identity(v.rows[from])
	toID := v.identity(v.rows[to])
	fromPos := slices.IndexFunc(v.data, func(r T) bool { return v.identity(r) == fromID })
	toPos := slices.IndexFunc(v.data, func(r T) bool { return v.identity(r) == toID })

	next := slices.Clone(v.data)
	moved := next[fromPos]
	next = slices.Delete(next, fromPos, fromPos+1)
	next = slices.Insert(next, toPos, moved)

	v.data = next
	v.recompute()
	v.notify(ChangeData)
	return next, nil
}
