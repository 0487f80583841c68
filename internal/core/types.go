package core

import (
	"errors"
	"time"

	"github.com/JonMunkholm/easybill/internal/datatable"
	"github.com/JonMunkholm/easybill/internal/schema"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownField  = errors.New("unknown field")
	ErrUnknownPreset = errors.New("unknown preset")
	ErrUnknownRow    = errors.New("row not found")
	ErrNoRowsMarked  = errors.New("no rows marked")
	ErrAlreadySent   = errors.New("invoice already sent")
)

// PageSizes are the page sizes offered by the table pager.
var PageSizes = []int{10, 20, 30, 50, 100}

// TableInfo contains display information about a table.
type TableInfo struct {
	Key    string `json:"key"`    // Unique identifier: "orders"
	Group  string `json:"group"`  // Navigation group: "Versand"
	Label  string `json:"label"`  // Display name: "Bestellungen"
	Source string `json:"source"` // Fixture file the rows come from
}

// TableEnv gives column and preset definitions read access to session
// state that changes independently of the rows. Both functions are only
// called while the Service lock is held.
type TableEnv struct {
	Checklist    func() schema.ChecklistMap
	LatestImport func() string
}

// TableDefinition contains everything needed to present a table.
type TableDefinition struct {
	Info TableInfo

	// Rows selects the table's rows from a fixture load.
	Rows func(Dataset) []schema.Order

	Columns func(TableEnv) []datatable.ColumnDef[schema.Order]
	Presets func(TableEnv) []datatable.Preset[schema.Order]

	DefaultSort datatable.SortState
}

// OrderView is the engine type shared by both tables.
type OrderView = datatable.View[schema.Order, schema.Nr]

// ExtraFilters are the toolbar filters that are not tied to one column.
// Dates compare as yyyy-MM-dd; an empty To equals From.
type ExtraFilters struct {
	Importquelle string `json:"importquelle,omitempty"`
	KaufFrom     string `json:"kaufFrom,omitempty"`
	KaufTo       string `json:"kaufTo,omitempty"`
	ImportFrom   string `json:"importFrom,omitempty"`
	ImportTo     string `json:"importTo,omitempty"`
}

// IsZero reports whether no extra filter is set.
func (f ExtraFilters) IsZero() bool { return f == ExtraFilters{} }

// Query changes the view state of a table before it is read. Nil fields
// leave the current state untouched, so a bare Query re-reads the view.
type Query struct {
	Page     *int // 1-based
	PageSize *int
	Sort     *string // column id, "" clears the sort
	Desc     bool
	Search   *string

	// Filters replaces all column filters when non-nil.
	Filters map[string]string

	// Presets replaces the active presets when non-nil. Changing them
	// clears marks and selection.
	Presets []string

	Extra *ExtraFilters
}

// ColumnView describes one column of a rendered table.
type ColumnView struct {
	ID             string `json:"id"`
	Header         string `json:"header"`
	Size           int    `json:"size,omitempty"`
	Floating       bool   `json:"floating,omitempty"`
	ErrorIndicator bool   `json:"errorIndicator,omitempty"`
	Hideable       bool   `json:"hideable"`
	Visible        bool   `json:"visible"`
	Offset         *int   `json:"offset,omitempty"` // px from the trailing edge, floating only
	ClassName      string `json:"className,omitempty"`
}

// CellView is one rendered cell. Flag is set for checklist columns.
type CellView struct {
	Column string         `json:"column"`
	Text   string         `json:"text"`
	Flag   *bool          `json:"flag,omitempty"`
	Tone   datatable.Tone `json:"tone"`
}

// RowView is one rendered row of the current page.
type RowView struct {
	Nr        schema.Nr        `json:"nr"`
	Index     int              `json:"index"` // position across all filtered rows
	Tone      datatable.Tone   `json:"tone"`
	Marked    bool             `json:"marked"`
	Selected  bool             `json:"selected"`
	Cells     []CellView       `json:"cells"`
	Order     schema.Order     `json:"order"`
	Checklist schema.Checklist `json:"checklist"`
}

// TableViewResult is the state of one table after a Query.
type TableViewResult struct {
	Table     TableInfo               `json:"table"`
	Columns   []ColumnView            `json:"columns"`
	Rows      []RowView               `json:"rows"`
	Page      int                     `json:"page"` // 1-based
	PageSize  int                     `json:"pageSize"`
	PageCount int                     `json:"pageCount"`
	Total     int                     `json:"total"`     // rows after filtering
	TotalRows int                     `json:"totalRows"` // rows before filtering
	Sort      *datatable.SortState    `json:"sort,omitempty"`
	Search    string                  `json:"search,omitempty"`
	Filters   map[string]string       `json:"filters,omitempty"`
	Extra     ExtraFilters            `json:"extra"`
	Presets   []datatable.PresetCount `json:"presets"`
	Marked    []schema.Nr             `json:"marked"`
	Selection []schema.Nr             `json:"selection"`
	LastMark  int                     `json:"lastMarked"` // -1 when no anchor is visible
	LoadedAt  time.Time               `json:"loadedAt"`
}

// ActionResult reports the rows a bulk action or mutation touched.
type ActionResult struct {
	Affected   int         `json:"affected"`
	Skipped    int         `json:"skipped,omitempty"`
	Identities []schema.Nr `json:"identities"`
}
