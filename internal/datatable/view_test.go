package datatable

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/JonMunkholm/easybill/internal/schema"
)

type address struct {
	Street string
	City   string
}

type person struct {
	ID      int
	Name    string
	Age     int
	Score   *float64
	Address address
	Tags    []string
	Extra   map[string]any
}

func score(f float64) *float64 { return &f }

func people() []person {
	return []person{
		{ID: 1, Name: "Anna", Age: 34, Score: score(7.5), Address: address{"Lindenweg 3", "München"}},
		{ID: 2, Name: "Max", Age: 28, Address: address{"Hauptstraße 12", "Berlin"}, Tags: []string{"vip"}},
		{ID: 3, Name: "Jan", Age: 41, Score: score(2), Address: address{"Keizersgracht 100", "Amsterdam"}},
		{ID: 4, Name: "Lena", Age: 28, Score: score(9), Address: address{"Am Markt 7", "Leipzig"},
			Extra: map[string]any{"note": "Geschenk", "items": []int{4711}}},
	}
}

func personColumns() []ColumnDef[person] {
	return []ColumnDef[person]{
		{ID: "id", Accessor: func(p person) any { return p.ID }},
		{ID: "name", Accessor: func(p person) any { return p.Name }, EnableHiding: true},
		{ID: "age", Accessor: func(p person) any { return p.Age }, EnableHiding: true},
		{ID: "score", Accessor: func(p person) any { return p.Score }, EnableHiding: true},
		{ID: "city", Accessor: func(p person) any { return p.Address.City }},
		{ID: "actions"},
	}
}

func newPeopleView(t *testing.T, cfg Config[person, int]) *View[person, int] {
	t.Helper()
	cfg.Identity = func(p person) int { return p.ID }
	if cfg.PageSize == 0 {
		cfg.PageSize = 10
	}
	v, err := New(people(), personColumns(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return v
}

func ids(rows []person) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

// ----------------------------------------------------------------------------
// Construction
// ----------------------------------------------------------------------------

func TestNew_Validation(t *testing.T) {
	identity := func(p person) int { return p.ID }

	if _, err := New(people(), personColumns(), Config[person, int]{}); err == nil {
		t.Error("expected error without identity accessor")
	}

	dupCols := append(personColumns(), ColumnDef[person]{ID: "name"})
	if _, err := New(people(), dupCols, Config[person, int]{Identity: identity}); err == nil {
		t.Error("expected error for duplicate column id")
	}

	dupRows := append(people(), person{ID: 1})
	if _, err := New(dupRows, personColumns(), Config[person, int]{Identity: identity}); !errors.Is(err, ErrDuplicateIdentity) {
		t.Errorf("err = %v, want ErrDuplicateIdentity", err)
	}

	badSort := Config[person, int]{Identity: identity, InitialSort: &SortState{ColumnID: "nope"}}
	if _, err := New(people(), personColumns(), badSort); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("err = %v, want ErrUnknownColumn", err)
	}

	v, err := New(people(), personColumns(), Config[person, int]{Identity: identity})
	if err != nil {
		t.Fatal(err)
	}
	if v.PageSize() != DefaultPageSize {
		t.Errorf("PageSize() = %d, want %d", v.PageSize(), DefaultPageSize)
	}
}

// ----------------------------------------------------------------------------
// Sorting
// ----------------------------------------------------------------------------

func TestSort(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{})

	if got := ids(v.Rows()); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Fatalf("unsorted rows = %v", got)
	}

	tests := []struct {
		column string
		desc   bool
		want   []int
	}{
		{"age", false, []int{2, 4, 1, 3}}, // stable for equal ages
		{"age", true, []int{3, 1, 2, 4}},
		{"name", false, []int{1, 3, 4, 2}},
		{"score", false, []int{3, 1, 4, 2}}, // nil last
		{"score", true, []int{4, 1, 3, 2}},  // nil still last
	}
	for _, tt := range tests {
		name := tt.column
		if tt.desc {
			name += " desc"
		}
		t.Run(name, func(t *testing.T) {
			if err := v.SetSort(tt.column, tt.desc); err != nil {
				t.Fatal(err)
			}
			if got := ids(v.Rows()); !slices.Equal(got, tt.want) {
				t.Errorf("rows = %v, want %v", got, tt.want)
			}
		})
	}

	v.ClearSort()
	if v.Sort() != nil {
		t.Error("Sort() should be nil after ClearSort")
	}
	if got := ids(v.Rows()); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("rows after ClearSort = %v", got)
	}

	if err := v.SetSort("actions", false); !errors.Is(err, ErrNotSortable) {
		t.Errorf("err = %v, want ErrNotSortable", err)
	}
}

type order struct {
	Nr schema.Nr
}

func TestSort_CompositeIdentity(t *testing.T) {
	rows := []order{
		{schema.IntNr(3)}, {schema.ParseNr("14-0")}, {schema.IntNr(2)},
		{schema.ParseNr("14-1")}, {schema.IntNr(15)}, {schema.IntNr(14)},
	}
	cols := []ColumnDef[order]{{
		ID:       "nr",
		Accessor: func(o order) any { return o.Nr },
		SortFn:   func(a, b order) int { return schema.CompareNr(a.Nr, b.Nr) },
	}}
	v, err := New(rows, cols, Config[order, schema.Nr]{
		Identity:    func(o order) schema.Nr { return o.Nr },
		InitialSort: &SortState{ColumnID: "nr"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, r := range v.Rows() {
		got = append(got, r.Nr.String())
	}
	want := []string{"2", "3", "14", "14-0", "14-1", "15"}
	if !slices.Equal(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 2, 10, -1},
		{"int and float", 3, 2.5, 1},
		{"strings", "b", "a", 1},
		{"bools", false, true, -1},
		{"equal", "x", "x", 0},
		{"nil last", nil, 1, 1},
		{"nil pointer last", 1, (*float64)(nil), -1},
		{"pointers", score(1), score(2), -1},
		{"stringer", schema.IntNr(2), schema.IntNr(10), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareValues(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareValues(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{(*string)(nil), ""},
		{score(4.19), "4.19"},
		{12.0, "12"},
		{42, "42"},
		{true, "true"},
		{schema.ParseNr("14-0"), "14-0"},
		{schema.InvoicePending, "ausstehend"},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// Filtering
// ----------------------------------------------------------------------------

func TestGlobalFilter(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{EnableGlobalFilter: true})

	tests := []struct {
		name   string
		filter string
		want   []int
	}{
		{"top level field", "anna", []int{1}},
		{"nested struct only", "keizersgracht", []int{3}},
		{"nested slice", "VIP", []int{2}},
		{"map value", "geschenk", []int{4}},
		{"number inside map", "4711", []int{4}},
		{"number field", "41", []int{3}},
		{"float field", "7.5", []int{1}},
		{"trimmed", "  berlin ", []int{2}},
		{"nowhere", "zürich", []int{}},
		{"umlaut not folded", "munchen", []int{}},
		{"umlaut matches itself", "MÜNCHEN", []int{1}},
		{"empty matches all", "", []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.SetGlobalFilter(tt.filter); err != nil {
				t.Fatal(err)
			}
			if got := ids(v.Rows()); !slices.Equal(got, tt.want) {
				t.Errorf("rows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGlobalFilter_Disabled(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{})
	if err := v.SetGlobalFilter("anna"); !errors.Is(err, ErrGlobalFilterDisabled) {
		t.Errorf("err = %v, want ErrGlobalFilterDisabled", err)
	}
}

func TestSearch(t *testing.T) {
	rec := map[string]any{
		"adresse": map[string]any{"strasse": "Max Müller, Hauptstraße 12"},
	}
	if !Search(rec, "hauptstraße") {
		t.Error("nested value should match")
	}
	if Search(rec, "mueller") {
		t.Error("transliterated query should not match an umlaut")
	}
	if Search(rec, "köln") {
		t.Error("absent value should not match")
	}
	if !Search(rec, "   ") {
		t.Error("blank needle matches everything")
	}
}

func TestColumnFilter(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{EnableGlobalFilter: true})

	if err := v.SetColumnFilter("age", "28"); err != nil {
		t.Fatal(err)
	}
	if got := ids(v.Rows()); !slices.Equal(got, []int{2, 4}) {
		t.Errorf("age=28 rows = %v", got)
	}

	if err := v.SetColumnFilter("city", "LEIP"); err != nil {
		t.Fatal(err)
	}
	if got := ids(v.Rows()); !slices.Equal(got, []int{4}) {
		t.Errorf("age=28 and city~leip rows = %v", got)
	}
	if got := v.ColumnFilters(); len(got) != 2 {
		t.Errorf("ColumnFilters() = %v, want 2 entries", got)
	}

	if err := v.SetGlobalFilter("berlin"); err != nil {
		t.Fatal(err)
	}
	if got := v.Rows(); len(got) != 0 {
		t.Errorf("column and global filters must AND, got %v", ids(got))
	}

	_ = v.SetGlobalFilter("")
	_ = v.SetColumnFilter("city", "")
	if got := ids(v.Rows()); !slices.Equal(got, []int{2, 4}) {
		t.Errorf("after removing city filter rows = %v", got)
	}

	if err := v.SetColumnFilter("actions", "x"); !errors.Is(err, ErrNotFilterable) {
		t.Errorf("err = %v, want ErrNotFilterable", err)
	}
	if err := v.SetColumnFilter("nope", "x"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("err = %v, want ErrUnknownColumn", err)
	}
}

func TestColumnFilter_CustomFn(t *testing.T) {
	cols := personColumns()
	cols[2].FilterFn = func(p person, value string) bool {
		return value == "adult" && p.Age >= 30
	}
	v, err := New(people(), cols, Config[person, int]{Identity: func(p person) int { return p.ID }})
	if err != nil {
		t.Fatal(err)
	}
	_ = v.SetColumnFilter("age", "adult")
	if got := ids(v.Rows()); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("rows = %v, want [1 3]", got)
	}
}

func TestSetPredicate(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{})
	data := v.Data()

	v.SetPredicate("scored", func(p person) bool { return p.Score != nil })
	v.SetPredicate("young", func(p person) bool { return p.Age < 40 })
	if got := ids(v.Rows()); !slices.Equal(got, []int{1, 4}) {
		t.Errorf("rows = %v, want [1 4]", got)
	}

	v.SetPredicate("young", nil)
	if got := ids(v.Rows()); !slices.Equal(got, []int{1, 3, 4}) {
		t.Errorf("rows = %v, want [1 3 4]", got)
	}
	if !slices.Equal(ids(v.Data()), ids(data)) || len(v.Data()) != 4 {
		t.Error("filtering must not change the backing data")
	}
}

// ----------------------------------------------------------------------------
// Visibility
// ----------------------------------------------------------------------------

func floatingColumns() []ColumnDef[person] {
	return []ColumnDef[person]{
		{ID: "name", Accessor: func(p person) any { return p.Name }},
		{ID: "a", Floating: true, EnableHiding: true},
		{ID: "b", Floating: true, EnableHiding: true},
		{ID: "c", Floating: true, EnableHiding: true},
		{ID: "err", Floating: true, ErrorIndicator: true},
	}
}

func TestFloatingOffsets(t *testing.T) {
	v, err := New(people(), floatingColumns()[:4], Config[person, int]{Identity: func(p person) int { return p.ID }})
	if err != nil {
		t.Fatal(err)
	}

	got := v.FloatingOffsets()
	if got["a"] != 100 || got["b"] != 50 || got["c"] != 0 {
		t.Errorf("all visible offsets = %v", got)
	}

	if err := v.SetColumnVisibility("b", false); err != nil {
		t.Fatal(err)
	}
	got = v.FloatingOffsets()
	if _, ok := got["b"]; ok {
		t.Error("hidden column must have no offset")
	}
	if got["c"] != 0 || got["a"] <= got["c"] {
		t.Errorf("offsets after hiding b = %v, want c flush and a further out", got)
	}
	if got["a"] != FloatingColumnWidth {
		t.Errorf("a offset = %d, want %d", got["a"], FloatingColumnWidth)
	}

	_ = v.SetColumnVisibility("b", true)
	if got := v.FloatingOffsets(); got["b"] != 50 {
		t.Errorf("b offset after showing = %d, want 50", got["b"])
	}
}

func TestVisibility(t *testing.T) {
	v, err := New(people(), floatingColumns(), Config[person, int]{
		Identity:                func(p person) int { return p.ID },
		InitialColumnVisibility: Visibility{"a": false},
	})
	if err != nil {
		t.Fatal(err)
	}

	if v.IsColumnVisible("a") || !v.IsColumnVisible("b") {
		t.Errorf("initial visibility = %v", v.Visibility())
	}
	if n := len(v.VisibleColumns()); n != 4 {
		t.Errorf("len(VisibleColumns()) = %d, want 4", n)
	}

	if err := v.SetColumnVisibility("name", false); !errors.Is(err, ErrNotHideable) {
		t.Errorf("err = %v, want ErrNotHideable", err)
	}
	if err := v.SetColumnVisibility("zzz", false); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("err = %v, want ErrUnknownColumn", err)
	}

	v.HideAllFloating()
	offsets := v.FloatingOffsets()
	if len(offsets) != 1 || offsets["err"] != 0 {
		t.Errorf("after HideAllFloating offsets = %v, want only the non-hideable err column", offsets)
	}
	if len(v.Columns()) != 5 {
		t.Error("hiding must not remove definitions")
	}
}

// ----------------------------------------------------------------------------
// Pagination
// ----------------------------------------------------------------------------

func manyPeople(n int) []person {
	out := make([]person, n)
	for i := range out {
		out[i] = person{ID: i, Age: i % 7}
	}
	return out
}

func TestPagination(t *testing.T) {
	v, err := New(manyPeople(23), personColumns(), Config[person, int]{
		Identity: func(p person) int { return p.ID },
		PageSize: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	if v.PageCount() != 3 {
		t.Errorf("PageCount() = %d, want 3", v.PageCount())
	}

	v.SetPage(10)
	p := v.Page()
	if p.Index != 2 || len(p.Rows) != 3 || p.Total != 23 || p.Count != 3 {
		t.Errorf("clamped page = %+v", p)
	}

	v.SetPage(-4)
	if v.PageIndex() != 0 {
		t.Errorf("PageIndex() = %d, want 0", v.PageIndex())
	}

	v.SetPage(2) // top row 20
	if err := v.SetPageSize(5); err != nil {
		t.Fatal(err)
	}
	if v.PageIndex() != 4 || v.Page().Rows[0].ID != 20 {
		t.Errorf("after resize page = %d, first = %d; want 4, 20", v.PageIndex(), v.Page().Rows[0].ID)
	}

	if err := v.SetPageSize(0); !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("err = %v, want ErrInvalidPageSize", err)
	}

	v.SetPredicate("small", func(p person) bool { return p.ID < 3 })
	if v.PageIndex() != 0 || v.PageCount() != 1 {
		t.Errorf("filter must clamp page: index=%d count=%d", v.PageIndex(), v.PageCount())
	}

	v.SetPredicate("none", func(person) bool { return false })
	p = v.Page()
	if p.Count != 0 || p.Index != 0 || len(p.Rows) != 0 {
		t.Errorf("empty page = %+v", p)
	}
}

// ----------------------------------------------------------------------------
// Reorder and data
// ----------------------------------------------------------------------------

func TestReorderRow(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{})
	original := v.Data()

	next, err := v.ReorderRow(0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(next); !slices.Equal(got, []int{2, 3, 1, 4}) {
		t.Errorf("backing after 0->2 = %v", got)
	}
	if got := ids(original); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("previous backing slice was modified: %v", got)
	}
	if got := ids(v.Data()); !slices.Equal(got, ids(next)) {
		t.Errorf("view did not adopt new backing: %v", got)
	}
}

func TestReorderRow_WhileSorted(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{})
	_ = v.SetSort("age", true) // visible 3, 1, 2, 4

	// visible 0 is id 3 (backing 2), visible 2 is id 2 (backing 1)
	next, err := v.ReorderRow(0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(next); !slices.Equal(got, []int{1, 3, 2, 4}) {
		t.Errorf("backing = %v, want [1 3 2 4]", got)
	}
	if got := ids(v.Rows()); !slices.Equal(got, []int{3, 1, 2, 4}) {
		t.Errorf("sorted view changed: %v", got)
	}

	v.ClearSort()
	if got := ids(v.Rows()); !slices.Equal(got, []int{1, 3, 2, 4}) {
		t.Errorf("unsorted rows = %v", got)
	}

	if _, err := v.ReorderRow(0, 9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSetData_PrunesSelectionAndMarks(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{})
	v.ToggleRowSelected(1)
	v.ToggleRowSelected(3)
	_ = v.MarkRow(3, MarkEvent{})
	_ = v.MarkRow(4, MarkEvent{})

	if err := v.SetData(people()[:2]); err != nil {
		t.Fatal(err)
	}
	if !v.IsSelected(1) || v.IsSelected(3) {
		t.Errorf("selection after SetData = %v", v.RowSelection())
	}
	if v.Marks().Len() != 0 {
		t.Errorf("marks after SetData = %d, want 0", v.Marks().Len())
	}
	if v.LastMarkedIndex() != -1 {
		t.Error("anchor of a removed row must be dropped")
	}

	if err := v.SetData([]person{{ID: 1}, {ID: 1}}); !errors.Is(err, ErrDuplicateIdentity) {
		t.Errorf("err = %v, want ErrDuplicateIdentity", err)
	}
}

func TestFind(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{})
	if p, ok := v.Find(3); !ok || p.Name != "Jan" {
		t.Errorf("Find(3) = %+v, %v", p, ok)
	}
	if _, ok := v.Find(99); ok {
		t.Error("Find(99) should fail")
	}
}

// ----------------------------------------------------------------------------
// Notifications and controlled state
// ----------------------------------------------------------------------------

func TestNotifications(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{EnableGlobalFilter: true})

	var changes []Change
	var lastCount int
	v.OnChange(func(c Change) { changes = append(changes, c) })
	v.OnFilteredRowsChanged(func(rows []person) { lastCount = len(rows) })

	_ = v.SetSort("age", false)
	_ = v.SetGlobalFilter("28")
	_ = v.SetColumnVisibility("age", false)
	v.ToggleRowSelected(2)
	_ = v.MarkRow(2, MarkEvent{})
	v.SetPage(0)
	_, _ = v.ReorderRow(0, 1)

	want := []Change{ChangeSort, ChangeFilter, ChangeVisibility, ChangeSelection, ChangeMark, ChangePage, ChangeData}
	if !slices.Equal(changes, want) {
		t.Errorf("changes = %v, want %v", changes, want)
	}
	if lastCount != 2 {
		t.Errorf("filtered rows notified = %d, want 2", lastCount)
	}
}

func TestControlledState(t *testing.T) {
	var (
		selection = NewSet(2)
		filter    = "lena"
		vis       = Visibility{}
		setCalls  int
	)

	v := newPeopleView(t, Config[person, int]{
		EnableGlobalFilter: true,
		RowSelection: Controlled(
			func() Set[int] { return selection },
			func(s Set[int]) { selection = s; setCalls++ },
		),
		GlobalFilter:     Controlled(func() string { return filter }, func(s string) { filter = s }),
		ColumnVisibility: Controlled(func() Visibility { return vis }, func(m Visibility) { vis = m }),
	})

	if !v.IsSelected(2) {
		t.Error("view should read the caller's selection")
	}
	if got := ids(v.Rows()); !slices.Equal(got, []int{4}) {
		t.Errorf("rows with controlled filter = %v", got)
	}

	before := selection
	v.ToggleRowSelected(4)
	if setCalls != 1 || !selection.Has(4) {
		t.Errorf("change callback not invoked: calls=%d", setCalls)
	}
	if before.Has(4) {
		t.Error("previous selection value was modified in place")
	}

	filter = "max"
	v.Refresh()
	if got := ids(v.Rows()); !slices.Equal(got, []int{2}) {
		t.Errorf("rows after external change = %v", got)
	}

	_ = v.SetColumnVisibility("name", false)
	if vis.Visible("name") {
		t.Error("visibility change not delivered to the caller")
	}
}

// ----------------------------------------------------------------------------
// Tones
// ----------------------------------------------------------------------------

func TestTones(t *testing.T) {
	v, err := New(people(), floatingColumns(), Config[person, int]{Identity: func(p person) int { return p.ID }})
	if err != nil {
		t.Fatal(err)
	}

	_ = v.MarkRow(1, MarkEvent{})
	_ = v.MarkRow(2, MarkEvent{})
	v.ToggleRowSelected(2)

	tests := []struct {
		column string
		id     int
		want   Tone
	}{
		{"a", 1, ToneMarked},
		{"a", 2, ToneSelected},
		{"a", 3, ToneDefault},
		{"err", 1, ToneDefault},
		{"err", 2, ToneDefault},
	}
	for _, tt := range tests {
		if got := v.FloatingCellTone(tt.column, tt.id); got != tt.want {
			t.Errorf("FloatingCellTone(%s, %d) = %s, want %s", tt.column, tt.id, got, tt.want)
		}
	}
	if v.RowTone(2) != ToneSelected {
		t.Errorf("RowTone(2) = %s, want selected", v.RowTone(2))
	}
	if v.ShowsCheckbox("err") || !v.ShowsCheckbox("a") || v.ShowsCheckbox("name") {
		t.Error("only non-error floating columns show a checkbox")
	}
}

func TestColumnRender(t *testing.T) {
	col := ColumnDef[person]{ID: "score", Accessor: func(p person) any { return p.Score }}
	if got := col.Render(people()[1]); got != "" {
		t.Errorf("Render(nil score) = %q", got)
	}
	col.Cell = func(p person) string { return strings.ToUpper(p.Name) }
	if got := col.Render(people()[0]); got != "ANNA" {
		t.Errorf("Render with Cell = %q", got)
	}
}

func TestCheckHelpers(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{})
	ids := func() []int {
		var out []int
		for _, p := range v.Rows() {
			out = append(out, p.ID)
		}
		return out
	}
	before := ids()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"sort known column", v.CheckSort("age"), nil},
		{"sort unknown column", v.CheckSort("nope"), ErrUnknownColumn},
		{"sort without accessor", v.CheckSort("actions"), ErrNotSortable},
		{"filter known column", v.CheckColumnFilter("city"), nil},
		{"filter unknown column", v.CheckColumnFilter("nope"), ErrUnknownColumn},
		{"filter without accessor", v.CheckColumnFilter("actions"), ErrNotFilterable},
		{"unique data", v.CheckData(people()), nil},
		{"duplicate data", v.CheckData(append(people(), person{ID: 2})), ErrDuplicateIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want == nil && tt.err != nil {
				t.Fatalf("error = %v, want nil", tt.err)
			}
			if tt.want != nil && !errors.Is(tt.err, tt.want) {
				t.Fatalf("error = %v, want %v", tt.err, tt.want)
			}
		})
	}

	if v.Sort() != nil || len(v.ColumnFilters()) != 0 || !slices.Equal(ids(), before) {
		t.Error("check helpers changed the view")
	}
	if v.GlobalFilterEnabled() {
		t.Error("global filter enabled without config")
	}
}
