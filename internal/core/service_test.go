package core_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/datatable"
	_ "github.com/JonMunkholm/easybill/internal/core/tables"
	"github.com/JonMunkholm/easybill/internal/schema"
)

func newTestService(t *testing.T) (*core.Service, *core.MemoryAuditSink) {
	t.Helper()
	sink := core.NewMemoryAuditSink(50)
	s, err := core.NewService(context.Background(), core.EmbeddedFixtures(), core.Options{Audit: sink})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return s, sink
}

func ptr[T any](v T) *T { return &v }

func viewNrs(res *core.TableViewResult) []string {
	nrs := make([]string, len(res.Rows))
	for i, r := range res.Rows {
		nrs[i] = r.Nr.String()
	}
	return nrs
}

func presetCount(t *testing.T, res *core.TableViewResult, id string) int {
	t.Helper()
	for _, p := range res.Presets {
		if p.ID == id {
			return p.Count
		}
	}
	t.Fatalf("preset %q not in result", id)
	return 0
}

func TestListTables(t *testing.T) {
	s, _ := newTestService(t)

	var keys []string
	for _, info := range s.ListTables() {
		keys = append(keys, info.Key)
	}
	if !slices.Equal(keys, []string{"orders", "shipments"}) {
		t.Errorf("ListTables() keys = %v", keys)
	}
}

func TestTableViewUnknownTable(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.TableView("invoices", core.Query{})
	if !errors.Is(err, core.ErrUnknownTable) {
		t.Errorf("TableView() error = %v, want ErrUnknownTable", err)
	}
}

func TestPresetCounts(t *testing.T) {
	s, _ := newTestService(t)

	tests := []struct {
		table string
		want  map[string]int
	}{
		{
			table: "orders",
			want: map[string]int{
				"zuletzt-importiert":         8,
				"rechnungen-nicht-versendet": 9,
				"bezahlt-nicht-gesendet":     4,
				"fehler":                     3,
				"ohne-versandprofil":         3,
				"dhl-national":               4,
				"dpd-europa":                 4,
				"ups-usa":                    1,
			},
		},
		{
			table: "shipments",
			want: map[string]int{
				"zuletzt-importiert": 6,
				"nicht-versendet":    5,
				"keine-pickliste":    2,
				"keine-packliste":    3,
				"fehler":             0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			res, err := s.TableView(tt.table, core.Query{})
			if err != nil {
				t.Fatalf("TableView() error = %v", err)
			}
			if len(res.Presets) != len(tt.want) {
				t.Errorf("got %d presets, want %d", len(res.Presets), len(tt.want))
			}
			for id, want := range tt.want {
				if got := presetCount(t, res, id); got != want {
					t.Errorf("preset %s count = %d, want %d", id, got, want)
				}
			}
		})
	}
}

func TestTableViewQueries(t *testing.T) {
	tests := []struct {
		name      string
		table     string
		query     core.Query
		wantTotal int
		wantNrs   []string
	}{
		{
			name:      "default sort is nr descending",
			table:     "orders",
			query:     core.Query{},
			wantTotal: 12,
			wantNrs:   []string{"12", "11", "10", "9", "8", "7", "6", "5", "4", "3", "2", "1"},
		},
		{
			name:      "preset filters rows",
			table:     "orders",
			query:     core.Query{Presets: []string{"fehler"}},
			wantTotal: 3,
			wantNrs:   []string{"11", "7", "3"},
		},
		{
			name:      "presets combine with and",
			table:     "orders",
			query:     core.Query{Presets: []string{"dpd-europa", "zuletzt-importiert"}},
			wantTotal: 2,
			wantNrs:   []string{"8", "4"},
		},
		{
			name:      "ascending sort",
			table:     "shipments",
			query:     core.Query{Sort: ptr("nr"), Desc: false},
			wantTotal: 6,
			wantNrs:   []string{"1-0", "2-0", "5-0", "5-1", "9-0", "12-0"},
		},
		{
			name:      "import date range",
			table:     "orders",
			query:     core.Query{Extra: &core.ExtraFilters{ImportFrom: "01.12.2025"}},
			wantTotal: 4,
			wantNrs:   []string{"12", "9", "6", "3"},
		},
		{
			name:      "unparseable import date is ignored",
			table:     "orders",
			query:     core.Query{Extra: &core.ExtraFilters{ImportFrom: "gestern"}},
			wantTotal: 12,
			wantNrs:   []string{"12", "11", "10", "9", "8", "7", "6", "5", "4", "3", "2", "1"},
		},
		{
			name:      "column filter",
			table:     "orders",
			query:     core.Query{Filters: map[string]string{"versandprofil": "UPS"}},
			wantTotal: 1,
			wantNrs:   []string{"5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestService(t)

			res, err := s.TableView(tt.table, tt.query)
			if err != nil {
				t.Fatalf("TableView() error = %v", err)
			}
			if res.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", res.Total, tt.wantTotal)
			}
			if got := viewNrs(res); !slices.Equal(got, tt.wantNrs) {
				t.Errorf("rows = %v, want %v", got, tt.wantNrs)
			}
		})
	}
}

func TestTableViewUnknownPreset(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.TableView("orders", core.Query{Presets: []string{"bogus"}})
	if !errors.Is(err, core.ErrUnknownPreset) {
		t.Errorf("TableView() error = %v, want ErrUnknownPreset", err)
	}
}

func TestTableViewFilterResetsPage(t *testing.T) {
	s, _ := newTestService(t)

	res, err := s.TableView("orders", core.Query{PageSize: ptr(10), Page: ptr(2)})
	if err != nil {
		t.Fatalf("TableView() error = %v", err)
	}
	if res.Page != 2 || len(res.Rows) != 2 || res.PageCount != 2 {
		t.Fatalf("page = %d rows = %d count = %d, want page 2 with 2 rows of 2", res.Page, len(res.Rows), res.PageCount)
	}
	if res.Rows[0].Index != 10 {
		t.Errorf("first row index = %d, want 10", res.Rows[0].Index)
	}

	res, err = s.TableView("orders", core.Query{Search: ptr("Amazon")})
	if err != nil {
		t.Fatalf("TableView() error = %v", err)
	}
	if res.Page != 1 {
		t.Errorf("page after search = %d, want 1", res.Page)
	}
}

func TestUpdateFieldProfile(t *testing.T) {
	s, sink := newTestService(t)
	ctx := context.Background()

	got, err := s.UpdateField(ctx, "orders", schema.IntNr(6), "versandprofil", " UPS USA ")
	if err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	if got.Profile() != schema.ProfileUPSUSA {
		t.Errorf("profile = %q, want %q", got.Profile(), schema.ProfileUPSUSA)
	}
	if got.Versanddienstleister != "UPS" {
		t.Errorf("carrier = %q, want UPS", got.Versanddienstleister)
	}
	if !s.Checklist().Flag(schema.IntNr(6), schema.VersandprofilHinzugefuegt) {
		t.Error("versandprofilHinzugefuegt not set")
	}

	res, _ := s.TableView("orders", core.Query{})
	if n := presetCount(t, res, "ohne-versandprofil"); n != 2 {
		t.Errorf("ohne-versandprofil = %d, want 2", n)
	}
	if n := presetCount(t, res, "ups-usa"); n != 2 {
		t.Errorf("ups-usa = %d, want 2", n)
	}

	got, err = s.UpdateField(ctx, "orders", schema.IntNr(1), "versandprofil", "-")
	if err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	if got.Versandprofil != nil {
		t.Errorf("profile = %q, want nil", *got.Versandprofil)
	}

	entries, _ := sink.Recent(ctx, core.AuditQuery{Action: core.ActionCellEdit})
	if len(entries) != 2 {
		t.Fatalf("got %d cell_edit entries, want 2", len(entries))
	}
	if entries[1].OldValue != "" || entries[1].NewValue != "UPS USA" || entries[1].Severity != core.SeverityMedium {
		t.Errorf("unexpected audit entry %+v", entries[1])
	}
}

func TestUpdateFieldErrors(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		table string
		nr    schema.Nr
		field string
		want  error
	}{
		{"computed field", "orders", schema.IntNr(1), "gesamtBrutto", core.ErrUnknownField},
		{"missing row", "orders", schema.IntNr(99), "email", core.ErrUnknownRow},
		{"unknown table", "invoices", schema.IntNr(1), "email", core.ErrUnknownTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateField(ctx, tt.table, tt.nr, tt.field, "x")
			if !errors.Is(err, tt.want) {
				t.Errorf("UpdateField() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSendInvoices(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	if _, err := s.SendInvoices(ctx, "orders", false); !errors.Is(err, core.ErrNoRowsMarked) {
		t.Fatalf("SendInvoices() without marks error = %v, want ErrNoRowsMarked", err)
	}

	for _, n := range []int{1, 2} {
		if err := s.MarkRow("orders", schema.IntNr(n), false); err != nil {
			t.Fatalf("MarkRow(%d) error = %v", n, err)
		}
	}

	_, err := s.SendInvoices(ctx, "orders", false)
	if !errors.Is(err, core.ErrAlreadySent) {
		t.Fatalf("SendInvoices() error = %v, want ErrAlreadySent", err)
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error = %q, want count of sent rows", err)
	}

	res, err := s.SendInvoices(ctx, "orders", true)
	if err != nil {
		t.Fatalf("SendInvoices(force) error = %v", err)
	}
	if res.Affected != 2 {
		t.Errorf("Affected = %d, want 2", res.Affected)
	}
	if !s.Checklist().Flag(schema.IntNr(2), schema.RechnungVersendet) {
		t.Error("rechnungVersendet not set for 2")
	}

	view, _ := s.TableView("orders", core.Query{})
	if len(view.Marked) != 0 {
		t.Errorf("marks = %v, want none", view.Marked)
	}
	for _, r := range view.Rows {
		if r.Nr == schema.IntNr(2) && r.Order.StatusRechnungsversand != schema.InvoiceSent {
			t.Errorf("status = %q, want versendet", r.Order.StatusRechnungsversand)
		}
	}
}

func TestSendInvoicesIgnoresHiddenMarks(t *testing.T) {
	s, _ := newTestService(t)

	if err := s.MarkRow("orders", schema.IntNr(1), false); err != nil {
		t.Fatalf("MarkRow() error = %v", err)
	}
	if _, err := s.TableView("orders", core.Query{Search: ptr("eBay")}); err != nil {
		t.Fatalf("TableView() error = %v", err)
	}

	if _, err := s.SendInvoices(context.Background(), "orders", false); !errors.Is(err, core.ErrNoRowsMarked) {
		t.Errorf("SendInvoices() error = %v, want ErrNoRowsMarked", err)
	}
}

func TestCreateShipments(t *testing.T) {
	s, sink := newTestService(t)
	ctx := context.Background()

	for _, n := range []int{1, 4} {
		if err := s.MarkRow("orders", schema.IntNr(n), false); err != nil {
			t.Fatalf("MarkRow(%d) error = %v", n, err)
		}
	}

	res, err := s.CreateShipments(ctx, "orders")
	if err != nil {
		t.Fatalf("CreateShipments() error = %v", err)
	}
	if res.Affected != 1 || res.Skipped != 1 {
		t.Errorf("result = %+v, want 1 affected and 1 skipped", res)
	}
	if !slices.Equal(res.Identities, []schema.Nr{schema.IntNr(4)}) {
		t.Errorf("Identities = %v, want [4]", res.Identities)
	}
	if !s.Checklist().Flag(schema.IntNr(4), schema.SendungErstellt) {
		t.Error("sendungErstellt not set for 4")
	}

	rows, _ := s.Rows("shipments")
	if len(rows) != 6 {
		t.Errorf("shipments = %d, want 6", len(rows))
	}

	entries, _ := sink.Recent(ctx, core.AuditQuery{Action: core.ActionCreateShipments})
	if len(entries) != 1 || entries[0].Severity != core.SeverityHigh {
		t.Errorf("unexpected audit entries %+v", entries)
	}
}

func TestMarkRowShiftRange(t *testing.T) {
	s, _ := newTestService(t)

	if err := s.MarkRow("orders", schema.IntNr(12), false); err != nil {
		t.Fatalf("MarkRow() error = %v", err)
	}
	if err := s.MarkRow("orders", schema.IntNr(9), true); err != nil {
		t.Fatalf("MarkRow(shift) error = %v", err)
	}

	res, _ := s.TableView("orders", core.Query{})
	want := []schema.Nr{schema.IntNr(9), schema.IntNr(10), schema.IntNr(11), schema.IntNr(12)}
	if !slices.Equal(res.Marked, want) {
		t.Errorf("Marked = %v, want %v", res.Marked, want)
	}
	if res.LastMark != 3 {
		t.Errorf("LastMark = %d, want 3", res.LastMark)
	}
}

func TestDeleteRowsAndReload(t *testing.T) {
	s, sink := newTestService(t)
	ctx := context.Background()

	if _, err := s.UpdateField(ctx, "orders", schema.IntNr(2), "email", "neu@example.de"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	res, err := s.DeleteRows(ctx, "orders", []schema.Nr{schema.IntNr(1), schema.IntNr(99)})
	if err != nil {
		t.Fatalf("DeleteRows() error = %v", err)
	}
	if res.Affected != 1 || res.Skipped != 1 {
		t.Errorf("result = %+v, want 1 affected and 1 skipped", res)
	}

	view, _ := s.TableView("orders", core.Query{Sort: ptr("nr"), Desc: false})
	if view.TotalRows != 11 || view.Rows[0].Nr != schema.IntNr(2) {
		t.Fatalf("after delete: total = %d first = %s", view.TotalRows, view.Rows[0].Nr)
	}

	if err := s.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	view, _ = s.TableView("orders", core.Query{})
	if view.TotalRows != 12 {
		t.Errorf("after reload: total = %d, want 12", view.TotalRows)
	}
	if view.Sort == nil || view.Sort.ColumnID != "nr" || view.Sort.Desc {
		t.Errorf("sort not kept across reload: %+v", view.Sort)
	}
	if view.Rows[1].Order.Email == "neu@example.de" {
		t.Error("edit survived reload")
	}

	entries, _ := sink.Recent(ctx, core.AuditQuery{Limit: 1})
	if len(entries) != 1 || entries[0].Action != core.ActionReload || entries[0].Severity != core.SeverityCritical {
		t.Errorf("last audit entry = %+v, want critical reload", entries)
	}
}

func TestReorderRows(t *testing.T) {
	s, _ := newTestService(t)

	if _, err := s.TableView("orders", core.Query{Sort: ptr("")}); err != nil {
		t.Fatalf("TableView() error = %v", err)
	}
	if err := s.ReorderRows(context.Background(), "orders", 0, 2); err != nil {
		t.Fatalf("ReorderRows() error = %v", err)
	}

	res, _ := s.TableView("orders", core.Query{PageSize: ptr(10)})
	if got := viewNrs(res)[:4]; !slices.Equal(got, []string{"2", "3", "1", "4"}) {
		t.Errorf("rows = %v, want [2 3 1 4]", got)
	}

	if err := s.ReorderRows(context.Background(), "orders", 0, 40); err == nil {
		t.Error("ReorderRows() out of range should fail")
	}
}

func TestSetChecklistFlag(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	before := s.Checklist()
	c, err := s.SetChecklistFlag(ctx, 4, schema.Fehler, true)
	if err != nil {
		t.Fatalf("SetChecklistFlag() error = %v", err)
	}
	if !c.Get(schema.Fehler) {
		t.Error("returned checklist has fehler unset")
	}
	if before.Flag(schema.IntNr(4), schema.Fehler) {
		t.Error("earlier checklist map was modified")
	}

	res, _ := s.TableView("orders", core.Query{})
	if n := presetCount(t, res, "fehler"); n != 4 {
		t.Errorf("fehler = %d, want 4", n)
	}
	ships, _ := s.TableView("shipments", core.Query{})
	if n := presetCount(t, ships, "fehler"); n != 0 {
		t.Errorf("shipments fehler = %d, want 0", n)
	}

	if _, err := s.SetChecklistFlag(ctx, 4, "bogus", true); !errors.Is(err, core.ErrUnknownField) {
		t.Errorf("SetChecklistFlag(bogus) error = %v, want ErrUnknownField", err)
	}
}

func TestColumnVisibility(t *testing.T) {
	s, _ := newTestService(t)

	if err := s.HideAllFloating("orders"); err != nil {
		t.Fatalf("HideAllFloating() error = %v", err)
	}
	if err := s.SetColumnVisibility("orders", "email", false); err != nil {
		t.Fatalf("SetColumnVisibility() error = %v", err)
	}

	res, _ := s.TableView("orders", core.Query{})
	for _, col := range res.Columns {
		if (col.Floating || col.ID == "email") && col.Visible {
			t.Errorf("column %s still visible", col.ID)
		}
	}
	for _, cell := range res.Rows[0].Cells {
		if cell.Column == "email" {
			t.Error("hidden column rendered")
		}
	}

	if err := s.SetColumnVisibility("orders", "nr", false); err == nil {
		t.Error("hiding nr should fail")
	}
}

func TestExportCSV(t *testing.T) {
	s, _ := newTestService(t)

	if _, err := s.TableView("orders", core.Query{Presets: []string{"fehler"}, PageSize: ptr(1)}); err != nil {
		t.Fatalf("TableView() error = %v", err)
	}

	var buf bytes.Buffer
	n, err := s.ExportCSV(context.Background(), "orders", &buf)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if n != 3 {
		t.Errorf("exported %d rows, want 3", n)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want header and 3 rows", len(records))
	}
	if records[0][0] != "Nr" || records[1][0] != "11" {
		t.Errorf("unexpected export start %v / %v", records[0][:2], records[1][:2])
	}
	last := records[1][len(records[1])-1]
	if last != "TRUE" {
		t.Errorf("fehler cell = %q, want TRUE", last)
	}
}

func TestMemoryAuditSink(t *testing.T) {
	ctx := context.Background()
	sink := core.NewMemoryAuditSink(2)

	_ = sink.Record(ctx, core.AuditEntry{Action: core.ActionCellEdit, TableKey: "orders", RowKey: "1"})
	_ = sink.Record(ctx, core.AuditEntry{Action: core.ActionRowDelete, TableKey: "orders", RowKey: "2"})
	_ = sink.Record(ctx, core.AuditEntry{Action: core.ActionCellEdit, TableKey: "shipments", RowKey: "3"})

	tests := []struct {
		name  string
		query core.AuditQuery
		want  []string
	}{
		{"oldest entry dropped", core.AuditQuery{}, []string{"3", "2"}},
		{"by table", core.AuditQuery{TableKey: "orders"}, []string{"2"}},
		{"by action", core.AuditQuery{Action: core.ActionCellEdit}, []string{"3"}},
		{"limit", core.AuditQuery{Limit: 1}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := sink.Recent(ctx, tt.query)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.RowKey)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Recent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuditContext(t *testing.T) {
	s, sink := newTestService(t)

	ctx := core.ContextWithIPAddress(context.Background(), "10.0.0.7")
	ctx = core.ContextWithRequestID(ctx, "req-1")
	if _, err := s.SetChecklistFlag(ctx, 1, schema.Versendet, false); err != nil {
		t.Fatalf("SetChecklistFlag() error = %v", err)
	}

	entries, _ := sink.Recent(context.Background(), core.AuditQuery{Limit: 1})
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.ID == "" || e.IPAddress != "10.0.0.7" || e.RequestID != "req-1" || e.OldValue != "true" {
		t.Errorf("unexpected entry %+v", e)
	}
}

type fakePurger struct {
	calls atomic.Int32
}

func (f *fakePurger) Purge(_ context.Context, retention time.Duration) (int64, error) {
	f.calls.Add(1)
	return 0, nil
}

func TestStartAuditRetention(t *testing.T) {
	t.Run("disabled without retention", func(t *testing.T) {
		p := &fakePurger{}
		core.StartAuditRetention(context.Background(), p, core.RetentionConfig{})
		if p.calls.Load() != 0 {
			t.Errorf("purge ran %d times, want 0", p.calls.Load())
		}
	})

	t.Run("runs until cancelled", func(t *testing.T) {
		p := &fakePurger{}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			core.StartAuditRetention(ctx, p, core.RetentionConfig{Retention: time.Hour, CheckInterval: 5 * time.Millisecond})
			close(done)
		}()

		deadline := time.After(5 * time.Second)
		for p.calls.Load() < 2 {
			select {
			case <-deadline:
				t.Fatal("purge did not repeat")
			case <-time.After(5 * time.Millisecond):
			}
		}
		cancel()
		<-done
	})
}

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	embedded := core.EmbeddedFixtures()
	for _, name := range []string{core.OrdersFile, core.ShipmentsFile, core.ChecklistFile} {
		text, err := embedded.Read(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := core.NewService(ctx, core.DirFixtures(dir), core.Options{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, dir, 20*time.Millisecond) }()
	time.Sleep(100 * time.Millisecond)

	orders, _ := embedded.Read(core.OrdersFile)
	lines := strings.SplitN(orders, "\n", 4)
	if err := os.WriteFile(filepath.Join(dir, core.OrdersFile), []byte(strings.Join(lines[:3], "\n")), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		rows, _ := s.Rows("orders")
		if len(rows) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("orders = %d after change, want 2", len(rows))
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

// fixtureDir copies the bundled exports into a temporary directory.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	embedded := core.EmbeddedFixtures()
	for _, name := range []string{core.OrdersFile, core.ShipmentsFile, core.ChecklistFile} {
		text, err := embedded.Read(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// orderLine returns an orders export row with the given number and shop.
func orderLine(nr, shop string) string {
	fields := make([]string, 26)
	fields[0], fields[1], fields[3] = nr, shop, "B-"+shop+"-"+nr
	fields[23], fields[25] = "2025-12-09", "Bestellung"
	return strings.Join(fields, ",")
}

func TestNewServiceRepeatedOrderNumbers(t *testing.T) {
	embedded := core.EmbeddedFixtures()
	orders, err := embedded.Read(core.OrdersFile)
	if err != nil {
		t.Fatal(err)
	}
	header, _, _ := strings.Cut(orders, "\n")
	shipments, _ := embedded.Read(core.ShipmentsFile)
	checklist, _ := embedded.Read(core.ChecklistFile)

	tests := []struct {
		name      string
		lines     []string
		wantNrs   []string
		wantShops []string
	}{
		{
			name:      "repeated number keeps first row",
			lines:     []string{orderLine("1", "Shopify"), orderLine("2", "eBay"), orderLine("2", "Amazon")},
			wantNrs:   []string{"1", "2"},
			wantShops: []string{"Shopify", "eBay"},
		},
		{
			name:      "two blank numbers",
			lines:     []string{orderLine("", "Otto"), orderLine("1", "Shopify"), orderLine("", "Kaufland")},
			wantNrs:   []string{"", "1"},
			wantShops: []string{"Otto", "Shopify"},
		},
		{
			name: "repeated and blank numbers",
			lines: []string{
				orderLine("1", "Shopify"), orderLine("2", "eBay"), orderLine("2", "Amazon"),
				orderLine("", "Otto"), orderLine("", "Kaufland"), orderLine("3", "Amazon"),
			},
			wantNrs:   []string{"1", "2", "", "3"},
			wantShops: []string{"Shopify", "eBay", "Otto", "Amazon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				core.OrdersFile:    {Data: []byte(header + "\n" + strings.Join(tt.lines, "\n") + "\n")},
				core.ShipmentsFile: {Data: []byte(shipments)},
				core.ChecklistFile: {Data: []byte(checklist)},
			}
			s, err := core.NewService(context.Background(), core.FSFixtures(fsys, "test"), core.Options{})
			if err != nil {
				t.Fatalf("NewService() error = %v", err)
			}

			rows, err := s.Rows("orders")
			if err != nil {
				t.Fatal(err)
			}
			var nrs, shops []string
			for _, o := range rows {
				nrs = append(nrs, o.Nr.String())
				shops = append(shops, o.Shop)
			}
			if !slices.Equal(nrs, tt.wantNrs) {
				t.Errorf("nrs = %q, want %q", nrs, tt.wantNrs)
			}
			if !slices.Equal(shops, tt.wantShops) {
				t.Errorf("shops = %q, want %q", shops, tt.wantShops)
			}
			if _, err := s.TableView("orders", core.Query{}); err != nil {
				t.Errorf("TableView() error = %v", err)
			}
		})
	}
}

func TestReloadFailureKeepsState(t *testing.T) {
	tests := []struct {
		name   string
		modify func(t *testing.T, dir string)
	}{
		{
			name: "orders file removed",
			modify: func(t *testing.T, dir string) {
				if err := os.Remove(filepath.Join(dir, core.OrdersFile)); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "shipments file removed",
			modify: func(t *testing.T, dir string) {
				if err := os.Remove(filepath.Join(dir, core.ShipmentsFile)); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := fixtureDir(t)
			ctx := context.Background()
			s, err := core.NewService(ctx, core.DirFixtures(dir), core.Options{})
			if err != nil {
				t.Fatalf("NewService() error = %v", err)
			}
			if err := s.MarkRow("orders", schema.IntNr(3), false); err != nil {
				t.Fatalf("MarkRow() error = %v", err)
			}

			wantLen := s.Checklist().Len()
			wantLoaded := s.LoadedAt()
			wantRows, _ := s.Rows("orders")

			// The checklist gains an entry that a partial reload would pick up.
			path := filepath.Join(dir, core.ChecklistFile)
			text, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			extra := strings.TrimRight(string(text), "\n") + "\n999,TRUE,TRUE,TRUE,TRUE,TRUE,TRUE,TRUE,FALSE\n"
			if err := os.WriteFile(path, []byte(extra), 0o644); err != nil {
				t.Fatal(err)
			}
			tt.modify(t, dir)

			if err := s.Reload(ctx); err == nil {
				t.Fatal("Reload() error = nil, want error")
			}

			if got := s.Checklist().Len(); got != wantLen {
				t.Errorf("Checklist().Len() = %d, want %d", got, wantLen)
			}
			if got := s.LoadedAt(); !got.Equal(wantLoaded) {
				t.Errorf("LoadedAt() = %v, want %v", got, wantLoaded)
			}
			rows, _ := s.Rows("orders")
			if len(rows) != len(wantRows) {
				t.Errorf("Rows() = %d rows, want %d", len(rows), len(wantRows))
			}
			res, err := s.TableView("orders", core.Query{})
			if err != nil {
				t.Fatalf("TableView() error = %v", err)
			}
			if !slices.Equal(res.Marked, []schema.Nr{schema.IntNr(3)}) {
				t.Errorf("Marked = %v, want [3]", res.Marked)
			}
		})
	}
}

func TestReloadSkipsRepeatedOrderNumbers(t *testing.T) {
	dir := fixtureDir(t)
	ctx := context.Background()
	s, err := core.NewService(ctx, core.DirFixtures(dir), core.Options{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	path := filepath.Join(dir, core.OrdersFile)
	text, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	dirty := strings.TrimRight(string(text), "\n") + "\n" + orderLine("1", "eBay") + "\n" + orderLine("", "Otto") + "\n"
	if err := os.WriteFile(path, []byte(dirty), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	rows, _ := s.Rows("orders")
	if len(rows) != 13 {
		t.Errorf("Rows() = %d rows, want 13", len(rows))
	}
	for _, o := range rows {
		if o.Nr.String() == "1" && o.Shop != "Shopify" {
			t.Errorf("order 1 shop = %q, want the first row's Shopify", o.Shop)
		}
	}
}

func TestTableViewInvalidQueryKeepsState(t *testing.T) {
	tests := []struct {
		name    string
		query   core.Query
		wantErr error
	}{
		{
			name: "unknown column filter",
			query: core.Query{
				Presets: []string{"fehler"},
				Search:  ptr("Berlin"),
				Sort:    ptr("shop"),
				Filters: map[string]string{"bogus": "x"},
			},
			wantErr: datatable.ErrUnknownColumn,
		},
		{
			name: "unknown sort column",
			query: core.Query{
				Presets: []string{"fehler"},
				Search:  ptr("Berlin"),
				Sort:    ptr("bogus"),
			},
			wantErr: datatable.ErrUnknownColumn,
		},
		{
			name: "unknown preset after a valid one",
			query: core.Query{
				Presets: []string{"fehler", "bogus"},
				Search:  ptr("Berlin"),
			},
			wantErr: core.ErrUnknownPreset,
		},
		{
			name: "zero page size",
			query: core.Query{
				Presets:  []string{"fehler"},
				PageSize: ptr(0),
			},
			wantErr: datatable.ErrInvalidPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestService(t)
			if err := s.MarkRow("orders", schema.IntNr(12), false); err != nil {
				t.Fatalf("MarkRow() error = %v", err)
			}
			before, err := s.TableView("orders", core.Query{})
			if err != nil {
				t.Fatalf("TableView() error = %v", err)
			}

			if _, err := s.TableView("orders", tt.query); !errors.Is(err, tt.wantErr) {
				t.Fatalf("TableView() error = %v, want %v", err, tt.wantErr)
			}

			after, err := s.TableView("orders", core.Query{})
			if err != nil {
				t.Fatalf("TableView() error = %v", err)
			}
			if after.Search != before.Search {
				t.Errorf("Search = %q, want %q", after.Search, before.Search)
			}
			if after.PageSize != before.PageSize {
				t.Errorf("PageSize = %d, want %d", after.PageSize, before.PageSize)
			}
			if !slices.Equal(viewNrs(after), viewNrs(before)) {
				t.Errorf("rows = %v, want %v", viewNrs(after), viewNrs(before))
			}
			if !slices.Equal(after.Marked, before.Marked) {
				t.Errorf("Marked = %v, want %v", after.Marked, before.Marked)
			}
			for _, p := range after.Presets {
				if p.Active {
					t.Errorf("preset %s active after rejected query", p.ID)
				}
			}
		})
	}
}
