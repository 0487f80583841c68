package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/JonMunkholm/easybill/internal/config"
	"github.com/JonMunkholm/easybill/internal/datatable"
	"github.com/JonMunkholm/easybill/internal/schema"
)

// ReloadTimeout is the maximum duration for re-reading the fixtures.
var ReloadTimeout = 30 * time.Second

// Options configures a Service. All fields are optional.
type Options struct {
	Audit    AuditSink
	Views    config.Views
	PageSize int
}

// Service owns the dashboard session: the rows of every registered
// table, the shared checklist map and one table engine per table.
//
// Engines are not safe for concurrent use, so every method that touches
// one takes the write lock. Row collections and the checklist map are
// never modified after publication; edits build a new value and swap it in.
type Service struct {
	fixtures Fixtures
	audit    AuditSink

	mu        sync.RWMutex
	tables    map[string]*tableState
	checklist schema.ChecklistMap
	loadedAt  time.Time
}

type tableState struct {
	def     TableDefinition
	view    *OrderView
	presets *datatable.PresetSet[schema.Order]
	extra   ExtraFilters
	latest  string // newest import date as yyyy-MM-dd
}

// NewService loads the fixtures and builds an engine for every
// registered table.
func NewService(ctx context.Context, fixtures Fixtures, opts Options) (*Service, error) {
	if opts.Audit == nil {
		opts.Audit = NewMemoryAuditSink(DefaultAuditLimit)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = datatable.DefaultPageSize
	}

	ds, err := fixtures.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}

	s := &Service{
		fixtures:  fixtures,
		audit:     opts.Audit,
		tables:    make(map[string]*tableState),
		checklist: ds.Checklist,
		loadedAt:  ds.LoadedAt,
	}

	for _, def := range All() {
		state, err := s.newTable(def, tableRows(def, ds), opts.Views.For(def.Info.Key, opts.PageSize))
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", def.Info.Key, err)
		}
		s.tables[def.Info.Key] = state
	}

	return s, nil
}

func (s *Service) newTable(def TableDefinition, rows []schema.Order, view config.View) (*tableState, error) {
	state := &tableState{def: def, latest: latestImport(rows)}
	env := TableEnv{
		Checklist:    func() schema.ChecklistMap { return s.checklist },
		LatestImport: func() string { return state.latest },
	}

	sort := def.DefaultSort
	if view.Sort != nil {
		sort = datatable.SortState{ColumnID: view.Sort.Column, Desc: view.Sort.Desc}
	}
	hidden := make(datatable.Visibility, len(view.Hidden))
	for _, id := range view.Hidden {
		hidden[id] = false
	}

	cfg := datatable.Config[schema.Order, schema.Nr]{
		Identity:                schema.Order.Identity,
		PageSize:                view.PageSize,
		EnableGlobalFilter:      true,
		InitialColumnVisibility: hidden,
	}
	if sort.ColumnID != "" {
		cfg.InitialSort = &sort
	}

	v, err := datatable.New(rows, def.Columns(env), cfg)
	if err != nil {
		return nil, err
	}
	for _, id := range view.Hidden {
		if _, ok := v.Column(id); !ok {
			return nil, fmt.Errorf("hidden column: %w: %s", datatable.ErrUnknownColumn, id)
		}
	}
	state.view = v

	if def.Presets != nil {
		state.presets = datatable.NewPresetSet(def.Presets(env)...)
		v.SetPredicate("presets", state.presets.Match)
	}
	v.SetPredicate("extra", func(o schema.Order) bool { return state.extra.match(o) })

	return state, nil
}

// tableRows selects the rows of def from ds. Rows whose order number
// repeats an earlier row are dropped with a warning, so a dirty export
// still loads. Two blank numbers count as a repeat.
func tableRows(def TableDefinition, ds Dataset) []schema.Order {
	rows := def.Rows(ds)
	seen := make(map[schema.Nr]struct{}, len(rows))
	out := rows[:0:0]
	for _, o := range rows {
		if _, dup := seen[o.Nr]; dup {
			slog.Warn("duplicate order number, row skipped",
				"table", def.Info.Key, "nr", o.Nr.String(), "bestellnummer", o.Bestellnummer)
			continue
		}
		seen[o.Nr] = struct{}{}
		out = append(out, o)
	}
	return out
}

// latestImport returns the newest normalized import date of rows.
func latestImport(rows []schema.Order) string {
	latest := ""
	for _, o := range rows {
		if d := NormalizeDate(o.Importdatum); d > latest {
			latest = d
		}
	}
	return latest
}

// table returns the state of key. Callers hold s.mu.
func (s *Service) table(key string) (*tableState, error) {
	t, ok := s.tables[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, key)
	}
	return t, nil
}

// ListTables returns information about all registered tables.
func (s *Service) ListTables() []TableInfo {
	defs := All()
	infos := make([]TableInfo, 0, len(defs))
	for _, def := range defs {
		if _, ok := s.tables[def.Info.Key]; ok {
			infos = append(infos, def.Info)
		}
	}
	return infos
}

// Checklist returns the current checklist map.
func (s *Service) Checklist() schema.ChecklistMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checklist
}

// LoadedAt returns when the fixtures were last loaded.
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Rows returns a copy of the backing rows of table key.
func (s *Service) Rows(key string) ([]schema.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.table(key)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.view.Data()), nil
}

// Reload re-reads the fixtures and replaces every table's rows and the
// checklist map. Edits, deletions, marks and selection are discarded;
// sorting, filters and visibility are kept.
func (s *Service) Reload(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ReloadTimeout)
	defer cancel()

	ds, err := s.fixtures.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload fixtures: %w", err)
	}

	s.mu.Lock()
	rows, err := s.replaceLocked(ds)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	slog.Info("dashboard reloaded", "source", s.fixtures.Source(), "rows", rows)
	s.recordAudit(ctx, AuditEntry{
		Action:       ActionReload,
		RowsAffected: rows,
		Reason:       s.fixtures.Source(),
	})
	return nil
}

// replaceLocked swaps in the rows of ds for every table and the new
// checklist. Every table is checked first, so on error nothing has been
// replaced. Callers hold s.mu.
func (s *Service) replaceLocked(ds Dataset) (int, error) {
	next := make(map[string][]schema.Order, len(s.tables))
	for key, t := range s.tables {
		rows := tableRows(t.def, ds)
		if err := t.view.CheckData(rows); err != nil {
			return 0, fmt.Errorf("reload %s: %w", key, err)
		}
		next[key] = rows
	}

	s.checklist = ds.Checklist
	s.loadedAt = ds.LoadedAt
	total := 0
	for key, t := range s.tables {
		// Cannot fail: the rows passed CheckData above.
		_ = t.view.SetData(next[key])
		t.latest = latestImport(next[key])
		t.view.ClearMarks()
		t.view.SetSelection(datatable.NewSet[schema.Nr]())
		t.view.Refresh()
		total += len(next[key])
	}
	return total, nil
}
