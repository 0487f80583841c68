package datatable

import (
	"fmt"
	"slices"
)

// Preset is a named row predicate that can be switched on and off.
type Preset[T any] struct {
	ID        string
	Label     string
	Predicate func(T) bool
}

// PresetCount is a preset with its match count over a collection.
type PresetCount struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// PresetSet holds presets in display order and which of them are active.
// Active presets are AND-ed.
type PresetSet[T any] struct {
	presets []Preset[T]
	active  map[string]bool
}

// NewPresetSet returns a set with every preset inactive.
func NewPresetSet[T any](presets ...Preset[T]) *PresetSet[T] {
	return &PresetSet[T]{presets: presets, active: make(map[string]bool)}
}

// Has reports whether id names a preset of the set.
func (s *PresetSet[T]) Has(id string) bool {
	return slices.ContainsFunc(s.presets, func(p Preset[T]) bool { return p.ID == id })
}

// Toggle flips preset id.
func (s *PresetSet[T]) Toggle(id string) error {
	return s.Set(id, !s.active[id])
}

// Set switches preset id on or off.
func (s *PresetSet[T]) Set(id string, on bool) error {
	if !s.Has(id) {
		return fmt.Errorf("unknown preset: %s", id)
	}
	if on {
		s.active[id] = true
	} else {
		delete(s.active, id)
	}
	return nil
}

// Reset switches every preset off.
func (s *PresetSet[T]) Reset() { clear(s.active) }

// Active returns the ids of the active presets in display order.
func (s *PresetSet[T]) Active() []string {
	var ids []string
	for _, p := range s.presets {
		if s.active[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Match reports whether row passes every active preset.
func (s *PresetSet[T]) Match(row T) bool {
	for _, p := range s.presets {
		if s.active[p.ID] && !p.Predicate(row) {
			return false
		}
	}
	return true
}

// Apply returns the rows passing every active preset.
func (s *PresetSet[T]) Apply(rows []T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if s.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Counts returns each preset's match count over rows, independent of
// which presets are active.
func (s *PresetSet[T]) Counts(rows []T) []PresetCount {
	out := make([]PresetCount, len(s.presets))
	for i, p := range s.presets {
		n := 0
		for _, r := range rows {
			if p.Predicate(r) {
				n++
			}
		}
		out[i] = PresetCount{ID: p.ID, Label: p.Label, Count: n, Active: s.active[p.ID]}
	}
	return out
}
