package datatable

import (
	"slices"
	"testing"
)

func personPresets() *PresetSet[person] {
	return NewPresetSet(
		Preset[person]{ID: "scored", Label: "Mit Punkten", Predicate: func(p person) bool { return p.Score != nil }},
		Preset[person]{ID: "young", Label: "Unter 30", Predicate: func(p person) bool { return p.Age < 30 }},
		Preset[person]{ID: "tagged", Label: "Markiert", Predicate: func(p person) bool { return len(p.Tags) > 0 }},
	)
}

func TestPresetSet_Counts(t *testing.T) {
	s := personPresets()
	_ = s.Set("young", true)

	counts := s.Counts(people())
	want := []PresetCount{
		{ID: "scored", Label: "Mit Punkten", Count: 3},
		{ID: "young", Label: "Unter 30", Count: 2, Active: true},
		{ID: "tagged", Label: "Markiert", Count: 1},
	}
	if !slices.Equal(counts, want) {
		t.Errorf("Counts() = %+v, want %+v", counts, want)
	}
}

func TestPresetSet_Apply(t *testing.T) {
	s := personPresets()

	if got := ids(s.Apply(people())); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("no active presets = %v", got)
	}

	if err := s.Toggle("scored"); err != nil {
		t.Fatal(err)
	}
	if err := s.Toggle("young"); err != nil {
		t.Fatal(err)
	}
	if got := ids(s.Apply(people())); !slices.Equal(got, []int{4}) {
		t.Errorf("scored AND young = %v, want [4]", got)
	}
	if got := s.Active(); !slices.Equal(got, []string{"scored", "young"}) {
		t.Errorf("Active() = %v", got)
	}

	_ = s.Toggle("scored")
	if got := s.Active(); !slices.Equal(got, []string{"young"}) {
		t.Errorf("Active() after toggle off = %v", got)
	}

	s.Reset()
	if len(s.Active()) != 0 {
		t.Error("Reset() left presets active")
	}

	if err := s.Toggle("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPresetSet_AsViewPredicate(t *testing.T) {
	v := newPeopleView(t, Config[person, int]{})
	s := personPresets()
	_ = s.Set("young", true)

	v.SetPredicate("presets", s.Match)
	if got := ids(v.Rows()); !slices.Equal(got, []int{2, 4}) {
		t.Errorf("rows = %v, want [2 4]", got)
	}

	_ = s.Set("young", false)
	v.Refresh()
	if len(v.Rows()) != 4 {
		t.Errorf("rows after disabling = %d, want 4", len(v.Rows()))
	}
}
