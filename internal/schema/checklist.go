package schema

import (
	"encoding/json"
	"slices"
	"strconv"
)

// ChecklistField names one of the eight per-order workflow flags.
type ChecklistField string

const (
	RechnungVersendet         ChecklistField = "rechnungVersendet"
	SendungErstellt           ChecklistField = "sendungErstellt"
	VersandprofilHinzugefuegt ChecklistField = "versandprofilHinzugefuegt"
	PicklisteErstellt         ChecklistField = "picklisteErstellt"
	PacklisteErstellt         ChecklistField = "packlisteErstellt"
	PaketlisteGedruckt        ChecklistField = "paketlisteGedruckt"
	Versendet                 ChecklistField = "versendet"
	Fehler                    ChecklistField = "fehler"
)

// ChecklistFields in display order, left to right.
var ChecklistFields = []ChecklistField{
	RechnungVersendet,
	SendungErstellt,
	VersandprofilHinzugefuegt,
	PicklisteErstellt,
	PacklisteErstellt,
	PaketlisteGedruckt,
	Versendet,
	Fehler,
}

var checklistLabels = map[ChecklistField]string{
	RechnungVersendet:         "Rechnung versendet",
	SendungErstellt:           "Sendung erstellt",
	VersandprofilHinzugefuegt: "Versandprofil hinzugefügt",
	PicklisteErstellt:         "Pickliste erstellt",
	PacklisteErstellt:         "Packliste erstellt",
	PaketlisteGedruckt:        "Paketlabel erstellt",
	Versendet:                 "Versendet",
	Fehler:                    "Fehler",
}

// Valid reports whether f is a known flag.
func (f ChecklistField) Valid() bool { return slices.Contains(ChecklistFields, f) }

// Label is the column header shown for the flag.
func (f ChecklistField) Label() string { return checklistLabels[f] }

// Checklist holds the workflow flags for one order number.
type Checklist struct {
	Nr                        int  `json:"nr"`
	RechnungVersendet         bool `json:"rechnungVersendet"`
	SendungErstellt           bool `json:"sendungErstellt"`
	VersandprofilHinzugefuegt bool `json:"versandprofilHinzugefuegt"`
	PicklisteErstellt         bool `json:"picklisteErstellt"`
	PacklisteErstellt         bool `json:"packlisteErstellt"`
	PaketlisteGedruckt        bool `json:"paketlisteGedruckt"`
	Versendet                 bool `json:"versendet"`
	Fehler                    bool `json:"fehler"`
}

func (c *Checklist) flag(f ChecklistField) *bool {
	switch f {
	case RechnungVersendet:
		return &c.RechnungVersendet
	case SendungErstellt:
		return &c.SendungErstellt
	case VersandprofilHinzugefuegt:
		return &c.VersandprofilHinzugefuegt
	case PicklisteErstellt:
		return &c.PicklisteErstellt
	case PacklisteErstellt:
		return &c.PacklisteErstellt
	case PaketlisteGedruckt:
		return &c.PaketlisteGedruckt
	case Versendet:
		return &c.Versendet
	case Fehler:
		return &c.Fehler
	}
	return nil
}

// Get returns the value of flag f. Unknown flags read as false.
func (c Checklist) Get(f ChecklistField) bool {
	if p := c.flag(f); p != nil {
		return *p
	}
	return false
}

// With returns a copy of c with flag f set to v.
func (c Checklist) With(f ChecklistField, v bool) Checklist {
	if p := c.flag(f); p != nil {
		*p = v
	}
	return c
}

// ChecklistMap maps order numbers to their checklist. A ChecklistMap is
// immutable once built: With and WithFlag return a new map and leave the
// receiver untouched, so a published map can be read without locking.
type ChecklistMap struct {
	entries map[int]Checklist
}

// NewChecklistMap builds a map from entries. Later entries win on duplicate numbers.
func NewChecklistMap(entries ...Checklist) ChecklistMap {
	m := make(map[int]Checklist, len(entries))
	for _, c := range entries {
		m[c.Nr] = c
	}
	return ChecklistMap{entries: m}
}

// Len returns the number of entries.
func (m ChecklistMap) Len() int { return len(m.entries) }

// Get returns the checklist stored for nr.
func (m ChecklistMap) Get(nr int) (Checklist, bool) {
	c, ok := m.entries[nr]
	return c, ok
}

// For returns the checklist of a row. Composite identities resolve to the
// checklist of their leading order number.
func (m ChecklistMap) For(nr Nr) (Checklist, bool) {
	n, ok := nr.LeadingInt()
	if !ok {
		return Checklist{}, false
	}
	return m.Get(n)
}

// Flag reads one flag of a row, false when the row has no checklist.
func (m ChecklistMap) Flag(nr Nr, f ChecklistField) bool {
	c, _ := m.For(nr)
	return c.Get(f)
}

// With returns a copy of m with c stored under c.Nr.
func (m ChecklistMap) With(c Checklist) ChecklistMap {
	next := m.clone(1)
	next.entries[c.Nr] = c
	return next
}

// WithFlag returns a copy of m with flag f of nr set to v. A missing entry
// starts from all flags false.
func (m ChecklistMap) WithFlag(nr int, f ChecklistField, v bool) ChecklistMap {
	return m.WithFlags([]int{nr}, f, v)
}

// WithFlags is WithFlag for several numbers at once, copying the map once.
func (m ChecklistMap) WithFlags(nrs []int, f ChecklistField, v bool) ChecklistMap {
	next := m.clone(len(nrs))
	for _, nr := range nrs {
		existing, ok := next.entries[nr]
		if !ok {
			existing = Checklist{Nr: nr}
		}
		next.entries[nr] = existing.With(f, v)
	}
	return next
}

// Keys returns the order numbers in ascending order.
func (m ChecklistMap) Keys() []int {
	keys := make([]int, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (m ChecklistMap) clone(extra int) ChecklistMap {
	next := make(map[int]Checklist, len(m.entries)+extra)
	for k, v := range m.entries {
		next[k] = v
	}
	return ChecklistMap{entries: next}
}

// MarshalJSON writes the map as an object keyed by order number.
func (m ChecklistMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]Checklist, len(m.entries))
	for k, v := range m.entries {
		out[strconv.Itoa(k)] = v
	}
	return json.Marshal(out)
}
