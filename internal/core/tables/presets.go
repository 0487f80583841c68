package tables

import (
	"slices"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/datatable"
	"github.com/JonMunkholm/easybill/internal/schema"
)

type preset = datatable.Preset[schema.Order]

func latestImport(env core.TableEnv) preset {
	return preset{
		ID:    "zuletzt-importiert",
		Label: "Zuletzt importiert",
		Predicate: func(o schema.Order) bool {
			latest := env.LatestImport()
			return latest != "" && core.NormalizeDate(o.Importdatum) == latest
		},
	}
}

func flagPreset(env core.TableEnv, id, label string, f schema.ChecklistField, want bool) preset {
	return preset{
		ID:        id,
		Label:     label,
		Predicate: func(o schema.Order) bool { return env.Checklist().Flag(o.Nr, f) == want },
	}
}

func profilePreset(id, label string, profiles ...string) preset {
	return preset{
		ID:    id,
		Label: label,
		Predicate: func(o schema.Order) bool { return slices.Contains(profiles, o.Profile()) },
	}
}

func orderPresets(env core.TableEnv) []preset {
	return []preset{
		latestImport(env),
		flagPreset(env, "rechnungen-nicht-versendet", "Rechnungen nicht versendet", schema.RechnungVersendet, false),
		{
			ID:    "bezahlt-nicht-gesendet",
			Label: "Bezahlt, nicht gesendet",
			Predicate: func(o schema.Order) bool {
				return o.Paid() && !env.Checklist().Flag(o.Nr, schema.SendungErstellt)
			},
		},
		flagPreset(env, "fehler", "Fehler", schema.Fehler, true),
		{
			ID:    "ohne-versandprofil",
			Label: "Ohne Versandprofil",
			Predicate: func(o schema.Order) bool {
				p := o.Profile()
				return p == "" || p == "-"
			},
		},
		profilePreset("dhl-national", "DHL National", schema.ProfileDHLNational),
		profilePreset("dpd-europa", "DPD Europa", schema.ProfileDPDEuropa, schema.ProfileDPDInternational),
		profilePreset("ups-usa", "UPS USA", schema.ProfileUPSUSA),
	}
}

func shipmentPresets(env core.TableEnv) []preset {
	return []preset{
		latestImport(env),
		flagPreset(env, "nicht-versendet", "Nicht versendet", schema.Versendet, false),
		flagPreset(env, "keine-pickliste", "Keine Pickliste", schema.PicklisteErstellt, false),
		flagPreset(env, "keine-packliste", "Keine Packliste", schema.PacklisteErstellt, false),
		flagPreset(env, "fehler", "Fehler", schema.Fehler, true),
	}
}
