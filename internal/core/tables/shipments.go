package tables

import (
	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/datatable"
	"github.com/JonMunkholm/easybill/internal/schema"
)

func init() {
	registerShipments()
}

func registerShipments() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:    "shipments",
			Group:  Group,
			Label:  "Sendungen",
			Source: core.ShipmentsFile,
		},
		Rows: func(ds core.Dataset) []schema.Order {
			rows := make([]schema.Order, 0, len(ds.Shipments))
			for _, o := range ds.Shipments {
				if o.IsShipment() {
					rows = append(rows, o)
				}
			}
			return rows
		},
		Columns:     shipmentColumns,
		Presets:     shipmentPresets,
		DefaultSort: datatable.SortState{ColumnID: "nr", Desc: true},
	})
}

func shipmentColumns(env core.TableEnv) []column {
	cols := []column{
		nrColumn(),
		textColumn("bestellnummer", "Sendungsnummer", func(o schema.Order) string { return o.Bestellnummer }),
		textColumn("shop", "Shop", func(o schema.Order) string { return o.Shop }),
		textColumn("kundeAdresse", "Kunde / Adresse", func(o schema.Order) string { return o.KundeAdresse }),
		textColumn("versandland", "Versandland", func(o schema.Order) string { return o.Versandland }),
		textColumn("versanddienstleister", "Versanddienstleister", func(o schema.Order) string { return o.Versanddienstleister }),
		textColumn("versandverpackung", "Verpackung", func(o schema.Order) string { return o.Versandverpackung }),
		nullableColumn("versandprofil", "Versandprofil", func(o schema.Order) *string { return o.Versandprofil }),
		nullableColumn("versandtGemeldet", "Versandt gemeldet", func(o schema.Order) *string { return o.VersandtGemeldet }),
		textColumn("statusVersanddokumente", "Versanddokumente", func(o schema.Order) string { return string(o.StatusVersanddokumente) }),
		nullableColumn("versanddatum", "Versanddatum", func(o schema.Order) *string { return o.Versanddatum }),
		moneyColumn("versandBrutto", "Versand Brutto", func(o schema.Order) float64 { return o.VersandBrutto }),
		moneyColumn("versandNetto", "Versand Netto", func(o schema.Order) float64 { return o.VersandNetto }),
		dateColumn("importdatum", "Importdatum", func(o schema.Order) string { return o.Importdatum }),
		textColumn("importquelle", "Importquelle", func(o schema.Order) string { return o.Importquelle }),
	}
	return append(cols, checklistColumns(env)...)
}
