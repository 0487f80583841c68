package tables

import (
	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/datatable"
	"github.com/JonMunkholm/easybill/internal/schema"
)

func init() {
	registerOrders()
}

func registerOrders() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:    "orders",
			Group:  Group,
			Label:  "Bestellungen",
			Source: core.OrdersFile,
		},
		Rows: func(ds core.Dataset) []schema.Order {
			rows := make([]schema.Order, 0, len(ds.Orders))
			for _, o := range ds.Orders {
				if !o.IsShipment() {
					rows = append(rows, o)
				}
			}
			return rows
		},
		Columns:     orderColumns,
		Presets:     orderPresets,
		DefaultSort: datatable.SortState{ColumnID: "nr", Desc: true},
	})
}

func orderColumns(env core.TableEnv) []column {
	cols := []column{
		nrColumn(),
		textColumn("shop", "Shop", func(o schema.Order) string { return o.Shop }),
		dateColumn("kaufdatum", "Kaufdatum", func(o schema.Order) string { return o.Kaufdatum }),
		textColumn("bestellnummer", "Bestellnummer", func(o schema.Order) string { return o.Bestellnummer }),
		textColumn("info", "Info", func(o schema.Order) string { return o.Info }),
		textColumn("kundeAdresse", "Kunde / Adresse", func(o schema.Order) string { return o.KundeAdresse }),
		textColumn("email", "E-Mail", func(o schema.Order) string { return o.Email }),
		textColumn("telefonnummer", "Telefon", func(o schema.Order) string { return o.Telefonnummer }),
		intColumn("artikelanzahl", "Artikel", func(o schema.Order) int { return o.Artikelanzahl }),
		moneyColumn("gesamtNetto", "Netto", func(o schema.Order) float64 { return o.GesamtNetto }),
		intColumn("mwstSatz", "MwSt %", func(o schema.Order) int { return o.MwstSatz }),
		moneyColumn("gesamtBrutto", "Brutto", func(o schema.Order) float64 { return o.GesamtBrutto }),
		nullableColumn("bezahltAm", "Bezahlt am", func(o schema.Order) *string { return o.BezahltAm }),
		textColumn("statusRechnungsversand", "Rechnungsversand", func(o schema.Order) string { return string(o.StatusRechnungsversand) }),
		textColumn("versandland", "Versandland", func(o schema.Order) string { return o.Versandland }),
		textColumn("versanddienstleister", "Versanddienstleister", func(o schema.Order) string { return o.Versanddienstleister }),
		textColumn("versandverpackung", "Verpackung", func(o schema.Order) string { return o.Versandverpackung }),
		nullableColumn("versandprofil", "Versandprofil", func(o schema.Order) *string { return o.Versandprofil }),
		textColumn("statusVersanddokumente", "Versanddokumente", func(o schema.Order) string { return string(o.StatusVersanddokumente) }),
		nullableColumn("versanddatum", "Versanddatum", func(o schema.Order) *string { return o.Versanddatum }),
		dateColumn("importdatum", "Importdatum", func(o schema.Order) string { return o.Importdatum }),
		textColumn("importquelle", "Importquelle", func(o schema.Order) string { return o.Importquelle }),
	}
	return append(cols, checklistColumns(env)...)
}
