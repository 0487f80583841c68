package schema

// OrderFieldSpecs maps the German export headers of the orders and
// shipments CSV files onto Order fields.
var OrderFieldSpecs = HeaderMap[Order]{
	{Header: "Nr", Field: "nr", Kind: KindIdentity, Assign: func(o *Order, v Value) { o.Nr = v.Nr }},
	{Header: "Shop", Field: "shop", Kind: KindText, Assign: func(o *Order, v Value) { o.Shop = v.Text }},
	{Header: "Kaufdatum", Field: "kaufdatum", Kind: KindText, Assign: func(o *Order, v Value) { o.Kaufdatum = v.Text }},
	{Header: "Bestellnummer", Field: "bestellnummer", Kind: KindText, Assign: func(o *Order, v Value) { o.Bestellnummer = v.Text }},
	{Header: "Info", Field: "info", Kind: KindText, Assign: func(o *Order, v Value) { o.Info = v.Text }},
	{Header: "Kunde Adresse", Field: "kundeAdresse", Kind: KindText, Assign: func(o *Order, v Value) { o.KundeAdresse = v.Text }},
	{Header: "Email", Field: "email", Kind: KindText, Assign: func(o *Order, v Value) { o.Email = v.Text }},
	{Header: "Telefonnummer", Field: "telefonnummer", Kind: KindText, Assign: func(o *Order, v Value) { o.Telefonnummer = v.Text }},
	{Header: "Artikelanzahl", Field: "artikelanzahl", Kind: KindInt, Assign: func(o *Order, v Value) { o.Artikelanzahl = v.Int }},
	{Header: "Gesamt Netto", Field: "gesamtNetto", Kind: KindFloat, Assign: func(o *Order, v Value) { o.GesamtNetto = v.Float }},
	{Header: "MwSt Satz", Field: "mwstSatz", Kind: KindInt, Assign: func(o *Order, v Value) { o.MwstSatz = v.Int }},
	{Header: "Gesamt Brutto", Field: "gesamtBrutto", Kind: KindFloat, Assign: func(o *Order, v Value) { o.GesamtBrutto = v.Float }},
	{Header: "Bezahlt Am", Field: "bezahltAm", Kind: KindNullableDate, Assign: func(o *Order, v Value) { o.BezahltAm = v.Ptr() }},
	{
		Header: "Status Rechnungsversand", Field: "statusRechnungsversand", Kind: KindEnum,
		EnumValues: InvoiceStatuses, Unknown: string(InvoiceUnknown),
		Assign: func(o *Order, v Value) { o.StatusRechnungsversand = InvoiceStatus(v.Text) },
	},
	{Header: "Versandland", Field: "versandland", Kind: KindText, Assign: func(o *Order, v Value) { o.Versandland = v.Text }},
	{Header: "Versanddienstleister", Field: "versanddienstleister", Kind: KindText, Assign: func(o *Order, v Value) { o.Versanddienstleister = v.Text }},
	{Header: "Versandverpackung", Field: "versandverpackung", Kind: KindText, Assign: func(o *Order, v Value) { o.Versandverpackung = v.Text }},
	{Header: "Versandprofil", Field: "versandprofil", Kind: KindOptional, Assign: func(o *Order, v Value) { o.Versandprofil = v.Ptr() }},
	{Header: "Versandt Gemeldet", Field: "versandtGemeldet", Kind: KindNullableDate, Assign: func(o *Order, v Value) { o.VersandtGemeldet = v.Ptr() }},
	{
		Header: "Status Versanddokumente", Field: "statusVersanddokumente", Kind: KindEnum,
		EnumValues: DocumentStatuses, Unknown: string(DocumentsUnknown),
		Assign: func(o *Order, v Value) { o.StatusVersanddokumente = DocumentStatus(v.Text) },
	},
	{Header: "Versanddatum", Field: "versanddatum", Kind: KindNullableDate, Assign: func(o *Order, v Value) { o.Versanddatum = v.Ptr() }},
	{Header: "Versand Brutto", Field: "versandBrutto", Kind: KindFloat, Assign: func(o *Order, v Value) { o.VersandBrutto = v.Float }},
	{Header: "Versand Netto", Field: "versandNetto", Kind: KindFloat, Assign: func(o *Order, v Value) { o.VersandNetto = v.Float }},
	{Header: "Importdatum", Field: "importdatum", Kind: KindText, Assign: func(o *Order, v Value) { o.Importdatum = v.Text }},
	{Header: "Importquelle", Field: "importquelle", Kind: KindText, Assign: func(o *Order, v Value) { o.Importquelle = v.Text }},
	{Header: "Type", Field: "type", Kind: KindText, Assign: func(o *Order, v Value) { o.Type = v.Text }},
}
