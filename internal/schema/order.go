// Package schema defines the dashboard's record types: orders and shipments
// (both Order rows), their identities, status enums, the checklist flags kept
// per order, and the header maps used to ingest them from delimited text.
package schema

import "slices"

// Row types. Orders CSV rows default to TypeBestellung, shipments CSV rows
// to TypeVersandvorgang.
const (
	TypeBestellung     = "Bestellung"
	TypeVersandvorgang = "Versandvorgang"
)

// InvoiceStatus is the state of the invoice dispatch for an order.
type InvoiceStatus string

const (
	InvoiceSent    InvoiceStatus = "versendet"
	InvoicePending InvoiceStatus = "ausstehend"
	InvoiceFailed  InvoiceStatus = "fehler"
	InvoiceUnknown InvoiceStatus = "unbekannt"
)

// InvoiceStatuses lists the values accepted from source data.
var InvoiceStatuses = []string{string(InvoiceSent), string(InvoicePending), string(InvoiceFailed)}

// Valid reports whether s is one of the accepted source values.
func (s InvoiceStatus) Valid() bool {
	return slices.Contains(InvoiceStatuses, string(s))
}

// DocumentStatus is the state of the shipping documents for an order.
type DocumentStatus string

const (
	DocumentsCreated DocumentStatus = "erstellt"
	DocumentsPending DocumentStatus = "ausstehend"
	DocumentsFailed  DocumentStatus = "fehler"
	DocumentsUnknown DocumentStatus = "unbekannt"
)

// DocumentStatuses lists the values accepted from source data.
var DocumentStatuses = []string{string(DocumentsCreated), string(DocumentsPending), string(DocumentsFailed)}

func (s DocumentStatus) Valid() bool {
	return slices.Contains(DocumentStatuses, string(s))
}

// Order is one row of the orders or shipments table.
//
// Nullable dates are nil when the source cell was empty. Versandprofil is
// nil when no profile is assigned, which the dashboard shows as "-".
type Order struct {
	Nr                     Nr             `json:"nr"`
	Shop                   string         `json:"shop,omitempty"`
	Kaufdatum              string         `json:"kaufdatum"`
	Bestellnummer          string         `json:"bestellnummer"`
	Info                   string         `json:"info"`
	KundeAdresse           string         `json:"kundeAdresse"`
	Email                  string         `json:"email"`
	Telefonnummer          string         `json:"telefonnummer"`
	Artikelanzahl          int            `json:"artikelanzahl"`
	GesamtNetto            float64        `json:"gesamtNetto"`
	MwstSatz               int            `json:"mwstSatz"`
	GesamtBrutto           float64        `json:"gesamtBrutto"`
	BezahltAm              *string        `json:"bezahltAm"`
	StatusRechnungsversand InvoiceStatus  `json:"statusRechnungsversand"`
	Versandland            string         `json:"versandland"`
	Versanddienstleister   string         `json:"versanddienstleister"`
	Versandverpackung      string         `json:"versandverpackung"`
	Versandprofil          *string        `json:"versandprofil,omitempty"`
	VersandtGemeldet       *string        `json:"versandtGemeldet"`
	StatusVersanddokumente DocumentStatus `json:"statusVersanddokumente"`
	Versanddatum           *string        `json:"versanddatum"`
	VersandBrutto          float64        `json:"versandBrutto"`
	VersandNetto           float64        `json:"versandNetto"`
	Importdatum            string         `json:"importdatum"`
	Importquelle           string         `json:"importquelle"`
	Type                   string         `json:"type"`
}

// NewOrder returns an order with every field at its default. Parsed rows
// start from this value so that fields missing from the source stay total.
func NewOrder() Order {
	return Order{
		StatusRechnungsversand: InvoicePending,
		StatusVersanddokumente: DocumentsPending,
	}
}

// Identity returns the row identity. It is the accessor handed to the
// table engine.
func (o Order) Identity() Nr { return o.Nr }

// IsShipment reports whether the row belongs to the shipments table.
func (o Order) IsShipment() bool { return o.Type == TypeVersandvorgang }

// Paid reports whether a payment date is recorded.
func (o Order) Paid() bool { return o.BezahltAm != nil && *o.BezahltAm != "" }

// Profile returns the shipping profile or "" when none is assigned.
func (o Order) Profile() string {
	if o.Versandprofil == nil {
		return ""
	}
	return *o.Versandprofil
}

// Str returns a pointer to s. Used for the nullable and optional fields.
func Str(s string) *string { return &s }

// Shipping profiles known to the dashboard.
const (
	ProfileDHLNational      = "DHL National"
	ProfileDPDEuropa        = "DPD Europa"
	ProfileDPDInternational = "DPD International"
	ProfileUPSUSA           = "UPS USA"
)

var profileCarriers = map[string]string{
	ProfileDHLNational: "DHL",
	ProfileDPDEuropa:   "DPD",
	ProfileUPSUSA:      "UPS",
}

// CarrierFor returns the carrier implied by a shipping profile. Profiles
// without a fixed carrier return false and leave the carrier unchanged.
func CarrierFor(profile string) (string, bool) {
	c, ok := profileCarriers[profile]
	return c, ok
}
