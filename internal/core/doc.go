// Package core provides the dashboard service for easybill order and
// shipment exports.
//
// The package holds the domain logic independent of any UI or transport
// layer. It is used by the web server, the easybill CLI and tests without
// modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Ingestion: Delimited exports are decoded into [schema.Order] rows and
//     a [schema.ChecklistMap] of workflow flags.
//   - Table Definitions: Registered via the registry, each table selects its
//     rows from the dataset and declares columns and presets.
//   - Service: The main entry point for all operations (query, edit, bulk
//     actions, reload).
//   - Audit: Every mutation is recorded in an [AuditSink].
//
// # Table Registry
//
// Tables are registered at init time using [Register]. The definitions live
// in the tables subpackage, which must be imported for its side effects:
//
//	core.Register(core.TableDefinition{
//	    Info:    core.TableInfo{Key: "orders", Group: "Versand", Label: "Bestellungen"},
//	    Rows:    func(ds core.Dataset) []schema.Order { return ds.Orders },
//	    Columns: orderColumns,
//	})
//
// # Ingestion
//
// The three exports are read through a [Fixtures] source, either the
// embedded copies or a directory on disk:
//
//  1. The delimiter is detected from the header line
//  2. Headers are matched to fields, tolerating case, spacing and umlauts
//  3. Each record is converted; bad values fall back to defaults with a warning
//  4. Checklist rows are keyed by the leading integer of their Nr
//
// [Service.Watch] reloads the service when a file in the fixture directory
// changes.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - TBL001-TBL007: Table errors (unknown table, column or preset)
//   - ROW001-ROW005: Row errors (missing, filtered out, not editable)
//   - ACT001-ACT002: Bulk action errors
//   - DATA001-DATA005: Fixture and request errors
//
// # Audit Logging
//
// Mutations are recorded with severity levels:
//
//   - Low: Row reordering
//   - Medium: Cell edits and checklist toggles
//   - High: Invoice sending, shipment creation, row deletions
//   - Critical: Reloads
//
// With a database configured, old audit entries are purged according to the
// configured retention by [StartAuditRetention].
package core
