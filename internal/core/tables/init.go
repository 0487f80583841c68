// Package tables registers all table definitions with the core registry.
// Import this package to ensure all tables are registered.
package tables

// This file exists to provide a single import point.
// Each table file uses init() to register its table.

// Group is the navigation group shared by both dashboard tables.
const Group = "Versand"
