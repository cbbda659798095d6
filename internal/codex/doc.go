// Package codex defines the entity model for the character knowledge base:
// characters with their powers and optional stat block, projects, tags, and
// relationships between characters.
//
// Types here are the in-memory shapes. How they map onto SQLite rows (JSON
// text columns, 0/1 booleans, legacy power upgrades) is the store package's
// concern; nothing outside the persistence boundary sees the raw encoding.
package codex
