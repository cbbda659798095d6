package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// Record codec: conversion between relational rows (JSON text columns, 0/1
// integer booleans) and in-memory entity shapes. Decoding tolerates three
// input shapes per column: serialized JSON, legacy forms, and absent/NULL.
// Nothing here raises past the decode boundary for malformed stored data;
// unparseable content degrades to an empty list (or, for the legacy power
// string case, a single-item fallback).

// encodeStringList serializes a string list column. nil encodes as "[]".
func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(data), nil
}

// decodeStringList parses a string list column. NULL, empty, or malformed
// content decodes to an empty list.
func decodeStringList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw.String), &list); err != nil {
		return []string{}
	}
	if list == nil {
		return []string{}
	}
	return list
}

// encodePowers serializes the power list column.
func encodePowers(powers []codex.Power) (string, error) {
	if powers == nil {
		powers = []codex.Power{}
	}
	data, err := json.Marshal(powers)
	if err != nil {
		return "", fmt.Errorf("encode powers: %w", err)
	}
	return string(data), nil
}

// decodePowers parses the power list column, upgrading legacy shapes on the
// fly:
//
//   - a JSON array of objects is the current shape
//   - a JSON array of bare strings is the legacy list shape; each string
//     becomes a structured power with a fresh ID, category "utility", level 5
//   - a bare non-JSON string (pre-list storage) becomes a single such power
//
// Malformed individual entries are dropped, never propagated.
func decodePowers(raw sql.NullString) []codex.Power {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return []codex.Power{}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw.String), &elems); err != nil {
		// Not a JSON array. A JSON string scalar or plain legacy text is
		// treated as a single legacy power name.
		name := raw.String
		var s string
		if err := json.Unmarshal([]byte(raw.String), &s); err == nil {
			name = s
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return []codex.Power{}
		}
		return []codex.Power{codex.NewPower(name)}
	}

	powers := make([]codex.Power, 0, len(elems))
	for _, elem := range elems {
		if p, ok := decodePowerEntry(elem); ok {
			powers = append(powers, p)
		}
	}
	return powers
}

// decodePowerEntry decodes one element of the power array. Returns ok=false
// for entries that cannot be salvaged.
func decodePowerEntry(elem json.RawMessage) (codex.Power, bool) {
	// Legacy element: bare string.
	var name string
	if err := json.Unmarshal(elem, &name); err == nil {
		name = strings.TrimSpace(name)
		if name == "" {
			return codex.Power{}, false
		}
		return codex.NewPower(name), true
	}

	var p codex.Power
	if err := json.Unmarshal(elem, &p); err != nil {
		return codex.Power{}, false
	}
	if strings.TrimSpace(p.Name) == "" {
		return codex.Power{}, false
	}
	if p.ID == "" {
		p.ID = codex.NewPowerID()
	}
	if !codex.ValidPowerCategory(p.Category) {
		p.Category = codex.DefaultPowerCategory
	}
	if p.Level < codex.MinPowerLevel || p.Level > codex.MaxPowerLevel {
		p.Level = codex.DefaultPowerLevel
	}
	return p, true
}

// encodeStatBlock serializes the optional stat block column. nil encodes
// as NULL.
func encodeStatBlock(sb *codex.StatBlock) (sql.NullString, error) {
	if sb == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(sb)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode stat block: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// decodeStatBlock parses the stat block column. NULL or malformed content
// decodes to absent.
func decodeStatBlock(raw sql.NullString) *codex.StatBlock {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var sb codex.StatBlock
	if err := json.Unmarshal([]byte(raw.String), &sb); err != nil {
		return nil
	}
	return &sb
}

// boolToInt converts a native boolean to the 0/1 storage form.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nullable converts an optional text field: the empty string stores as NULL.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// text unwraps a nullable text column to its in-memory form ("" for NULL).
func text(raw sql.NullString) string {
	if !raw.Valid {
		return ""
	}
	return raw.String
}
