// Package backup is the import/export coordinator: full-dataset and
// single-character export, duplicate-aware import with per-kind counts,
// full-backup restore, document validation, and the zip archive container
// with image payloads.
package backup

import (
	"github.com/lorekeep/lorekeep/internal/codex"
)

// Document is the canonical full-backup shape: one JSON object with up to
// six top-level arrays. Absent arrays are omitted rather than emitted as
// null so partial documents stay schema-valid.
type Document struct {
	Characters        []codex.Character    `json:"characters,omitempty"`
	Projects          []codex.Project      `json:"projects,omitempty"`
	Tags              []codex.Tag          `json:"tags,omitempty"`
	Relationships     []codex.Relationship `json:"relationships,omitempty"`
	CharacterProjects []codex.ProjectLink  `json:"character_projects,omitempty"`
	CharacterTags     []codex.TagLink      `json:"character_tags,omitempty"`
}

// Counts reports one entity kind's import outcome.
type Counts struct {
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// Result is the per-kind import report.
type Result struct {
	Projects   Counts `json:"projects"`
	Tags       Counts `json:"tags"`
	Characters Counts `json:"characters"`
}
