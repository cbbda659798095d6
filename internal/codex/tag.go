package codex

// Tag labels characters. Names are unique at the storage layer
// (case-sensitive); import additionally de-duplicates case-insensitively.
// Tags carry no modified timestamp.
type Tag struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ProjectLink is a character-project association row.
type ProjectLink struct {
	CharacterID int64 `json:"character_id"`
	ProjectID   int64 `json:"project_id"`
}

// TagLink is a character-tag association row.
type TagLink struct {
	CharacterID int64 `json:"character_id"`
	TagID       int64 `json:"tag_id"`
}
