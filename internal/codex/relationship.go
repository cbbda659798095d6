package codex

// SuggestedRelationTypes are common values for Relationship.Type. The field
// itself is free-form; these only seed UI suggestions and CLI completion.
var SuggestedRelationTypes = []string{
	"ally",
	"enemy",
	"rival",
	"family",
	"friend",
	"mentor",
	"romantic",
	"colleague",
}

// Relationship links two characters. Storage is directional (A to B) but
// queries expose it bidirectionally.
type Relationship struct {
	ID           int64  `json:"id,omitempty"`
	CharacterAID int64  `json:"character_a_id"`
	CharacterBID int64  `json:"character_b_id"`
	Type         string `json:"relation_type"`
	Notes        string `json:"notes,omitempty"`
}

// RelatedCharacter is a relationship viewed from one character's side: the
// other endpoint is presented as the related entity regardless of which
// column it was stored in.
type RelatedCharacter struct {
	RelationshipID int64     `json:"relationship_id"`
	Type           string    `json:"relation_type"`
	Notes          string    `json:"notes,omitempty"`
	Other          Character `json:"character"`
}
