package codex

import "time"

// DefaultCharacterName is applied when a character is created without a name.
// The name invariant holds from creation onward: it is never empty.
const DefaultCharacterName = "New Character"

// Character is the central entity. All fields other than Name are optional;
// an empty string means the field is unset (stored as NULL).
type Character struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`

	// Identity
	Alias      string `json:"alias,omitempty"`
	Age        string `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Pronouns   string `json:"pronouns,omitempty"`
	Species    string `json:"species,omitempty"`
	Role       string `json:"role,omitempty"`
	Occupation string `json:"occupation,omitempty"`

	// Physical description
	Height                 string `json:"height,omitempty"`
	Build                  string `json:"build,omitempty"`
	HairColor              string `json:"hair_color,omitempty"`
	EyeColor               string `json:"eye_color,omitempty"`
	SkinTone               string `json:"skin_tone,omitempty"`
	DistinguishingFeatures string `json:"distinguishing_features,omitempty"`
	AppearanceNotes        string `json:"appearance_notes,omitempty"`

	// Personality
	PersonalitySummary string `json:"personality_summary,omitempty"`
	Strengths          string `json:"strengths,omitempty"`
	Weaknesses         string `json:"weaknesses,omitempty"`
	Fears              string `json:"fears,omitempty"`
	Desires            string `json:"desires,omitempty"`
	Quirks             string `json:"quirks,omitempty"`

	// Background
	Backstory string `json:"backstory,omitempty"`
	Family    string `json:"family,omitempty"`
	Education string `json:"education,omitempty"`
	Secrets   string `json:"secrets,omitempty"`

	// Story role
	StoryRole string `json:"story_role,omitempty"`
	Goals     string `json:"goals,omitempty"`
	ArcNotes  string `json:"arc_notes,omitempty"`
	Notes     string `json:"notes,omitempty"`

	// Traits preserves insertion order.
	Traits []string `json:"personality_traits,omitempty"`
	Powers []Power  `json:"powers,omitempty"`

	DndEnabled bool       `json:"dnd_enabled,omitempty"`
	StatBlock  *StatBlock `json:"stat_block,omitempty"`

	// PortraitRef and ReferenceImages hold opaque references issued by the
	// image library; the core never interprets them.
	PortraitRef     string   `json:"portrait_ref,omitempty"`
	ReferenceImages []string `json:"reference_images,omitempty"`

	IsFavorite bool `json:"is_favorite,omitempty"`
	IsArchived bool `json:"is_archived,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// CharacterDetail is a character with its associations resolved: projects,
// tags, and relationships viewed from this character's side.
type CharacterDetail struct {
	Character
	Projects      []Project          `json:"projects"`
	Tags          []Tag              `json:"tags"`
	Relationships []RelatedCharacter `json:"relationships"`
}
