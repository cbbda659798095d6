package store

import (
	"strings"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// CharacterPatch is a sparse field set for partial updates. A nil pointer
// means the field is untouched. For optional text fields, an explicitly
// supplied empty string is normalized to NULL; Name is the exception - an
// empty name is ignored so the non-empty invariant holds.
//
// StatBlock set to a non-nil pointer writes the block; ClearStatBlock
// removes it (a nil StatBlock alone means untouched).
type CharacterPatch struct {
	Name *string

	Alias      *string
	Age        *string
	Gender     *string
	Pronouns   *string
	Species    *string
	Role       *string
	Occupation *string

	Height                 *string
	Build                  *string
	HairColor              *string
	EyeColor               *string
	SkinTone               *string
	DistinguishingFeatures *string
	AppearanceNotes        *string

	PersonalitySummary *string
	Strengths          *string
	Weaknesses         *string
	Fears              *string
	Desires            *string
	Quirks             *string

	Backstory *string
	Family    *string
	Education *string
	Secrets   *string

	StoryRole *string
	Goals     *string
	ArcNotes  *string
	Notes     *string

	Traits *[]string
	Powers *[]codex.Power

	DndEnabled     *bool
	StatBlock      *codex.StatBlock
	ClearStatBlock bool

	PortraitRef     *string
	ReferenceImages *[]string

	IsFavorite *bool
	IsArchived *bool
}

// optionalText pairs a column name with its pointer for assignment building.
func (p *CharacterPatch) optionalText() []struct {
	column string
	value  *string
} {
	return []struct {
		column string
		value  *string
	}{
		{"alias", p.Alias},
		{"age", p.Age},
		{"gender", p.Gender},
		{"pronouns", p.Pronouns},
		{"species", p.Species},
		{"role", p.Role},
		{"occupation", p.Occupation},
		{"height", p.Height},
		{"build", p.Build},
		{"hair_color", p.HairColor},
		{"eye_color", p.EyeColor},
		{"skin_tone", p.SkinTone},
		{"distinguishing_features", p.DistinguishingFeatures},
		{"appearance_notes", p.AppearanceNotes},
		{"personality_summary", p.PersonalitySummary},
		{"strengths", p.Strengths},
		{"weaknesses", p.Weaknesses},
		{"fears", p.Fears},
		{"desires", p.Desires},
		{"quirks", p.Quirks},
		{"backstory", p.Backstory},
		{"family", p.Family},
		{"education", p.Education},
		{"secrets", p.Secrets},
		{"story_role", p.StoryRole},
		{"goals", p.Goals},
		{"arc_notes", p.ArcNotes},
		{"notes", p.Notes},
		{"portrait_path", p.PortraitRef},
	}
}

// assignments builds the SET clauses and arguments for the supplied fields.
func (p *CharacterPatch) assignments() ([]string, []any, error) {
	var sets []string
	var args []any

	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}

	for _, f := range p.optionalText() {
		if f.value == nil {
			continue
		}
		sets = append(sets, f.column+" = ?")
		args = append(args, nullable(*f.value))
	}

	if p.Traits != nil {
		traitsJSON, err := encodeStringList(*p.Traits)
		if err != nil {
			return nil, nil, err
		}
		sets = append(sets, "personality_traits = ?")
		args = append(args, traitsJSON)
	}
	if p.Powers != nil {
		powersJSON, err := encodePowers(*p.Powers)
		if err != nil {
			return nil, nil, err
		}
		sets = append(sets, "powers = ?")
		args = append(args, powersJSON)
	}
	if p.ReferenceImages != nil {
		imagesJSON, err := encodeStringList(*p.ReferenceImages)
		if err != nil {
			return nil, nil, err
		}
		sets = append(sets, "reference_images = ?")
		args = append(args, imagesJSON)
	}

	if p.StatBlock != nil || p.ClearStatBlock {
		statJSON, err := encodeStatBlock(p.StatBlock)
		if err != nil {
			return nil, nil, err
		}
		sets = append(sets, "stat_block = ?")
		args = append(args, statJSON)
	}

	if p.DndEnabled != nil {
		sets = append(sets, "dnd_enabled = ?")
		args = append(args, boolToInt(*p.DndEnabled))
	}
	if p.IsFavorite != nil {
		sets = append(sets, "is_favorite = ?")
		args = append(args, boolToInt(*p.IsFavorite))
	}
	if p.IsArchived != nil {
		sets = append(sets, "is_archived = ?")
		args = append(args, boolToInt(*p.IsArchived))
	}

	return sets, args, nil
}

// Merge overlays src onto p: fields supplied in src win, fields absent in
// src keep p's value. Used by the autosave debounce to coalesce edits.
func (p *CharacterPatch) Merge(src CharacterPatch) {
	if src.Name != nil {
		p.Name = src.Name
	}
	for _, f := range src.optionalText() {
		if f.value != nil {
			*targetField(p, f.column) = f.value
		}
	}
	if src.Traits != nil {
		p.Traits = src.Traits
	}
	if src.Powers != nil {
		p.Powers = src.Powers
	}
	if src.ReferenceImages != nil {
		p.ReferenceImages = src.ReferenceImages
	}
	if src.StatBlock != nil {
		p.StatBlock = src.StatBlock
		p.ClearStatBlock = false
	}
	if src.ClearStatBlock {
		p.StatBlock = nil
		p.ClearStatBlock = true
	}
	if src.DndEnabled != nil {
		p.DndEnabled = src.DndEnabled
	}
	if src.IsFavorite != nil {
		p.IsFavorite = src.IsFavorite
	}
	if src.IsArchived != nil {
		p.IsArchived = src.IsArchived
	}
}

// Empty reports whether the patch carries no fields.
func (p *CharacterPatch) Empty() bool {
	sets, _, err := p.assignments()
	return err == nil && len(sets) == 0
}

// targetField maps a column name back to the patch's pointer slot.
func targetField(p *CharacterPatch, column string) **string {
	switch column {
	case "alias":
		return &p.Alias
	case "age":
		return &p.Age
	case "gender":
		return &p.Gender
	case "pronouns":
		return &p.Pronouns
	case "species":
		return &p.Species
	case "role":
		return &p.Role
	case "occupation":
		return &p.Occupation
	case "height":
		return &p.Height
	case "build":
		return &p.Build
	case "hair_color":
		return &p.HairColor
	case "eye_color":
		return &p.EyeColor
	case "skin_tone":
		return &p.SkinTone
	case "distinguishing_features":
		return &p.DistinguishingFeatures
	case "appearance_notes":
		return &p.AppearanceNotes
	case "personality_summary":
		return &p.PersonalitySummary
	case "strengths":
		return &p.Strengths
	case "weaknesses":
		return &p.Weaknesses
	case "fears":
		return &p.Fears
	case "desires":
		return &p.Desires
	case "quirks":
		return &p.Quirks
	case "backstory":
		return &p.Backstory
	case "family":
		return &p.Family
	case "education":
		return &p.Education
	case "secrets":
		return &p.Secrets
	case "story_role":
		return &p.StoryRole
	case "goals":
		return &p.Goals
	case "arc_notes":
		return &p.ArcNotes
	case "notes":
		return &p.Notes
	case "portrait_path":
		return &p.PortraitRef
	}
	panic("unknown patch column: " + column)
}
