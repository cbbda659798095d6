package codex

// StatBlock is the optional D&D-style block embedded in a character.
// Presence is gated by Character.DndEnabled. Ability scores nominally range
// 1-30; all fields are independently optional with these defaults.
type StatBlock struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`

	ArmorClass       int    `json:"armor_class"`
	HitPoints        int    `json:"hit_points"`
	MaxHitPoints     int    `json:"max_hit_points"`
	Speed            string `json:"speed,omitempty"`
	ProficiencyBonus int    `json:"proficiency_bonus"`

	Level    int    `json:"level"`
	Class    string `json:"class,omitempty"`
	Subclass string `json:"subclass,omitempty"`
}

// NewStatBlock returns a stat block with the standard defaults.
func NewStatBlock() *StatBlock {
	return &StatBlock{
		Strength:         10,
		Dexterity:        10,
		Constitution:     10,
		Intelligence:     10,
		Wisdom:           10,
		Charisma:         10,
		ArmorClass:       10,
		HitPoints:        10,
		MaxHitPoints:     10,
		Speed:            "30 ft.",
		ProficiencyBonus: 2,
		Level:            1,
	}
}
