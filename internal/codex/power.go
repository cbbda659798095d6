package codex

import "github.com/google/uuid"

// PowerCategory is one of five fixed labels.
type PowerCategory string

const (
	PowerOffensive      PowerCategory = "offensive"
	PowerDefensive      PowerCategory = "defensive"
	PowerUtility        PowerCategory = "utility"
	PowerPassive        PowerCategory = "passive"
	PowerTransformation PowerCategory = "transformation"
)

// PowerCategories lists the valid categories in display order.
var PowerCategories = []PowerCategory{
	PowerOffensive,
	PowerDefensive,
	PowerUtility,
	PowerPassive,
	PowerTransformation,
}

// Defaults applied when upgrading a legacy bare-string power.
const (
	DefaultPowerCategory = PowerUtility
	DefaultPowerLevel    = 5
)

// Power level bounds.
const (
	MinPowerLevel = 1
	MaxPowerLevel = 10
)

// Power is a sub-entity of Character, stored as an encoded list. The ID is
// locally unique within one character's power list, not database-assigned.
type Power struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    PowerCategory `json:"category"`
	Level       int           `json:"level"`
}

// NewPowerID mints a random identifier for a power. Practical uniqueness
// within a power list is all that's required.
func NewPowerID() string {
	return uuid.NewString()
}

// ValidPowerCategory reports whether c is one of the five fixed labels.
func ValidPowerCategory(c PowerCategory) bool {
	for _, v := range PowerCategories {
		if c == v {
			return true
		}
	}
	return false
}

// NewPower returns a power with defaults filled in: a fresh ID, the utility
// category when none is given, and a clamped level (0 means unset).
func NewPower(name string) Power {
	return Power{
		ID:       NewPowerID(),
		Name:     name,
		Category: DefaultPowerCategory,
		Level:    DefaultPowerLevel,
	}
}
