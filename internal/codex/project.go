package codex

import "time"

// Palette is the fixed set of colors available for projects and tags.
var Palette = []string{
	"#6366F1", // indigo
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#EF4444", // red
	"#F59E0B", // amber
	"#10B981", // emerald
	"#06B6D4", // cyan
	"#64748B", // slate
}

// Default colors drawn from the palette.
const (
	DefaultProjectColor = "#6366F1"
	DefaultTagColor     = "#10B981"
)

// Project groups characters. Characters relate to projects many-to-many.
type Project struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// ValidPaletteColor reports whether c is a palette color.
func ValidPaletteColor(c string) bool {
	for _, v := range Palette {
		if c == v {
			return true
		}
	}
	return false
}
