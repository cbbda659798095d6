package codex

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FoldName normalizes a name for case-insensitive comparison: trim, NFC
// normalization, then lowercase. Used by import de-duplication and search.
func FoldName(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
