package codex

import "testing"

func TestFoldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mira Voss", "mira voss"},
		{"  MIRA VOSS  ", "mira voss"},
		{"", ""},
		{"   ", ""},
		// Decomposed accent normalizes to the composed form before lowering.
		{"Amélie", "amélie"},
	}
	for _, tt := range tests {
		if got := FoldName(tt.in); got != tt.want {
			t.Errorf("FoldName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldName_EqualAfterFold(t *testing.T) {
	if FoldName("Zara") != FoldName("zArA") {
		t.Error("case variants should fold to the same key")
	}
}
