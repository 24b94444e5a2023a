package langmeta

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
	}{
		{"fr", "Français"},
		{"pt-BR", "Português (Brasil)"},
		{"pt_BR", "Português (Brasil)"},
		{"pt_br", "Português (Brasil)"},
		{"fr-XX", "Français"},   // base fallback
		{"zh-Hant", "繁體中文"},     // script subtag kept as-is
		{"tlh", "tlh"},          // unknown code comes back verbatim
	}

	for _, tt := range tests {
		if got := Resolve(tt.in); got.Name != tt.wantName {
			t.Fatalf("Resolve(%q).Name = %q, want %q", tt.in, got.Name, tt.wantName)
		}
	}
}

func TestResolveUnknownHasNoFlag(t *testing.T) {
	if got := Resolve("tlh"); got.Flag != "" {
		t.Fatalf("unknown locale flag = %q, want empty", got.Flag)
	}
}
