package catalog

import (
	"strings"
	"testing"
)

func TestParseDropsInvalidEntries(t *testing.T) {
	data := []byte(`{
		"version": 1,
		"mode": "folder",
		"entries": [
			{"key": "es/hero.png", "locale": "es", "relPath": "es/hero.png", "stem": "hero", "extension": "png", "size": 100},
			{"key": "", "locale": "es", "relPath": "x", "stem": "x", "extension": "png", "size": 1},
			{"key": "es/no-locale.png", "locale": "", "relPath": "x", "stem": "x", "extension": "png", "size": 1},
			{"key": "es/bad-ext.tiff", "locale": "es", "relPath": "es/bad-ext.tiff", "stem": "bad-ext", "extension": "tiff", "size": 1},
			{"key": "es/negative.png", "locale": "es", "relPath": "es/negative.png", "stem": "negative", "extension": "png", "size": -5},
			{"key": "es/hero.png", "locale": "es", "relPath": "es/hero.png", "stem": "hero-dup", "extension": "png", "size": 100}
		]
	}`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.Entries) != 1 {
		t.Fatalf("entries = %d, want 1 (invalid and duplicate dropped)", len(c.Entries))
	}
	if c.Entries[0].Stem != "hero" {
		t.Fatalf("surviving stem = %q, want hero (first duplicate wins)", c.Entries[0].Stem)
	}
}

func TestParseRejectsWrongVersionAndMode(t *testing.T) {
	if _, err := Parse([]byte(`{"version": 2, "mode": "folder", "entries": []}`)); err == nil {
		t.Fatal("expected error for version 2")
	}
	if _, err := Parse([]byte(`{"version": 1, "mode": "zip", "entries": []}`)); err == nil {
		t.Fatal("expected error for mode zip")
	}
	if _, err := Parse([]byte(`{invalid`)); err == nil || !strings.Contains(err.Error(), "parsing catalog") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestEligibleSizeCeiling(t *testing.T) {
	e := Entry{Key: "es/big.png", Locale: "es", RelPath: "es/big.png", Stem: "big", Extension: "png"}

	e.Size = MaxAssetSize
	if !e.Eligible() {
		t.Fatal("entry at the ceiling should be eligible")
	}
	e.Size = MaxAssetSize + 1
	if e.Eligible() {
		t.Fatal("entry over the ceiling should be excluded")
	}
}
