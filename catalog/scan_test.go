package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "es", "home-hero.png"), 10)
	writeFile(t, filepath.Join(dir, "es", "nested", "footer.jpg"), 20)
	writeFile(t, filepath.Join(dir, "fr", "home-hero.PNG"), 30)
	writeFile(t, filepath.Join(dir, "es", "notes.txt"), 5)
	writeFile(t, filepath.Join(dir, "stray.png"), 5)

	res, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	c := res.Catalog
	if c.Version != Version || c.Mode != ModeFolder {
		t.Fatalf("catalog header = %d/%q", c.Version, c.Mode)
	}
	if len(c.Entries) != 3 {
		t.Fatalf("entries = %d, want 3: %v", len(c.Entries), c.Entries)
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("skipped = %v, want the txt and the stray file", res.Skipped)
	}

	byKey := make(map[string]Entry)
	for _, e := range c.Entries {
		byKey[e.Key] = e
	}

	hero, ok := byKey["es/home-hero.png"]
	if !ok {
		t.Fatalf("missing es/home-hero.png in %v", c.Entries)
	}
	if hero.Locale != "es" || hero.Stem != "home-hero" || hero.Extension != "png" || hero.Size != 10 {
		t.Fatalf("hero entry = %+v", hero)
	}

	nested, ok := byKey["es/nested/footer.jpg"]
	if !ok || nested.Locale != "es" || nested.Stem != "footer" {
		t.Fatalf("nested entry = %+v (ok=%v)", nested, ok)
	}

	// Extension comparison is case-insensitive; the stem keeps its case.
	upper, ok := byKey["fr/home-hero.PNG"]
	if !ok || upper.Extension != "png" {
		t.Fatalf("uppercase-extension entry = %+v (ok=%v)", upper, ok)
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
