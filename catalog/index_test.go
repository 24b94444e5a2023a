package catalog

import "testing"

func testCatalog() *Catalog {
	mk := func(key, locale, stem string) Entry {
		return Entry{Key: key, Locale: locale, RelPath: key, Stem: stem, Extension: "png", Size: 100}
	}
	return &Catalog{
		Version: Version,
		Mode:    ModeFolder,
		Entries: []Entry{
			mk("es/hero.png", "es", "hero"),
			mk("es/footer.png", "es", "footer"),
			mk("fr/hero.png", "fr", "hero"),
			mk("zh-Hans/hero.png", "zh-Hans", "hero"),
			mk("pt-BR/hero.png", "pt-BR", "hero"),
			{Key: "es/huge.png", Locale: "es", RelPath: "es/huge.png", Stem: "huge",
				Extension: "png", Size: MaxAssetSize + 1},
		},
	}
}

func TestCandidatesExact(t *testing.T) {
	idx := BuildIndex(testCatalog())
	got := idx.Candidates("es")
	if len(got) != 2 {
		t.Fatalf("es candidates = %d, want 2 (oversized excluded at index build)", len(got))
	}
	if got[0].Stem != "hero" || got[1].Stem != "footer" {
		t.Fatalf("catalog order not preserved: %v", got)
	}
}

func TestCandidatesCaseInsensitive(t *testing.T) {
	idx := BuildIndex(testCatalog())
	got := idx.Candidates("ES")
	if len(got) != 2 {
		t.Fatalf("ES candidates = %d, want 2 via case-insensitive match", len(got))
	}
}

func TestCandidatesBaseFallback(t *testing.T) {
	idx := BuildIndex(testCatalog())

	// es-MX has no bucket; the es bucket serves via base fallback.
	got := idx.Candidates("es-MX")
	if len(got) != 2 {
		t.Fatalf("es-MX candidates = %d, want 2 via base fallback", len(got))
	}

	// zh-Hant falls back to the union of zh-* buckets.
	got = idx.Candidates("zh-Hant")
	if len(got) != 1 || got[0].Locale != "zh-Hans" {
		t.Fatalf("zh-Hant candidates = %v, want the zh-Hans entry", got)
	}
}

func TestCandidatesNoMatch(t *testing.T) {
	idx := BuildIndex(testCatalog())
	if got := idx.Candidates("ja"); len(got) != 0 {
		t.Fatalf("ja candidates = %v, want none", got)
	}
}
