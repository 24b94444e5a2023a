package catalog

import "strings"

// Index buckets eligible catalog entries by locale for candidate lookup.
// Catalog order is preserved within each bucket.
type Index struct {
	byLocale map[string][]Entry
	// locale order as first seen, for deterministic base-fallback unions
	locales []string
}

// BuildIndex filters the catalog down to eligible entries and buckets them
// by locale code (exact, as declared).
func BuildIndex(c *Catalog) *Index {
	idx := &Index{byLocale: make(map[string][]Entry)}
	for _, e := range c.Entries {
		if !e.Eligible() {
			continue
		}
		if _, ok := idx.byLocale[e.Locale]; !ok {
			idx.locales = append(idx.locales, e.Locale)
		}
		idx.byLocale[e.Locale] = append(idx.byLocale[e.Locale], e)
	}
	return idx
}

// Locales returns the catalog locales in first-seen order.
func (idx *Index) Locales() []string {
	return append([]string(nil), idx.locales...)
}

// Candidates returns the candidate pool for a requested locale:
// exact-key match first, then case-insensitive match, then a language-base
// fallback that unions every catalog locale sharing the requested locale's
// base (the substring before the first hyphen). A request for zh-Hant can
// thus fall back to assets filed under zh or zh-Hans, trading precision
// for coverage when locale tagging is inconsistent.
func (idx *Index) Candidates(locale string) []Entry {
	if entries, ok := idx.byLocale[locale]; ok {
		return entries
	}
	for _, l := range idx.locales {
		if strings.EqualFold(l, locale) {
			return idx.byLocale[l]
		}
	}
	base := baseLang(locale)
	var union []Entry
	for _, l := range idx.locales {
		if strings.EqualFold(baseLang(l), base) {
			union = append(union, idx.byLocale[l]...)
		}
	}
	return union
}

// baseLang returns the locale code's substring before its first hyphen.
func baseLang(locale string) string {
	if i := strings.IndexByte(locale, '-'); i >= 0 {
		return locale[:i]
	}
	return locale
}
