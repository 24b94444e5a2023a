// Package transmap implements the locale translation map: locale code →
// node id → translated string, as returned by an external translation
// engine.
//
// Two input forms are supported:
//
//   - JSON: { "fr": { "1:2": "Bonjour" }, "de": { "1:2": "Hallo" } }
//   - A directory of gettext PO files, one <locale>.po per locale, where
//     msgctxt carries the node id and msgstr the translation.
//
// Locale codes are free-form opaque strings; they are not validated
// against any fixed list. A node id missing from a locale's map simply
// leaves that node untranslated.
package transmap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Map is a locale translation map.
type Map map[string]map[string]string

// Load reads a JSON translation map from a file.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading translations: %w", err)
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing translations %s: %w", path, err)
	}
	return m, nil
}

// LoadPODir reads every <locale>.po file in a directory into a Map.
// Entries without a msgctxt (no node id) or with an empty translation are
// skipped.
func LoadPODir(dir string) (Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading translations dir: %w", err)
	}

	m := make(Map)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".po") {
			continue
		}
		locale := strings.TrimSuffix(name, ".po")
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		po := gotext.NewPo()
		po.Parse(data)

		byNode := make(map[string]string)
		for nodeID, byMsgID := range po.GetDomain().GetCtxTranslations() {
			if nodeID == "" {
				continue
			}
			for _, tr := range byMsgID {
				if s := tr.Get(); s != "" {
					byNode[nodeID] = s
					break
				}
			}
		}
		if len(byNode) > 0 {
			m[locale] = byNode
		}
	}
	return m, nil
}

// Locales returns the map's locale codes, sorted.
func (m Map) Locales() []string {
	locales := make([]string, 0, len(m))
	for l := range m {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}
