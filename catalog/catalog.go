// Package catalog implements the locale asset catalog: the declared set of
// locale-specific image files available for matching against design nodes.
//
// The catalog JSON format is:
//
//	{
//	    "version": 1,
//	    "mode": "folder",
//	    "entries": [
//	        { "key": "es/home-hero.png", "locale": "es",
//	          "relPath": "es/home-hero.png", "stem": "home-hero",
//	          "extension": "png", "size": 14032 }
//	    ]
//	}
//
// Entries failing field validation are dropped silently during parse;
// duplicate keys after the first are dropped.
package catalog

import (
	"encoding/json"
	"fmt"
)

// Version is the catalog format version this package reads and writes.
const Version = 1

// ModeFolder is the only supported catalog mode: entries mirror a
// locale-per-subdirectory assets folder.
const ModeFolder = "folder"

// MaxAssetSize is the per-entry size ceiling. Larger files are excluded
// from matching at index-build time.
const MaxAssetSize = 8 << 20

// allowedExtensions is the extension allow-set for matchable assets.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
	"gif":  true,
}

// AllowedExtension reports whether ext (without dot) may participate in
// matching.
func AllowedExtension(ext string) bool {
	return allowedExtensions[ext]
}

// Entry is one declared locale asset.
type Entry struct {
	Key       string `json:"key"`
	Locale    string `json:"locale"`
	RelPath   string `json:"relPath"`
	Stem      string `json:"stem"`
	Extension string `json:"extension"`
	Size      int64  `json:"size"`
}

// valid reports whether the entry passes field validation.
func (e Entry) valid() bool {
	if e.Key == "" || e.Locale == "" || e.RelPath == "" || e.Stem == "" {
		return false
	}
	if !AllowedExtension(e.Extension) {
		return false
	}
	return e.Size >= 0
}

// Eligible reports whether the entry may participate in matching.
func (e Entry) Eligible() bool {
	return e.valid() && e.Size <= MaxAssetSize
}

// Catalog is a parsed asset catalog.
type Catalog struct {
	Version int     `json:"version"`
	Mode    string  `json:"mode"`
	Entries []Entry `json:"entries"`
}

// Parse decodes catalog JSON. Invalid entries and duplicate keys are
// dropped without error; a wrong version or mode is an error.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if c.Version != Version {
		return nil, fmt.Errorf("unsupported catalog version %d (want %d)", c.Version, Version)
	}
	if c.Mode != ModeFolder {
		return nil, fmt.Errorf("unsupported catalog mode %q (want %q)", c.Mode, ModeFolder)
	}

	seen := make(map[string]bool)
	kept := c.Entries[:0]
	for _, e := range c.Entries {
		if !e.valid() || seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		kept = append(kept, e)
	}
	c.Entries = kept
	return &c, nil
}

// Marshal encodes the catalog as formatted JSON.
func (c *Catalog) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog: %w", err)
	}
	return data, nil
}
