package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanResult is a scanned catalog plus files the scanner had to skip.
type ScanResult struct {
	Catalog *Catalog
	// Skipped lists relative paths excluded for size or extension, with
	// a short reason, for warning logs.
	Skipped []string
}

// Scan walks an assets directory laid out as <dir>/<locale>/**/<stem>.<ext>
// and builds a catalog from it. The locale is the first path segment, the
// stem is the file name without extension, and the key is the slash-joined
// relative path. Files with disallowed extensions or exceeding the size
// ceiling are skipped and reported.
func Scan(dir string) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("assets directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets path %s is not a directory", dir)
	}

	res := &ScanResult{Catalog: &Catalog{Version: Version, Mode: ModeFolder}}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		parts := strings.SplitN(rel, "/", 2)
		if len(parts) < 2 {
			// Files directly under the assets dir have no locale.
			res.Skipped = append(res.Skipped, rel+" (no locale folder)")
			return nil
		}
		locale := parts[0]

		name := d.Name()
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		if !AllowedExtension(ext) {
			res.Skipped = append(res.Skipped, rel+" (extension)")
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.Size() > MaxAssetSize {
			res.Skipped = append(res.Skipped, rel+" (too large)")
			return nil
		}

		res.Catalog.Entries = append(res.Catalog.Entries, Entry{
			Key:       rel,
			Locale:    locale,
			RelPath:   rel,
			Stem:      strings.TrimSuffix(name, filepath.Ext(name)),
			Extension: ext,
			Size:      fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning assets: %w", err)
	}

	sort.Slice(res.Catalog.Entries, func(i, j int) bool {
		return res.Catalog.Entries[i].Key < res.Catalog.Entries[j].Key
	})
	return res, nil
}
