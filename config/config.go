// Package config — framelate.yaml project configuration.
//
// When a framelate.yaml file exists in the project root it declares where
// the document, translations, and assets live, plus the apply defaults.
// Every field can be overridden by a FRAMELATE_* environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "framelate.yaml"

// Config is the top-level framelate.yaml structure.
type Config struct {
	// Document is the design document JSON file.
	Document string `yaml:"document" env:"DOCUMENT"`
	// Translations is the locale translation map: a JSON file, or a
	// directory of <locale>.po files.
	Translations string `yaml:"translations" env:"TRANSLATIONS"`
	// AssetsDir holds locale asset folders (assets/<locale>/...).
	AssetsDir string `yaml:"assets_dir" env:"ASSETS_DIR"`
	// CatalogFile is a pre-built catalog JSON; empty means scan AssetsDir.
	CatalogFile string `yaml:"catalog_file" env:"CATALOG_FILE"`
	// Locales is the ordered target locale list; empty derives it from
	// the translation map.
	Locales []string `yaml:"locales" env:"LOCALES"`
	// Node selects the frame to localize by id.
	Node string `yaml:"node" env:"NODE"`
	// Images toggles the image replacement pass.
	Images bool `yaml:"images" env:"IMAGES"`
	// Output is where apply writes the mutated document (default:
	// overwrite Document).
	Output string `yaml:"output" env:"OUTPUT"`
	// ServerURL, when set, retrieves asset bytes from a framelate asset
	// server instead of reading AssetsDir directly.
	ServerURL string `yaml:"server_url" env:"SERVER_URL"`
}

// Load reads framelate.yaml from rootDir and applies FRAMELATE_*
// environment overrides. A missing file yields a zero Config with env
// overrides applied, not an error.
func Load(rootDir string) (*Config, error) {
	var c Config

	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// config file is optional
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&c, env.Options{Prefix: "FRAMELATE_"}); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	c.resolve(rootDir)
	return &c, nil
}

// resolve makes relative paths absolute against the project root and
// fills defaults.
func (c *Config) resolve(rootDir string) {
	if c.Document == "" {
		c.Document = "design.json"
	}
	if c.AssetsDir == "" {
		c.AssetsDir = "assets"
	}
	c.Document = abs(rootDir, c.Document)
	c.AssetsDir = abs(rootDir, c.AssetsDir)
	if c.Translations != "" {
		c.Translations = abs(rootDir, c.Translations)
	}
	if c.CatalogFile != "" {
		c.CatalogFile = abs(rootDir, c.CatalogFile)
	}
	if c.Output == "" {
		c.Output = c.Document
	} else {
		c.Output = abs(rootDir, c.Output)
	}
}

func abs(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}
