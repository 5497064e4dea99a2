// Package config loads the cppbind.toml project manifest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Package is the [package] section of cppbind.toml.
type Package struct {
	Name       string   `toml:"name"`
	Interfaces []string `toml:"interfaces"`
}

// Diagnostics is the [diagnostics] section.
type Diagnostics struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

// Cache is the [cache] section.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Config is a parsed cppbind.toml.
type Config struct {
	Package     Package     `toml:"package"`
	Diagnostics Diagnostics `toml:"diagnostics"`
	Cache       Cache       `toml:"cache"`
}

// ErrPackageNameMissing indicates that [package].name is absent.
var ErrPackageNameMissing = errors.New("missing [package].name")

// Default returns the configuration used when no manifest is present.
func Default() Config {
	return Config{
		Package:     Package{Name: "module"},
		Diagnostics: Diagnostics{Max: 100, Color: "auto"},
		Cache:       Cache{Enabled: true},
	}
}

// Load parses a cppbind.toml manifest. Sections that are absent keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("package") {
		name := strings.TrimSpace(cfg.Package.Name)
		if !meta.IsDefined("package", "name") || name == "" {
			return Config{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
		}
	}
	if cfg.Diagnostics.Max <= 0 {
		cfg.Diagnostics.Max = Default().Diagnostics.Max
	}
	return cfg, nil
}

// FindManifest walks up from startDir to locate cppbind.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "cppbind.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing cppbind.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// LoadFrom locates and parses the manifest governing startDir. When no
// manifest exists the default configuration is returned with ok=false.
func LoadFrom(startDir string) (Config, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, false, err
	}
	if !ok {
		return Default(), false, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}
