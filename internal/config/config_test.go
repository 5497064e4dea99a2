package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cppbind.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "geometry"
interfaces = ["geometry.i"]

[diagnostics]
max = 25
color = "off"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Package.Name != "geometry" {
		t.Fatalf("name = %q", cfg.Package.Name)
	}
	if len(cfg.Package.Interfaces) != 1 || cfg.Package.Interfaces[0] != "geometry.i" {
		t.Fatalf("interfaces = %v", cfg.Package.Interfaces)
	}
	if cfg.Diagnostics.Max != 25 || cfg.Diagnostics.Color != "off" {
		t.Fatalf("diagnostics = %+v", cfg.Diagnostics)
	}
	if !cfg.Cache.Enabled {
		t.Fatalf("cache default lost on partial manifest")
	}
}

func TestLoadMissingName(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("missing package name not reported")
	}
}

func TestLoadDefaultsWhenSectionsAbsent(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Diagnostics.Max != want.Diagnostics.Max || cfg.Package.Name != want.Package.Name {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"x\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("manifest found at %q, want under %q", path, root)
	}
	rootDir, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || rootDir != root {
		t.Fatalf("FindProjectRoot = %q ok=%v err=%v", rootDir, ok, err)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if ok {
		t.Fatalf("manifest reported in empty directory")
	}
}
