package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "lumina.config.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.CacheDir != want.CacheDir || len(cfg.FileExtensions) != len(want.FileExtensions) {
		t.Fatalf("got %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverlaysRecognizedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumina.config.json")
	writeFile(t, path, `{
		"target": "esm",
		"entries": ["src/main.lm"],
		"cacheDir": "build/cache",
		"recovery": true
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Target != TargetESM {
		t.Errorf("Target = %q, want esm", cfg.Target)
	}
	if len(cfg.Entries) != 1 || cfg.Entries[0] != "src/main.lm" {
		t.Errorf("Entries = %v", cfg.Entries)
	}
	if cfg.CacheDir != "build/cache" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if !cfg.Recovery {
		t.Errorf("Recovery = false, want true")
	}
	// Unspecified fields still fall back to defaults.
	if len(cfg.FileExtensions) != 2 {
		t.Errorf("FileExtensions = %v, want default", cfg.FileExtensions)
	}
}

func TestLoadRejectsInvalidTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumina.config.json")
	writeFile(t, path, `{"target": "llvm"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unrecognized target")
	}
}

func TestLoadRejectsWrongShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumina.config.json")
	writeFile(t, path, `{"entries": "not-an-array"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for entries not being an array")
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumina.config.json")
	writeFile(t, path, `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestWriteDefaultsThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumina.config.json")
	if err := WriteDefaults(path, TargetCJS, []string{"src/main.lm"}); err != nil {
		t.Fatalf("WriteDefaults: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Target != TargetCJS {
		t.Errorf("Target = %q, want cjs", cfg.Target)
	}
	if len(cfg.Entries) != 1 || cfg.Entries[0] != "src/main.lm" {
		t.Errorf("Entries = %v", cfg.Entries)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test fixture: %v", err)
	}
}
