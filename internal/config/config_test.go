package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Engine.FPS != 60 {
		t.Errorf("Engine.FPS = %d, expected 60", cfg.Engine.FPS)
	}
	if cfg.Engine.Mode != "buffered" {
		t.Errorf("Engine.Mode = %q, expected \"buffered\"", cfg.Engine.Mode)
	}
	if cfg.Engine.Quality != "high" {
		t.Errorf("Engine.Quality = %q, expected \"high\"", cfg.Engine.Quality)
	}
	if cfg.Effects.Starfield.Stars != 220 {
		t.Errorf("Starfield.Stars = %d, expected 220", cfg.Effects.Starfield.Stars)
	}
	if cfg.DBPath != "~/.glint/runs.db" {
		t.Errorf("DBPath = %q, expected ~/.glint/runs.db", cfg.DBPath)
	}
	if cfg.SSH.Address != ":23235" {
		t.Errorf("SSH.Address = %q, expected :23235", cfg.SSH.Address)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	want := Default()
	if cfg != want {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, want)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glint.yaml")

	doc := []byte("engine:\n  fps: 24\n  mode: direct\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Engine.FPS != 24 {
		t.Errorf("Engine.FPS = %d, expected 24", cfg.Engine.FPS)
	}
	if cfg.Engine.Mode != "direct" {
		t.Errorf("Engine.Mode = %q, expected \"direct\"", cfg.Engine.Mode)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glint.yaml")

	doc := []byte("effects:\n  bounce:\n    speed: 2.5\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Effects.Bounce.Speed != 2.5 {
		t.Errorf("Bounce.Speed = %v, expected 2.5", cfg.Effects.Bounce.Speed)
	}
	// Keys the document omits keep their defaults.
	if cfg.Effects.Bounce.Size != 0.22 {
		t.Errorf("Bounce.Size = %v, expected default 0.22", cfg.Effects.Bounce.Size)
	}
	if cfg.Engine.FPS != 60 {
		t.Errorf("Engine.FPS = %v, expected default 60", cfg.Engine.FPS)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load with missing explicit path should return error")
	}
}

func TestLoadInvalidExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glint.yaml")

	if err := os.WriteFile(path, []byte("engine: [not a mapping"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("Load with malformed explicit config should return error")
	}
}
