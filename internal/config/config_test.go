package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Catalog != "" {
		t.Errorf("expected the built-in catalog by default, got %q", cfg.Catalog)
	}
	if cfg.Title != "CBA System Visualization" {
		t.Errorf("expected default title, got %q", cfg.Title)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Layout.K != 0.5 || cfg.Layout.Iterations != 50 {
		t.Errorf("expected spring defaults k=0.5 iterations=50, got %+v", cfg.Layout)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.atlas.yml")

	original := DefaultConfig()
	original.Catalog = "catalog.yml"
	original.Title = "Estate"
	original.OutputDir = "public"
	original.Server.Port = 9000
	original.Server.AllowAll = true
	original.Layout.Seed = 42

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *loaded != *original {
		t.Errorf("round trip: got %+v, want %+v", *loaded, *original)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", *cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Layout.Iterations != 50 || cfg.Title != DefaultConfig().Title {
		t.Errorf("defaults lost: %+v", *cfg)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("ATLAS_TITLE", "From Env")
	t.Setenv("ATLAS_SERVER__PORT", "9100")
	t.Setenv("ATLAS_LAYOUT__SEED", "7")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Title != "From Env" {
		t.Errorf("title override failed: got %q", loaded.Title)
	}
	if loaded.Server.Port != 9100 {
		t.Errorf("nested port override failed: got %d", loaded.Server.Port)
	}
	if loaded.Layout.Seed != 7 {
		t.Errorf("nested seed override failed: got %d", loaded.Layout.Seed)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"ATLAS_TITLE", "title"},
		{"ATLAS_OUTPUT_DIR", "output_dir"},
		{"ATLAS_SERVER__ALLOW_ALL", "server.allow_all"},
	}
	for _, tt := range tests {
		if got := envKey(tt.input); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty title", func(c *Config) { c.Title = "  " }},
		{"missing catalog", func(c *Config) { c.Catalog = filepath.Join(t.TempDir(), "missing.yml") }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"negative k", func(c *Config) { c.Layout.K = -1 }},
		{"negative iterations", func(c *Config) { c.Layout.Iterations = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateExistingCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	if err := os.WriteFile(path, []byte("assets: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Catalog = path
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestPromptValidators(t *testing.T) {
	if err := validPort("8080"); err != nil {
		t.Errorf("validPort(8080): %v", err)
	}
	for _, bad := range []string{"", "abc", "0", "65536"} {
		if err := validPort(bad); err == nil {
			t.Errorf("validPort(%q) should fail", bad)
		}
	}
	if err := validSeed(" -3 "); err != nil {
		t.Errorf("validSeed: %v", err)
	}
	if err := validSeed("1.5"); err == nil {
		t.Error("validSeed(1.5) should fail")
	}
	if err := fileExists(t.TempDir()); err == nil {
		t.Error("fileExists should reject directories")
	}
}
