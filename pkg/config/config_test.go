package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/sizediff/pkg/models"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	categories, err := cfg.CompileCategories()
	if err != nil {
		t.Fatalf("CompileCategories() error = %v", err)
	}
	for i := 1; i < len(categories); i++ {
		if categories[i-1].Name >= categories[i].Name {
			t.Errorf("categories not sorted: %q before %q", categories[i-1].Name, categories[i].Name)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"reserved all", func(c *Config) { c.Categories["all"] = `.*` }, "categories.all"},
		{"reserved other", func(c *Config) { c.Categories["other"] = `.*` }, "categories.other"},
		{"bad pattern", func(c *Config) { c.Categories["bad"] = `(` }, "categories.bad"},
		{"gzip level low", func(c *Config) { c.Gzip.Level = 0 }, "gzip.level"},
		{"gzip level high", func(c *Config) { c.Gzip.Level = 10 }, "gzip.level"},
		{"no workers", func(c *Config) { c.Performance.MaxWorkers = 0 }, "performance.max_workers"},
		{"output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			var validErr *models.ValidationError
			if !errors.As(err, &validErr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if validErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", validErr.Field, tt.field)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ".sizediff.yaml", `
build:
  command: make dist
  path: out
  env:
    NODE_ENV: production
categories:
  scripts: '\.js$'
  styles: 'glob:*.css'
gzip:
  level: 6
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Build.Command != "make dist" {
		t.Errorf("Build.Command = %q", cfg.Build.Command)
	}
	if cfg.Build.Env["NODE_ENV"] != "production" {
		t.Errorf("Build.Env = %v", cfg.Build.Env)
	}
	if len(cfg.Categories) != 2 || cfg.Categories["scripts"] != `\.js$` {
		t.Errorf("Categories = %v, want only the file's categories", cfg.Categories)
	}
	if cfg.Gzip.Level != 6 {
		t.Errorf("Gzip.Level = %d, want 6", cfg.Gzip.Level)
	}
	// Unset sections keep their defaults
	if cfg.Output.Format != "human" || cfg.Snapshot.Output != "snapshot.json" {
		t.Errorf("defaults lost: output %q snapshot %q", cfg.Output.Format, cfg.Snapshot.Output)
	}

	wantDir, _ := filepath.Abs(dir)
	if cfg.BuildPath() != filepath.Join(wantDir, "out") {
		t.Errorf("BuildPath() = %q, want relative to config dir", cfg.BuildPath())
	}
	if cfg.SnapshotPath() != filepath.Join(wantDir, "snapshot.json") {
		t.Errorf("SnapshotPath() = %q", cfg.SnapshotPath())
	}
}

func TestLoadFromFileKeepsDefaultCategories(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ".sizediff.yaml", "build:\n  path: build\n")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if len(cfg.Categories) != len(Default().Categories) {
		t.Errorf("Categories = %v, want defaults", cfg.Categories)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
		var cfgErr *models.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("error = %v, want ConfigError", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, dir, "bad.yaml", "build: [unclosed")
		_, err := LoadFromFile(path)
		var cfgErr *models.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("error = %v, want ConfigError", err)
		}
	})

	t.Run("reserved category", func(t *testing.T) {
		path := writeConfig(t, dir, "reserved.yaml", "categories:\n  all: '.*'\n")
		_, err := LoadFromFile(path)
		if models.ExitCode(err) != models.ExitConfig {
			t.Errorf("error = %v, want config exit code", err)
		}
	})
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	path := writeConfig(t, filepath.Join(root, "a"), ".sizediff.yml", "gzip:\n  level: 3\n")

	found, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	wantPath, _ := filepath.Abs(path)
	if found != wantPath {
		t.Errorf("Discover() = %q, want %q", found, wantPath)
	}

	cfg, err := LoadFrom(nested)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Gzip.Level != 3 {
		t.Errorf("Gzip.Level = %d, want 3", cfg.Gzip.Level)
	}
}

func TestDiscoverPrefersYAMLExtension(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".sizediff.yml", "gzip:\n  level: 2\n")
	yamlPath := writeConfig(t, dir, ".sizediff.yaml", "gzip:\n  level: 4\n")

	found, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want, _ := filepath.Abs(yamlPath)
	if found != want {
		t.Errorf("Discover() = %q, want %q", found, want)
	}
}

func TestSaveToFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ".sizediff.yaml")
	cfg := Default()
	cfg.Build.Command = "pnpm build"

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Build.Command != "pnpm build" {
		t.Errorf("Build.Command = %q", loaded.Build.Command)
	}
	if len(loaded.Categories) != len(cfg.Categories) {
		t.Errorf("Categories = %v, want %v", loaded.Categories, cfg.Categories)
	}
}
