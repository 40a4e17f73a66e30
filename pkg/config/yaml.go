package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sdejongh/sizediff/pkg/models"
)

// FileNames are the config file names looked up during discovery, in order
var FileNames = []string{".sizediff.yaml", ".sizediff.yml"}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ConfigError{Message: "failed to read config file " + path, Err: err}
	}

	cfg := Default()
	// A categories mapping in the file replaces the defaults instead of merging with them
	defaults := cfg.Categories
	cfg.Categories = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &models.ConfigError{Message: "failed to parse config file " + path, Err: err}
	}
	if cfg.Categories == nil {
		cfg.Categories = defaults
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.Path = abs
	cfg.Dir = filepath.Dir(abs)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a YAML file
func SaveToFile(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &models.FileSystemError{Op: "mkdir", Path: dir, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &models.FileSystemError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// Discover looks for a config file in startDir and each of its parents.
// It returns an empty path when none is found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", &models.FileSystemError{Op: "stat", Path: candidate, Err: err}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadDefault discovers a config file from the working directory.
// If none exists, returns the default configuration
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom discovers a config file from startDir, falling back to Default
func LoadFrom(startDir string) (*Config, error) {
	path, err := Discover(startDir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFromFile(path)
}
