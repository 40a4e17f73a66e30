package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/sdejongh/sizediff/pkg/category"
	"github.com/sdejongh/sizediff/pkg/models"
	"github.com/sdejongh/sizediff/pkg/sizeindex"
	"github.com/sdejongh/sizediff/pkg/snapshot"
)

// Config represents the application configuration
type Config struct {
	Build       BuildConfig       `yaml:"build"`
	Categories  map[string]string `yaml:"categories"`
	Gzip        GzipConfig        `yaml:"gzip"`
	Performance PerformanceConfig `yaml:"performance"`
	Snapshot    SnapshotConfig    `yaml:"snapshot"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`

	// Dir is the directory of the loaded config file; relative paths resolve against it
	Dir string `yaml:"-"`
	// Path is the loaded config file, empty for the bundled default
	Path string `yaml:"-"`
}

// BuildConfig describes how the project is built
type BuildConfig struct {
	Command string            `yaml:"command"`
	Path    string            `yaml:"path"` // Build output directory
	Env     map[string]string `yaml:"env,omitempty"`
}

// GzipConfig holds compression settings
type GzipConfig struct {
	Level int `yaml:"level"` // 1 (fastest) to 9 (best)
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	MaxWorkers int `yaml:"max_workers"` // Files compressed concurrently
}

// SnapshotConfig holds snapshot file settings
type SnapshotConfig struct {
	Output string `yaml:"output"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar while measuring
	NoColor  bool   `yaml:"no_color"`
	Files    bool   `yaml:"files"` // List file changes in diffs
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	File   string `yaml:"file"`   // Log file path (empty = no file log)
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			Command: "npm run build",
			Path:    "dist",
		},
		Categories: map[string]string{
			"js":     `\.m?js$`,
			"css":    `\.css$`,
			"html":   `\.html?$`,
			"images": `\.(png|jpe?g|gif|svg|webp|avif|ico)$`,
			"fonts":  `\.(woff2?|ttf|otf|eot)$`,
		},
		Gzip: GzipConfig{
			Level: sizeindex.DefaultGzipLevel,
		},
		Performance: PerformanceConfig{
			MaxWorkers: runtime.NumCPU(),
		},
		Snapshot: SnapshotConfig{
			Output: snapshot.DefaultOutput,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			NoColor:  false,
			Files:    true,
		},
		Logging: LoggingConfig{
			File:   "",
			Format: "text",
			Level:  "info",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	for name, pattern := range c.Categories {
		if category.IsReserved(name) {
			return &models.ValidationError{
				Field:   "categories." + name,
				Message: "'all' and 'other' are reserved category names",
			}
		}
		if _, err := category.NewMatcher(pattern); err != nil {
			return &models.ValidationError{
				Field:   "categories." + name,
				Message: err.Error(),
			}
		}
	}

	if c.Gzip.Level < 1 || c.Gzip.Level > 9 {
		return &models.ValidationError{
			Field:   "gzip.level",
			Message: "must be between 1 and 9",
		}
	}

	if c.Performance.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}

// CompileCategories returns the configured categories sorted by name
func (c *Config) CompileCategories() ([]category.Category, error) {
	categories, err := category.CompileAll(c.Categories)
	if err != nil {
		return nil, &models.ConfigError{Message: "invalid categories", Err: err}
	}
	return categories, nil
}

// BuildPath returns the build directory, resolved against the config file directory
func (c *Config) BuildPath() string {
	return c.resolve(c.Build.Path)
}

// SnapshotPath returns the snapshot output, resolved like BuildPath
func (c *Config) SnapshotPath() string {
	return c.resolve(c.Snapshot.Output)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// String returns a one-line description of where the configuration came from
func (c *Config) String() string {
	if c.Path == "" {
		return "built-in defaults"
	}
	return fmt.Sprintf("config file %s", c.Path)
}
