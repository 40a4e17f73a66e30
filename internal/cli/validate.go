package cli

import (
	"fmt"
	"path/filepath"

	"github.com/sdejongh/sizediff/internal/platform"
	"github.com/sdejongh/sizediff/pkg/config"
)

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyGlobalFlags overrides config values with global command-line flags
func applyGlobalFlags(cfg *config.Config) {
	if globalFlags.NoColor {
		cfg.Output.NoColor = true
	}

	if globalFlags.LogFile != "" {
		cfg.Logging.File = globalFlags.LogFile
	}
	if globalFlags.LogFormat != "" {
		cfg.Logging.Format = globalFlags.LogFormat
	}
	if globalFlags.LogLevel != "" {
		cfg.Logging.Level = globalFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
	}
}

// applySnapshotFlags overrides config values with snapshot flags.
// Paths given on the command line are relative to the working directory.
func applySnapshotFlags(cfg *config.Config) error {
	if snapshotFlags.Parallel > 0 {
		cfg.Performance.MaxWorkers = snapshotFlags.Parallel
	}

	if snapshotFlags.Exec != "" {
		cfg.Build.Command = snapshotFlags.Exec
	}

	if snapshotFlags.Path != "" {
		if err := platform.ValidatePath(snapshotFlags.Path); err != nil {
			return err
		}
		abs, err := filepath.Abs(snapshotFlags.Path)
		if err != nil {
			return fmt.Errorf("invalid --path: %w", err)
		}
		cfg.Build.Path = abs
	}

	if snapshotFlags.Output != "" {
		abs, err := filepath.Abs(snapshotFlags.Output)
		if err != nil {
			return fmt.Errorf("invalid --output: %w", err)
		}
		cfg.Snapshot.Output = abs
	}

	return nil
}

// applyDiffFlags overrides config values with diff flags
func applyDiffFlags(cfg *config.Config) {
	if diffFlags.Format != "" {
		cfg.Output.Format = diffFlags.Format
	}
	if diffFlags.NoFiles {
		cfg.Output.Files = false
	}
}
