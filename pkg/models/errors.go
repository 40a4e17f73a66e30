package models

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI
const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitConfig            = 2
	ExitBuildFailed       = 3
	ExitMalformedSnapshot = 4
	ExitFileSystem        = 5
)

// ConfigError reports a missing or invalid configuration value or file
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NotADirectoryError reports a build output path that is missing or not a directory
type NotADirectoryError struct {
	Path string
	Err  error
}

func (e *NotADirectoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("build path is not a directory: %s: %v", e.Path, e.Err)
	}
	return "build path is not a directory: " + e.Path
}

func (e *NotADirectoryError) Unwrap() error { return e.Err }

// BuildFailedError reports a build command that could not start or exited non-zero
type BuildFailedError struct {
	Command  string
	ExitCode int // -1 when the process never ran
	Err      error
}

func (e *BuildFailedError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("build command %q exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("build command %q failed: %v", e.Command, e.Err)
}

func (e *BuildFailedError) Unwrap() error { return e.Err }

// MalformedSnapshotError reports a snapshot file that cannot be parsed
type MalformedSnapshotError struct {
	Path string
	Err  error
}

func (e *MalformedSnapshotError) Error() string {
	return fmt.Sprintf("malformed snapshot %s: %v", e.Path, e.Err)
}

func (e *MalformedSnapshotError) Unwrap() error { return e.Err }

// FileSystemError wraps an I/O failure during traversal, compression or file access
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ExitCode returns the process exit code for an error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		configErr    *ConfigError
		validErr     *ValidationError
		notDirErr    *NotADirectoryError
		buildErr     *BuildFailedError
		malformedErr *MalformedSnapshotError
		fsErr        *FileSystemError
	)

	switch {
	case errors.As(err, &configErr), errors.As(err, &validErr), errors.As(err, &notDirErr):
		return ExitConfig
	case errors.As(err, &buildErr):
		return ExitBuildFailed
	case errors.As(err, &malformedErr):
		return ExitMalformedSnapshot
	case errors.As(err, &fsErr):
		return ExitFileSystem
	default:
		return ExitFailure
	}
}
