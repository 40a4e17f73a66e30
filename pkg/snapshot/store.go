package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdejongh/sizediff/pkg/models"
)

// DefaultOutput is the snapshot file written when no output path is configured
const DefaultOutput = "snapshot.json"

// requiredKeys must be present and non-null in a snapshot file
var requiredKeys = []string{"date", "total", "fsEntries"}

// Save writes the snapshot as indented JSON.
// The file is written to a temporary path first and renamed into place.
func Save(path string, snap *models.Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &models.FileSystemError{Op: "mkdir", Path: dir, Err: err}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return &models.FileSystemError{Op: "write", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &models.FileSystemError{Op: "rename", Path: path, Err: err}
	}

	return nil
}

// Load reads and validates a snapshot file
func Load(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.FileSystemError{Op: "read", Path: path, Err: err}
	}
	return Decode(path, data)
}

// Decode parses snapshot JSON; path is only used in errors
func Decode(path string, data []byte) (*models.Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &models.MalformedSnapshotError{Path: path, Err: err}
	}

	for _, key := range requiredKeys {
		value, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, &models.MalformedSnapshotError{
				Path: path,
				Err:  fmt.Errorf("missing %q", key),
			}
		}
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &models.MalformedSnapshotError{Path: path, Err: err}
	}

	return &snap, nil
}
