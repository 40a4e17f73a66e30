// Package project reads the package metadata used to label snapshots.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Unknown is the project name used when no metadata is available
const Unknown = "unknown"

// ManifestFile is the package manifest read by Load
const ManifestFile = "package.json"

// Source supplies the project name
type Source interface {
	Name() string
}

// Package is the subset of package.json used by sizediff
type Package struct {
	PackageName string `json:"name"`
	Version     string `json:"version"`
}

// Load reads package.json from dir
func Load(dir string) (*Package, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &pkg, nil
}

// Name returns the package name, or Unknown when it is empty
func (p *Package) Name() string {
	if p == nil || p.PackageName == "" {
		return Unknown
	}
	return p.PackageName
}

// Static is a fixed project name
type Static string

// Name returns the fixed name, or Unknown when it is empty
func (s Static) Name() string {
	if s == "" {
		return Unknown
	}
	return string(s)
}

// NameOf returns the name of src, or Unknown when src is nil
func NameOf(src Source) string {
	if src == nil {
		return Unknown
	}
	if name := src.Name(); name != "" {
		return name
	}
	return Unknown
}
