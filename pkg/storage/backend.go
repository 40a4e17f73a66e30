package storage

import (
	"context"
	"io"
	"io/fs"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	Path         string
	RelativePath string
	Size         int64
	IsDir        bool
	Mode         fs.FileMode
}

// IsRegular reports whether the entry is a regular file
func (f FileInfo) IsRegular() bool {
	return f.Mode.IsRegular()
}

// Backend defines the read-only storage operations needed to measure a build
type Backend interface {
	// Root returns the absolute root path of the backend
	Root() string

	// List returns all entries under the specified directory recursively,
	// parents before children and siblings in lexical order
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Close releases any resources held by the backend
	Close() error
}
