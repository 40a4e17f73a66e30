package storage

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sdejongh/sizediff/pkg/models"
)

// Local is a filesystem-based storage backend
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend rooted at a directory.
// Symlinks in rootPath are resolved so the walk starts at the real directory.
// A missing path or a path that is not a directory yields *models.NotADirectoryError.
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, &models.FileSystemError{Op: "resolve", Path: rootPath, Err: err}
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, &models.NotADirectoryError{Path: absPath, Err: err}
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return nil, &models.NotADirectoryError{Path: absPath, Err: err}
	}

	if !info.IsDir() {
		return nil, &models.NotADirectoryError{Path: absPath}
	}

	return &Local{rootPath: realPath}, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// List returns all entries in the directory recursively.
// filepath.WalkDir visits parents first and siblings in lexical order.
func (l *Local) List(ctx context.Context, path string) ([]FileInfo, error) {
	fullPath := filepath.Join(l.rootPath, path)
	var files []FileInfo

	err := filepath.WalkDir(fullPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(l.rootPath, p)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, FileInfo{
			Path:         p,
			RelativePath: relPath,
			Size:         info.Size(),
			IsDir:        info.IsDir(),
			Mode:         info.Mode(),
		})

		return nil
	})

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &models.FileSystemError{Op: "list", Path: fullPath, Err: err}
	}

	return files, nil
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	fullPath := filepath.Join(l.rootPath, path)

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, &models.FileSystemError{Op: "open", Path: fullPath, Err: err}
	}

	return file, nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
