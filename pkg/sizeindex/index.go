// Package sizeindex walks a build directory and measures the raw and gzip
// size of every file, grouped by the directory that directly contains it.
package sizeindex

import (
	"context"
	"errors"

	"github.com/sdejongh/sizediff/internal/platform"
	"github.com/sdejongh/sizediff/pkg/logging"
	"github.com/sdejongh/sizediff/pkg/models"
	"github.com/sdejongh/sizediff/pkg/storage"
)

// Progress observes file measurement.
// Increment may be called from several goroutines when more than one worker is used.
type Progress interface {
	Start(totalFiles int)
	Increment()
	Finish()
}

type options struct {
	progress Progress
	logger   logging.Logger
	workers  int
}

// Option configures Build
type Option func(*options)

// WithProgress reports each measured file to p
func WithProgress(p Progress) Option {
	return func(o *options) { o.progress = p }
}

// WithWorkers measures up to n files concurrently
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger used for per-directory debug output
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Build returns one DirectoryEntry per directory under the backend root,
// the root first, followed by subdirectories in walk order. Each entry holds
// its direct regular files only.
func Build(ctx context.Context, backend storage.Backend, sizer GzipSizer, opts ...Option) ([]models.DirectoryEntry, error) {
	o := options{logger: logging.NewNullLogger(), workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := backend.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 || !entries[0].IsDir {
		return nil, &models.NotADirectoryError{Path: backend.Root()}
	}

	var dirs []models.DirectoryEntry
	var files []storage.FileInfo
	index := make(map[string]int)

	for _, e := range entries {
		switch {
		case e.IsDir:
			p := platform.EntryPath(e.RelativePath, true)
			index[p] = len(dirs)
			dirs = append(dirs, models.DirectoryEntry{Path: p, Files: []models.FileEntry{}})
		case e.IsRegular():
			files = append(files, e)
		}
	}

	if o.progress != nil {
		o.progress.Start(len(files))
		defer o.progress.Finish()
	}

	gzipSizes, err := newMeasurePool(backend, sizer, o.workers, o.progress).run(ctx, files)
	if err != nil {
		return nil, err
	}

	for i, e := range files {
		p := platform.EntryPath(e.RelativePath, false)
		dir := &dirs[index[platform.DirOf(p)]]
		dir.Files = append(dir.Files, models.FileEntry{
			Path:     p,
			Size:     e.Size,
			GzipSize: gzipSizes[i],
		})
		dir.Size += e.Size
		dir.GzipSize += gzipSizes[i]
	}

	for _, d := range dirs {
		o.logger.Debug(ctx, "directory measured", logging.Fields{
			"path":      d.Path,
			"files":     len(d.Files),
			"size":      d.Size,
			"gzip_size": d.GzipSize,
		})
	}

	return dirs, nil
}

func measure(ctx context.Context, backend storage.Backend, sizer GzipSizer, e storage.FileInfo) (int64, error) {
	reader, err := backend.Read(ctx, e.RelativePath)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	n, err := sizer.GzipSize(ctx, reader)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		return 0, &models.FileSystemError{Op: "gzip", Path: e.Path, Err: err}
	}
	return n, nil
}
