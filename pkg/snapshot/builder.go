// Package snapshot measures a build directory into a Snapshot and persists
// snapshots as JSON files.
package snapshot

import (
	"context"
	"strings"
	"time"

	"github.com/sdejongh/sizediff/pkg/category"
	"github.com/sdejongh/sizediff/pkg/logging"
	"github.com/sdejongh/sizediff/pkg/models"
	"github.com/sdejongh/sizediff/pkg/project"
	"github.com/sdejongh/sizediff/pkg/sizeindex"
	"github.com/sdejongh/sizediff/pkg/storage"
	"github.com/sdejongh/sizediff/pkg/vcs"
)

// BackendFactory opens the build directory
type BackendFactory func(root string) (storage.Backend, error)

// Options describes one snapshot
type Options struct {
	// BuildDirectory is the build output to measure
	BuildDirectory string

	// BuildTime is nil when no build was run
	BuildTime *models.BuildTime

	// Categories are applied in addition to the implicit all and other totals
	Categories []category.Category
}

// Builder assembles snapshots from a build directory and its metadata
type Builder struct {
	open     BackendFactory
	sizer    sizeindex.GzipSizer
	vcs      vcs.Resolver
	project  project.Source
	clock    func() time.Time
	logger   logging.Logger
	progress sizeindex.Progress
	workers  int
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithVCS sets the reference resolver; without it gitRef is omitted
func WithVCS(r vcs.Resolver) BuilderOption {
	return func(b *Builder) { b.vcs = r }
}

// WithProject sets the project name source
func WithProject(src project.Source) BuilderOption {
	return func(b *Builder) { b.project = src }
}

// WithClock replaces time.Now
func WithClock(clock func() time.Time) BuilderOption {
	return func(b *Builder) { b.clock = clock }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// WithProgress reports file measurement to p
func WithProgress(p sizeindex.Progress) BuilderOption {
	return func(b *Builder) { b.progress = p }
}

// WithWorkers compresses up to n files concurrently
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) { b.workers = n }
}

// WithBackendFactory replaces the local filesystem backend
func WithBackendFactory(f BackendFactory) BuilderOption {
	return func(b *Builder) { b.open = f }
}

// NewBuilder creates a builder measuring gzip sizes with sizer
func NewBuilder(sizer sizeindex.GzipSizer, opts ...BuilderOption) *Builder {
	b := &Builder{
		open: func(root string) (storage.Backend, error) {
			return storage.NewLocal(root)
		},
		sizer:   sizer,
		vcs:     vcs.Static(""),
		clock:   time.Now,
		logger:  logging.NewNullLogger(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build measures opts.BuildDirectory and returns the complete snapshot
func (b *Builder) Build(ctx context.Context, opts Options) (*models.Snapshot, error) {
	if strings.TrimSpace(opts.BuildDirectory) == "" {
		return nil, &models.ConfigError{
			Message: "Build path is not set. Use --path or set build.path in the config file",
		}
	}

	backend, err := b.open(opts.BuildDirectory)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	indexOpts := []sizeindex.Option{
		sizeindex.WithLogger(b.logger),
		sizeindex.WithWorkers(b.workers),
	}
	if b.progress != nil {
		indexOpts = append(indexOpts, sizeindex.WithProgress(b.progress))
	}

	dirs, err := sizeindex.Build(ctx, backend, b.sizer, indexOpts...)
	if err != nil {
		return nil, err
	}

	total := category.Categorize(dirs, opts.Categories)
	if fields := category.OverlapWarnings(total); len(fields) > 0 {
		b.logger.Warn(ctx, "categories overlap, other total is negative", logging.Fields{
			"fields": strings.Join(fields, ","),
			"other":  total[models.CategoryOther],
		})
	}

	snap := &models.Snapshot{
		Project:   project.NameOf(b.project),
		BuildTime: opts.BuildTime,
		Total:     total,
		FsEntries: Flatten(dirs),
	}

	if ref, ok := b.vcs.Ref(ctx); ok {
		snap.GitRef = ref
	} else {
		b.logger.Debug(ctx, "no vcs reference available", nil)
	}

	snap.Date = b.clock().UTC().Format(models.DateLayout)

	b.logger.Info(ctx, "snapshot built", logging.Fields{
		"project":     snap.Project,
		"git_ref":     snap.GitRef,
		"directories": len(dirs),
		"files":       total[models.CategoryAll].Files,
		"size":        total[models.CategoryAll].Size,
	})

	return snap, nil
}

// Flatten lists each directory summary immediately followed by its files
func Flatten(dirs []models.DirectoryEntry) []models.FsEntry {
	n := len(dirs)
	for _, d := range dirs {
		n += len(d.Files)
	}

	entries := make([]models.FsEntry, 0, n)
	for _, d := range dirs {
		entries = append(entries, d.Summary())
		for _, f := range d.Files {
			entries = append(entries, f.FsEntry())
		}
	}
	return entries
}
