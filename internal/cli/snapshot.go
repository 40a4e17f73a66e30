package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/sizediff/pkg/build"
	"github.com/sdejongh/sizediff/pkg/config"
	"github.com/sdejongh/sizediff/pkg/logging"
	"github.com/sdejongh/sizediff/pkg/models"
	"github.com/sdejongh/sizediff/pkg/output"
	"github.com/sdejongh/sizediff/pkg/project"
	"github.com/sdejongh/sizediff/pkg/sizeindex"
	"github.com/sdejongh/sizediff/pkg/snapshot"
	"github.com/sdejongh/sizediff/pkg/vcs"
)

// SnapshotFlags holds snapshot command flags
type SnapshotFlags struct {
	Output    string
	Exec      string
	Path      string
	SkipBuild bool
	Project   string
	Parallel  int
}

var snapshotFlags SnapshotFlags

// NewSnapshotCommand creates the snapshot command
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Build the project and record the size of its output",
		Long: `Run the configured build command, then walk the build output directory and
record the raw and gzip size of every file, grouped by directory and by category.
The result is written as a JSON snapshot that can be compared with "sizediff diff".`,
		Args: cobra.NoArgs,
		RunE: runSnapshot,
	}

	cmd.Flags().StringVarP(&snapshotFlags.Output, "output", "o", "", "snapshot file to write (default: snapshot.output from config)")
	cmd.Flags().StringVar(&snapshotFlags.Exec, "exec", "", "build command to run (default: build.command from config)")
	cmd.Flags().StringVar(&snapshotFlags.Path, "path", "", "build output directory (default: build.path from config)")
	cmd.Flags().BoolVar(&snapshotFlags.SkipBuild, "skip-build", false, "measure the existing build output without building")
	cmd.Flags().StringVar(&snapshotFlags.Project, "project", "", "project name (default: name from package.json)")
	cmd.Flags().IntVarP(&snapshotFlags.Parallel, "parallel", "p", 0, "number of files compressed in parallel (default: number of CPUs)")

	return cmd
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Override config with command-line flags
	applyGlobalFlags(cfg)
	if err := applySnapshotFlags(cfg); err != nil {
		return &models.ConfigError{Message: "invalid flags", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := createLogger(cfg, cmd.ErrOrStderr(), "snapshot")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	logger.Debug(ctx, "configuration loaded", logging.Fields{"source": cfg.String()})

	categories, err := cfg.CompileCategories()
	if err != nil {
		return err
	}

	projectDir := cfg.Dir
	if projectDir == "" {
		if projectDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	var buildTime *models.BuildTime
	if snapshotFlags.SkipBuild || cfg.Build.Command == "" {
		logger.Info(ctx, "build skipped", nil)
	} else {
		buildTime, err = runBuild(ctx, cmd, cfg, projectDir, logger)
		if err != nil {
			return err
		}
	}

	sizer, err := sizeindex.NewGzip(cfg.Gzip.Level)
	if err != nil {
		return &models.ConfigError{Message: "invalid gzip level", Err: err}
	}

	builder := snapshot.NewBuilder(sizer,
		snapshot.WithVCS(vcs.NewGit(projectDir)),
		snapshot.WithProject(projectSource(ctx, projectDir, logger)),
		snapshot.WithLogger(logger),
		snapshot.WithWorkers(cfg.Performance.MaxWorkers),
		snapshot.WithProgress(output.NewMeasureProgress(cmd.ErrOrStderr(), cfg.Output.Progress)),
	)

	snap, err := builder.Build(ctx, snapshot.Options{
		BuildDirectory: cfg.BuildPath(),
		BuildTime:      buildTime,
		Categories:     categories,
	})
	if err != nil {
		return err
	}

	outPath := cfg.SnapshotPath()
	if err := snapshot.Save(outPath, snap); err != nil {
		return err
	}

	logger.Info(ctx, "snapshot saved", logging.Fields{"path": outPath})

	if !globalFlags.Quiet {
		all := snap.Total[models.CategoryAll]
		fmt.Fprintf(cmd.OutOrStdout(), "Snapshot of %s written to %s\n", snap.Label(), outPath)
		fmt.Fprintf(cmd.OutOrStdout(), "  %d files, %s (gzip %s)\n",
			all.Files, output.FormatBytes(all.Size), output.FormatBytes(all.GzipSize))
		if buildTime != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  built in %.2fs\n", buildTime.TotalSeconds())
		}
	}

	return nil
}

func runBuild(ctx context.Context, cmd *cobra.Command, cfg *config.Config, dir string, logger logging.Logger) (*models.BuildTime, error) {
	runner := build.NewShellRunner()
	runner.Dir = dir
	runner.Logger = logger
	runner.Stderr = cmd.ErrOrStderr()
	// Build output goes to stderr; stdout is reserved for the summary
	runner.Stdout = cmd.ErrOrStderr()
	if globalFlags.Quiet {
		runner.Stdout = io.Discard
	}

	buildTime, err := build.Measure(ctx, runner, cfg.Build.Command, cfg.Build.Env)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "build finished", logging.Fields{
		"command": cfg.Build.Command,
		"seconds": buildTime.TotalSeconds(),
	})
	return buildTime, nil
}

// projectSource prefers --project, then package.json
func projectSource(ctx context.Context, dir string, logger logging.Logger) project.Source {
	if snapshotFlags.Project != "" {
		return project.Static(snapshotFlags.Project)
	}

	pkg, err := project.Load(dir)
	if err != nil {
		logger.Debug(ctx, "package metadata unavailable", logging.Fields{"error": err.Error()})
		return nil
	}
	return pkg
}
