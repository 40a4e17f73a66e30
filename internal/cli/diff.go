package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdejongh/sizediff/pkg/diff"
	"github.com/sdejongh/sizediff/pkg/logging"
	"github.com/sdejongh/sizediff/pkg/output"
	"github.com/sdejongh/sizediff/pkg/snapshot"
)

// DiffFlags holds diff command flags
type DiffFlags struct {
	Format       string
	NoFiles      bool
	ReportFile   string
	ReportFormat string
}

var diffFlags DiffFlags

// NewDiffCommand creates the diff command
func NewDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two snapshots",
		Long: `Compare two snapshot files and report size changes per category, the
build time difference, and the files that were added, removed or resized.`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().StringVarP(&diffFlags.Format, "format", "f", "", "output format: human, json (default: output.format from config)")
	cmd.Flags().BoolVar(&diffFlags.NoFiles, "no-files", false, "do not list changed files")
	cmd.Flags().StringVar(&diffFlags.ReportFile, "report-file", "", "also write the report to file")
	cmd.Flags().StringVar(&diffFlags.ReportFormat, "report-format", "json", "report file format: human, json")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGlobalFlags(cfg)
	applyDiffFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := createLogger(cfg, cmd.ErrOrStderr(), "diff")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	left, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	right, err := snapshot.Load(args[1])
	if err != nil {
		return err
	}

	report := diff.Compare(left, right)

	formatter, err := output.NewFormatter(cfg.Output.Format, output.Options{
		NoColor:   cfg.Output.NoColor,
		ShowFiles: cfg.Output.Files,
	})
	if err != nil {
		return err
	}

	if err := formatter.Render(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if diffFlags.ReportFile != "" {
		reportFormatter, err := output.NewFormatter(diffFlags.ReportFormat, output.Options{
			NoColor:   true,
			ShowFiles: true,
			Width:     1 << 16,
		})
		if err != nil {
			return err
		}
		if err := output.WriteReportFile(report, diffFlags.ReportFile, reportFormatter); err != nil {
			return err
		}
	}

	logger.Info(ctx, "diff complete", logging.Fields{
		"left":      report.Left.Label,
		"right":     report.Right.Label,
		"identical": report.Identical(),
		"added":     report.Files.Count(diff.Added),
		"removed":   report.Files.Count(diff.Removed),
		"modified":  report.Files.Count(diff.Modified),
	})

	return nil
}
