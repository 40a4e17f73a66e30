// Package cli implements the sizediff command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the sizediff command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sizediff",
		Short: "Compare the output size of two frontend builds",
		Long: `sizediff builds a frontend project, records the raw and gzip size of every
file in its output directory, and compares two such snapshots by category,
by file and by build time.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewSnapshotCommand())
	rootCmd.AddCommand(NewDiffCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
