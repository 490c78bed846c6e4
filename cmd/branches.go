package cmd

import (
	"github.com/huangsam/depmap/core"
	"github.com/huangsam/depmap/internal/contract"
	"github.com/spf13/cobra"
)

// branchesCmd classifies branches without running the full pipeline.
var branchesCmd = &cobra.Command{
	Use:   "branches [repo-path]",
	Short: "Classify branches as merged or unmerged.",
	Long: `Classify every branch relative to the currently checked-out branch.

A branch counts as merged when its history is fully contained in the current
branch. The checked-out branch itself appears in the merged set with its
leading "*" marker, matching the branches.txt artifact of the full report.

Examples:
  # Classify branches of the current repository
  depmap branches

  # Classify another checkout and print JSON
  depmap branches ~/src/flaskapp --output json

  # Write the classification to a file
  depmap branches --output csv --output-file branches.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDepmapBranches(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot classify branches", err)
		}
	},
}
