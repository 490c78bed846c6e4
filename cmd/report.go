package cmd

import (
	"github.com/huangsam/depmap/core"
	"github.com/huangsam/depmap/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd runs the full mining pipeline.
var reportCmd = &cobra.Command{
	Use:   "report [repo-path]",
	Short: "Run the full mining pipeline and write every report artifact.",
	Long: `Mine the repository end to end and write all report artifacts.

Walks the full Git history once and produces, under the results directory:
- branches.txt - merged and unmerged branches relative to the current branch
- <branch>_commit_history.txt - commit dumps for every merged branch
- dependencies.txt - per-file Python imports with manifest versions
- ignored_files.txt - count of file revisions skipped due to syntax errors
- other_extensions.txt - non-Python files touched across the history

Reruns against an unchanged repository reproduce the artifacts byte for byte,
so the results directory can live under version control.

Examples:
  # Mine the repository in the current directory
  depmap report

  # Mine a different checkout and keep artifacts elsewhere
  depmap report ~/src/flaskapp --results-dir /tmp/flaskapp-results

  # Mine a remote repository without a local checkout
  depmap report --repo-url https://github.com/pallets/flask.git

  # Track run metadata in SQLite while mining
  depmap report --runs-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDepmapReport(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot run report", err)
		}
	},
}
