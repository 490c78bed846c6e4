package cmd

import (
	"errors"

	"github.com/huangsam/depmap/core"
	"github.com/huangsam/depmap/internal/contract"
	"github.com/spf13/cobra"
)

// historyCmd dumps per-branch commit history.
var historyCmd = &cobra.Command{
	Use:   "history [repo-path]",
	Short: "Dump commit history with per-file change stats.",
	Long: `Walk branches and dump each commit with its changed files.

Every commit appears with its SHA, author, date and message, followed by the
files it touched with insertion and deletion counts. Without --branch the
dump covers every merged branch, exactly like the full report.

Examples:
  # Dump history for all merged branches
  depmap history

  # Dump a single branch as JSON
  depmap history --branch main --output json

  # Dump a release branch of another checkout
  depmap history ~/src/flaskapp --branch release/2.0`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		checkHistoryAndExecute(core.ExecuteDepmapHistory)
	},
}

// checkHistoryAndExecute validates the branch selection before running a
// history dump. A branch flag that sanitizes to nothing would otherwise
// surface as a confusing git error mid-run.
func checkHistoryAndExecute(executeFunc core.ExecutorFunc) {
	if cfg.Branch != "" && contract.SanitizeBranchRev(cfg.Branch) == "" {
		contract.LogFatal("Cannot collect history", errors.New("branch name must not be blank"))
	}
	if err := executeFunc(rootCtx, cfg); err != nil {
		contract.LogFatal("Cannot collect history", err)
	}
}
