package cmd

import (
	"github.com/huangsam/depmap/core"
	"github.com/huangsam/depmap/internal/contract"
	"github.com/spf13/cobra"
)

// importsCmd extracts Python imports across the commit history.
var importsCmd = &cobra.Command{
	Use:   "imports [repo-path]",
	Short: "Extract Python imports accumulated across the commit history.",
	Long: `Walk every commit oldest-first and accumulate Python imports per file.

Each added or modified .py file is parsed at that revision; its import
statements join the file's running set in first-seen order. Files that fail
to parse are counted and skipped, and non-Python paths are collected
separately. Versions come from the requirements manifest when one matches
the import's top-level package.

Use --from-commit/--to-commit to bound the walk to a slice of history, for
example to see which imports a release introduced.

Examples:
  # Extract imports from the current repository
  depmap imports

  # Extract imports introduced between two commits
  depmap imports --from-commit a1b2c3d --to-commit f6e5d4c

  # Extract from a remote repository and print JSON
  depmap imports --repo-url https://github.com/pallets/flask.git --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDepmapImports(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot extract imports", err)
		}
	},
}
