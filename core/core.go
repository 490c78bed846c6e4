// Package core has core logic for branch classification, history dumps and
// dependency extraction.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/internal/report"
	"github.com/huangsam/depmap/schema"
)

// ExecutorFunc defines the function signature for executing report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteDepmapReport runs the full mining pipeline: branch classification,
// per-merged-branch history dumps, the dependency extraction walk and the
// version annotation, writing every text artifact under the results
// directory. It serves as the main entry point for the 'report' command.
func ExecuteDepmapReport(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	client := contract.NewLocalGitClient()

	repoPath, cleanup, err := resolveRepoDir(ctx, cfg, client)
	if err != nil {
		return err
	}
	defer cleanup()

	runStore, runID := beginRunTracking(cfg, mgr, start)

	branchReport, err := ClassifyBranches(ctx, client, repoPath)
	if err != nil {
		return err
	}

	writer := report.NewReportWriter(cfg)
	if err := writer.WriteBranchReport(branchReport); err != nil {
		return err
	}

	histories := make([]schema.BranchHistory, 0, len(branchReport.Merged))
	for _, branch := range branchReport.Merged {
		records, err := CollectBranchHistory(ctx, client, repoPath, branch)
		if err != nil {
			return err
		}
		history := schema.BranchHistory{Branch: branch, Commits: records}
		if err := writer.WriteBranchHistory(history); err != nil {
			return err
		}
		histories = append(histories, history)
	}

	depReport, err := extractFromRepo(ctx, cfg, client, repoPath)
	if err != nil {
		return err
	}
	versions, err := LoadPackageVersions(cfg.RequirementsPath)
	if err != nil {
		return err
	}
	if err := writer.WriteDependencyReport(depReport, versions); err != nil {
		return err
	}

	recordFileImports(runStore, runID, depReport.Files)
	endRunTracking(runStore, runID, schema.RunTotals{
		MergedBranches:   len(branchReport.Merged),
		UnmergedBranches: len(branchReport.Unmerged),
		CommitCount:      depReport.CommitCount,
		TrackedFiles:     len(depReport.Files),
		IgnoredFiles:     depReport.IgnoredFiles,
		OtherFiles:       len(depReport.OtherExtensions),
	})

	summary := &schema.ReportSummary{
		RepoPath:         repoPath,
		ResultsDir:       cfg.ResultsDir,
		MergedBranches:   len(branchReport.Merged),
		UnmergedBranches: len(branchReport.Unmerged),
		HistoryFiles:     len(histories),
		CommitCount:      depReport.CommitCount,
		TrackedFiles:     len(depReport.Files),
		IgnoredFiles:     depReport.IgnoredFiles,
		OtherFiles:       len(depReport.OtherExtensions),
	}
	return report.PrintReportSummary(summary, cfg, time.Since(start))
}

// ExecuteDepmapBranches classifies branches and prints the classification to
// stdout. It serves as the main entry point for the 'branches' command.
func ExecuteDepmapBranches(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	client := contract.NewLocalGitClient()

	repoPath, cleanup, err := resolveRepoDir(ctx, cfg, client)
	if err != nil {
		return err
	}
	defer cleanup()

	branchReport, err := ClassifyBranches(ctx, client, repoPath)
	if err != nil {
		return err
	}
	return report.PrintBranchReport(branchReport, cfg, time.Since(start))
}

// ExecuteDepmapHistory dumps commit history files. With a branch configured
// it dumps only that branch; otherwise it covers every merged branch, like
// the full report. It serves as the main entry point for the 'history'
// command.
func ExecuteDepmapHistory(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	client := contract.NewLocalGitClient()

	repoPath, cleanup, err := resolveRepoDir(ctx, cfg, client)
	if err != nil {
		return err
	}
	defer cleanup()

	branches := []string{cfg.Branch}
	if cfg.Branch == "" {
		branchReport, err := ClassifyBranches(ctx, client, repoPath)
		if err != nil {
			return err
		}
		branches = branchReport.Merged
	}

	writer := report.NewReportWriter(cfg)
	histories := make([]schema.BranchHistory, 0, len(branches))
	for _, branch := range branches {
		records, err := CollectBranchHistory(ctx, client, repoPath, branch)
		if err != nil {
			return err
		}
		history := schema.BranchHistory{Branch: branch, Commits: records}
		if err := writer.WriteBranchHistory(history); err != nil {
			return err
		}
		histories = append(histories, history)
	}
	return report.PrintBranchHistories(histories, cfg, time.Since(start))
}

// ExecuteDepmapImports runs the dependency extraction pass, writes the
// dependency artifacts and prints a summary. It serves as the main entry
// point for the 'imports' command.
func ExecuteDepmapImports(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	client := contract.NewLocalGitClient()

	runStore, runID := beginRunTracking(cfg, mgr, start)

	depReport, err := ExtractDependencies(ctx, cfg, client)
	if err != nil {
		return err
	}
	versions, err := LoadPackageVersions(cfg.RequirementsPath)
	if err != nil {
		return err
	}

	writer := report.NewReportWriter(cfg)
	if err := writer.WriteDependencyReport(depReport, versions); err != nil {
		return err
	}

	recordFileImports(runStore, runID, depReport.Files)
	endRunTracking(runStore, runID, schema.RunTotals{
		CommitCount:  depReport.CommitCount,
		TrackedFiles: len(depReport.Files),
		IgnoredFiles: depReport.IgnoredFiles,
		OtherFiles:   len(depReport.OtherExtensions),
	})

	return report.PrintDependencyReport(depReport, versions, cfg, time.Since(start))
}

// resolveRepoDir returns the directory to mine. A remote URL is cloned into
// a temp directory; the returned cleanup removes it. Exactly one source must
// be configured.
func resolveRepoDir(ctx context.Context, cfg *contract.Config, client contract.GitClient) (string, func(), error) {
	noop := func() {}
	if cfg.RepoURL != "" && cfg.RepoPath != "" {
		return "", noop, errors.New("provide either a repository URL or a local path, not both")
	}
	if cfg.RepoURL != "" {
		dir, err := os.MkdirTemp("", "depmap-clone-*")
		if err != nil {
			return "", noop, err
		}
		if err := client.Clone(ctx, cfg.RepoURL, dir); err != nil {
			_ = os.RemoveAll(dir)
			return "", noop, err
		}
		return dir, func() { _ = os.RemoveAll(dir) }, nil
	}
	if cfg.RepoPath == "" {
		return "", noop, errors.New("provide a repository URL or a local path")
	}
	return cfg.RepoPath, noop, nil
}

// beginRunTracking starts a tracked run if a store is configured. Tracking
// failures only warn; the mining run itself proceeds.
func beginRunTracking(cfg *contract.Config, mgr contract.RunManager, startTime time.Time) (contract.RunStore, int64) {
	runStore := mgr.GetRunStore()
	if runStore == nil {
		return nil, 0
	}
	configParams := map[string]any{
		"repo_path":    cfg.RepoPath,
		"repo_url":     cfg.RepoURL,
		"results_dir":  cfg.ResultsDir,
		"requirements": cfg.RequirementsPath,
		"from_commit":  cfg.FromCommit,
		"to_commit":    cfg.ToCommit,
	}
	runID, err := runStore.BeginRun(startTime, configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return nil, 0
	}
	return runStore, runID
}

// endRunTracking finalizes a tracked run with its counters.
func endRunTracking(runStore contract.RunStore, runID int64, totals schema.RunTotals) {
	if runStore == nil || runID == 0 {
		return
	}
	if err := runStore.EndRun(runID, time.Now(), totals); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// recordFileImports stores the per-file import sets of a tracked run.
func recordFileImports(runStore contract.RunStore, runID int64, files []schema.FileImports) {
	if runStore == nil || runID == 0 {
		return
	}
	for _, file := range files {
		if err := runStore.RecordFileImports(runID, file.Path, file.Imports); err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to record imports for %s", file.Path), err)
		}
	}
}
