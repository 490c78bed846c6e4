// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/depmap/schema"
)

// GitClient defines the necessary operations for repository mining.
// This allows the core report logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its standard output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository / Branch State ---

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// CurrentBranch returns the short name of the currently checked-out branch.
	// It fails when HEAD is detached.
	CurrentBranch(ctx context.Context, repoPath string) (string, error)

	// ListBranches returns the short names of all local branches.
	ListBranches(ctx context.Context, repoPath string) ([]string, error)

	// MergedBranches returns the local branches merged into the current branch,
	// one entry per line of git output. The checked-out branch keeps the
	// leading "* " marker that git prints for it.
	MergedBranches(ctx context.Context, repoPath string) ([]string, error)

	// --- Commit History ---

	// CommitLog returns the raw commit log for a revision, newest first,
	// including per-file numstat lines.
	CommitLog(ctx context.Context, repoPath string, rev string) ([]byte, error)

	// ListCommitsWithParents returns every commit reachable from HEAD in
	// chronological order. Each entry is the commit hash followed by its
	// parent hashes, oldest commit first.
	ListCommitsWithParents(ctx context.Context, repoPath string) ([][]string, error)

	// ChangedFiles returns the files touched by a commit relative to one
	// parent, with their change status. An empty parent means the commit has
	// none and the diff runs against the empty tree.
	ChangedFiles(ctx context.Context, repoPath string, sha, parent string) ([]schema.ChangedFile, error)

	// FileAtCommit returns the contents of a file as stored at a commit.
	FileAtCommit(ctx context.Context, repoPath string, sha, path string) ([]byte, error)

	// --- Remote ---

	// Clone clones a remote repository into the target directory.
	Clone(ctx context.Context, url, dir string) error
}

// RunManager defines the interface for managing run stores.
// This allows the persistence layer to be mocked for testing.
type RunManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking report runs and storing file imports.
type RunStore interface {
	// BeginRun creates a new report run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the report run with completion data
	EndRun(runID int64, endTime time.Time, totals schema.RunTotals) error

	// RecordFileImports stores the accumulated imports for a file
	RecordFileImports(runID int64, filePath string, imports []string) error

	// GetAllRuns returns all recorded report runs
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllFileImports returns all recorded file import rows
	GetAllFileImports() ([]schema.FileImportRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// Close closes the underlying connection
	Close() error
}
