// Package schema has configs, models and global variables for all parts of depmap.
package schema

// BranchReport holds the classification of local branches relative to the
// currently checked-out branch. Merged entries come straight from the
// underlying branch query, so the active branch keeps its "* " marker there;
// it is removed from the unmerged set only.
type BranchReport struct {
	Current  string   `json:"current"`
	Merged   []string `json:"merged"`
	Unmerged []string `json:"unmerged"`
}

// FileStat captures per-file change counts within one commit.
// Binary files report zero for both counters.
type FileStat struct {
	Path       string `json:"path"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
}

// Lines returns the total number of changed lines.
func (s FileStat) Lines() int {
	return s.Insertions + s.Deletions
}

// ChangedFile is one entry of a commit's name-status diff. For renames and
// copies, Path is the destination path.
type ChangedFile struct {
	Path   string       `json:"path"`
	Status ChangeStatus `json:"status"`
}

// CommitRecord is an immutable snapshot of one commit in a branch history
// dump. Date is pre-formatted to second precision in local time.
type CommitRecord struct {
	SHA     string     `json:"sha"`
	Author  string     `json:"author"`
	Date    string     `json:"date"`
	Message string     `json:"message"`
	Files   []FileStat `json:"files"`
}

// BranchHistory pairs a branch entry with its collected commit records.
type BranchHistory struct {
	Branch  string         `json:"branch"`
	Commits []CommitRecord `json:"commits"`
}

// FileImports holds the accumulated import set for one tracked file path.
// Imports keep first-seen order and never shrink across revisions.
type FileImports struct {
	Path    string   `json:"path"`
	Imports []string `json:"imports"`
}

// DependencyReport is the outcome of a full-history import extraction pass.
type DependencyReport struct {
	Files           []FileImports `json:"files"`
	IgnoredFiles    int           `json:"ignored_files"`
	OtherExtensions []string      `json:"other_extensions"`
	CommitCount     int           `json:"commit_count"`
}

// ReportSummary aggregates the counters of one full report run.
type ReportSummary struct {
	RepoPath         string `json:"repo_path"`
	ResultsDir       string `json:"results_dir"`
	MergedBranches   int    `json:"merged_branches"`
	UnmergedBranches int    `json:"unmerged_branches"`
	HistoryFiles     int    `json:"history_files"`
	CommitCount      int    `json:"commit_count"`
	TrackedFiles     int    `json:"tracked_files"`
	IgnoredFiles     int    `json:"ignored_files"`
	OtherFiles       int    `json:"other_files"`
}
