package schema

import "time"

// RunStatus represents the status of the run tracking store.
type RunStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalFileRows int              `json:"total_file_rows"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunTotals carries the final counters stored when a report run ends.
type RunTotals struct {
	MergedBranches   int
	UnmergedBranches int
	CommitCount      int
	TrackedFiles     int
	IgnoredFiles     int
	OtherFiles       int
}

// RunRecord represents a row from the depmap_report_runs table.
type RunRecord struct {
	RunID            int64
	StartTime        time.Time
	EndTime          *time.Time
	RunDurationMs    *int32
	RepoPath         string
	ConfigParams     *string
	MergedBranches   int32
	UnmergedBranches int32
	CommitCount      int32
	TrackedFiles     int32
	IgnoredFiles     int32
	OtherFiles       int32
}

// FileImportRecord represents a row from the depmap_file_imports table.
type FileImportRecord struct {
	RunID       int64
	FilePath    string
	ImportCount int32
	Imports     string
	RecordedAt  time.Time
}
