// Package parquet provides data structures and functions for exporting depmap
// run data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/depmap/schema"
	"github.com/parquet-go/parquet-go"
)

// ReportRun represents a single depmap report run with metadata.
// This struct maps to the depmap_report_runs database table.
type ReportRun struct {
	// RunID is the unique identifier for this report run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the report run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// RepoPath is the repository that was mined
	RepoPath string `parquet:"repo_path,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`

	// MergedBranches is the number of branches merged into the current branch
	MergedBranches int32 `parquet:"merged_branches,snappy"`

	// UnmergedBranches is the number of branches not yet merged
	UnmergedBranches int32 `parquet:"unmerged_branches,snappy"`

	// CommitCount is the number of commits walked during extraction
	CommitCount int32 `parquet:"commit_count,snappy"`

	// TrackedFiles is the number of Python files with accumulated imports
	TrackedFiles int32 `parquet:"tracked_files,snappy"`

	// IgnoredFiles is the number of file revisions skipped due to syntax issues
	IgnoredFiles int32 `parquet:"ignored_files,snappy"`

	// OtherFiles is the number of non-Python file changes encountered
	OtherFiles int32 `parquet:"other_files,snappy"`
}

// FileImport represents the accumulated imports for a single file in a run.
// This struct maps to the depmap_file_imports database table.
type FileImport struct {
	// RunID references the parent report run
	RunID int64 `parquet:"run_id,snappy"`

	// FilePath is the relative path to the file in the repository
	FilePath string `parquet:"file_path,snappy"`

	// ImportCount is the number of distinct imports accumulated for the file
	ImportCount int32 `parquet:"import_count,snappy"`

	// Imports contains the JSON-encoded import list
	Imports string `parquet:"imports,snappy"`

	// RecordedAt is when this row was stored (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ReportRun struct tags
	writer := parquet.NewGenericWriter[ReportRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFileImportsParquet writes a slice of FileImport structs to a Parquet file.
func WriteFileImportsParquet(data []FileImport, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FileImport struct tags
	writer := parquet.NewGenericWriter[FileImport](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchReportRuns generates sample ReportRun data for demonstration.
func MockFetchReportRuns() []ReportRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"repo_path":"/srv/repos/flaskapp","results_dir":"results"}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23 * time.Hour)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"repo_url":"https://example.com/repo.git","results_dir":"results"}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []ReportRun{
		{
			RunID:            1,
			StartTime:        startTime1,
			EndTime:          &endTime1,
			RunDurationMs:    &durationMs1,
			RepoPath:         "/srv/repos/flaskapp",
			ConfigParams:     &configParams1,
			MergedBranches:   4,
			UnmergedBranches: 2,
			CommitCount:      320,
			TrackedFiles:     61,
			IgnoredFiles:     3,
			OtherFiles:       118,
		},
		{
			RunID:            2,
			StartTime:        startTime2,
			EndTime:          &endTime2,
			RunDurationMs:    &durationMs2,
			RepoPath:         "",
			ConfigParams:     &configParams2,
			MergedBranches:   1,
			UnmergedBranches: 0,
			CommitCount:      45,
			TrackedFiles:     12,
			IgnoredFiles:     0,
			OtherFiles:       9,
		},
		{
			RunID:         3,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			RepoPath:      "/srv/repos/djangoapp",
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchFileImports generates sample FileImport data for demonstration.
func MockFetchFileImports() []FileImport {
	now := time.Now()

	return []FileImport{
		{
			RunID:       1,
			FilePath:    "app.py",
			ImportCount: 3,
			Imports:     `["os","flask.Flask","collections.OrderedDict"]`,
			RecordedAt:  now.Add(-1 * time.Hour),
		},
		{
			RunID:       1,
			FilePath:    "auth/session.py",
			ImportCount: 2,
			Imports:     `["hashlib","datetime.datetime"]`,
			RecordedAt:  now.Add(-1 * time.Hour),
		},
		{
			RunID:       2,
			FilePath:    "setup.py",
			ImportCount: 1,
			Imports:     `["setuptools.setup"]`,
			RecordedAt:  now.Add(-23 * time.Hour),
		},
	}
}

// ConvertRunRecords converts schema.RunRecord to ReportRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			RunID:            record.RunID,
			StartTime:        record.StartTime,
			EndTime:          record.EndTime,
			RunDurationMs:    record.RunDurationMs,
			RepoPath:         record.RepoPath,
			ConfigParams:     record.ConfigParams,
			MergedBranches:   record.MergedBranches,
			UnmergedBranches: record.UnmergedBranches,
			CommitCount:      record.CommitCount,
			TrackedFiles:     record.TrackedFiles,
			IgnoredFiles:     record.IgnoredFiles,
			OtherFiles:       record.OtherFiles,
		}
	}
	return result
}

// ConvertFileImportRecords converts schema.FileImportRecord to FileImport for Parquet export.
func ConvertFileImportRecords(records []schema.FileImportRecord) []FileImport {
	result := make([]FileImport, len(records))
	for i, record := range records {
		result[i] = FileImport{
			RunID:       record.RunID,
			FilePath:    record.FilePath,
			ImportCount: record.ImportCount,
			Imports:     record.Imports,
			RecordedAt:  record.RecordedAt,
		}
	}
	return result
}
