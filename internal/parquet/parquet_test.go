package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/depmap/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(ReportRun))
	require.NotNil(t, schema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"repo_path",
		"config_params",
		"merged_branches",
		"unmerged_branches",
		"commit_count",
		"tracked_files",
		"ignored_files",
		"other_files",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestFileImportStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(FileImport))
	require.NotNil(t, schema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"file_path",
		"import_count",
		"imports",
		"recorded_at",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteReportRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "report_runs.parquet")

	// Get mock data
	data := MockFetchReportRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteReportRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[ReportRun](file)
	defer reader.Close()

	// Read all rows
	readData := make([]ReportRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].RepoPath, readData[i].RepoPath, "RepoPath should match")
		assert.Equal(t, data[i].MergedBranches, readData[i].MergedBranches, "MergedBranches should match")
		assert.Equal(t, data[i].UnmergedBranches, readData[i].UnmergedBranches, "UnmergedBranches should match")
		assert.Equal(t, data[i].CommitCount, readData[i].CommitCount, "CommitCount should match")
		assert.Equal(t, data[i].TrackedFiles, readData[i].TrackedFiles, "TrackedFiles should match")
		assert.Equal(t, data[i].IgnoredFiles, readData[i].IgnoredFiles, "IgnoredFiles should match")
		assert.Equal(t, data[i].OtherFiles, readData[i].OtherFiles, "OtherFiles should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].RunDurationMs == nil {
			assert.Nil(t, readData[i].RunDurationMs, "RunDurationMs should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMs, "RunDurationMs should not be nil")
			assert.Equal(t, *data[i].RunDurationMs, *readData[i].RunDurationMs, "RunDurationMs should match")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteFileImportsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "file_imports.parquet")

	// Get mock data
	data := MockFetchFileImports()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteFileImportsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[FileImport](file)
	defer reader.Close()

	// Read all rows
	readData := make([]FileImport, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].FilePath, readData[i].FilePath, "FilePath should match")
		assert.Equal(t, data[i].ImportCount, readData[i].ImportCount, "ImportCount should match")
		assert.Equal(t, data[i].Imports, readData[i].Imports, "Imports should match")
		assert.WithinDuration(t, data[i].RecordedAt, readData[i].RecordedAt, time.Nanosecond, "RecordedAt should match within nanosecond precision")
	}
}

func TestWriteReportRunsParquet_EmptyData(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_report_runs.parquet")

	// Write empty data
	err := WriteReportRunsParquet([]ReportRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteFileImportsParquet_EmptyData(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_file_imports.parquet")

	// Write empty data
	err := WriteFileImportsParquet([]FileImport{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteReportRunsParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := MockFetchReportRuns()
	err := WriteReportRunsParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestWriteFileImportsParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := MockFetchFileImports()
	err := WriteFileImportsParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestMockFetchReportRuns(t *testing.T) {
	data := MockFetchReportRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")
	assert.Len(t, data, 3, "Should return 3 mock records")

	// Verify the structure of mock data
	assert.Equal(t, int64(1), data[0].RunID)
	assert.NotNil(t, data[0].EndTime, "First record should have EndTime")
	assert.NotNil(t, data[0].RunDurationMs, "First record should have RunDurationMs")
	assert.NotNil(t, data[0].ConfigParams, "First record should have ConfigParams")

	// Third record should have nil nullable fields
	assert.Equal(t, int64(3), data[2].RunID)
	assert.Nil(t, data[2].EndTime, "Third record should have nil EndTime")
	assert.Nil(t, data[2].RunDurationMs, "Third record should have nil RunDurationMs")
	assert.Nil(t, data[2].ConfigParams, "Third record should have nil ConfigParams")
}

func TestMockFetchFileImports(t *testing.T) {
	data := MockFetchFileImports()
	require.NotEmpty(t, data, "Mock data should not be empty")
	assert.Len(t, data, 3, "Should return 3 mock records")

	// Verify the structure of mock data
	assert.Equal(t, int64(1), data[0].RunID)
	assert.Equal(t, "app.py", data[0].FilePath)
	assert.Equal(t, int32(3), data[0].ImportCount)

	// Third record belongs to a different run
	assert.Equal(t, int64(2), data[2].RunID)
	assert.Equal(t, "setup.py", data[2].FilePath)
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	endTime := now.Add(30 * time.Second)
	durationMs := int32(30000)
	configParams := `{"repo_path":"/tmp/repo"}`

	records := []schema.RunRecord{
		{
			RunID:            7,
			StartTime:        now,
			EndTime:          &endTime,
			RunDurationMs:    &durationMs,
			RepoPath:         "/tmp/repo",
			ConfigParams:     &configParams,
			MergedBranches:   2,
			UnmergedBranches: 1,
			CommitCount:      50,
			TrackedFiles:     10,
			IgnoredFiles:     1,
			OtherFiles:       4,
		},
		{
			RunID:     8,
			StartTime: now,
		},
	}

	converted := ConvertRunRecords(records)
	require.Len(t, converted, 2)

	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, now, converted[0].StartTime)
	assert.Equal(t, &endTime, converted[0].EndTime)
	assert.Equal(t, &durationMs, converted[0].RunDurationMs)
	assert.Equal(t, "/tmp/repo", converted[0].RepoPath)
	assert.Equal(t, &configParams, converted[0].ConfigParams)
	assert.Equal(t, int32(2), converted[0].MergedBranches)
	assert.Equal(t, int32(1), converted[0].UnmergedBranches)
	assert.Equal(t, int32(50), converted[0].CommitCount)
	assert.Equal(t, int32(10), converted[0].TrackedFiles)
	assert.Equal(t, int32(1), converted[0].IgnoredFiles)
	assert.Equal(t, int32(4), converted[0].OtherFiles)

	// Unset nullable fields pass through as nil
	assert.Equal(t, int64(8), converted[1].RunID)
	assert.Nil(t, converted[1].EndTime)
	assert.Nil(t, converted[1].RunDurationMs)
	assert.Nil(t, converted[1].ConfigParams)
}

func TestConvertFileImportRecords(t *testing.T) {
	now := time.Now()

	records := []schema.FileImportRecord{
		{
			RunID:       7,
			FilePath:    "app.py",
			ImportCount: 2,
			Imports:     `["os","sys"]`,
			RecordedAt:  now,
		},
	}

	converted := ConvertFileImportRecords(records)
	require.Len(t, converted, 1)

	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, "app.py", converted[0].FilePath)
	assert.Equal(t, int32(2), converted[0].ImportCount)
	assert.Equal(t, `["os","sys"]`, converted[0].Imports)
	assert.Equal(t, now, converted[0].RecordedAt)
}

func TestNullableFieldHandling(t *testing.T) {
	// Test that we can create structs with various combinations of null fields
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "nullable_test.parquet")

	now := time.Now()
	endTime := now.Add(1 * time.Hour)
	durationMs := int32(3600000)
	config := `{"test":"config"}`

	testData := []ReportRun{
		// All fields populated
		{
			RunID:            1,
			StartTime:        now,
			EndTime:          &endTime,
			RunDurationMs:    &durationMs,
			RepoPath:         "/srv/repos/flaskapp",
			ConfigParams:     &config,
			MergedBranches:   3,
			UnmergedBranches: 1,
			CommitCount:      100,
			TrackedFiles:     20,
			IgnoredFiles:     2,
			OtherFiles:       30,
		},
		// All nullable fields are nil
		{
			RunID:         2,
			StartTime:     now,
			EndTime:       nil,
			RunDurationMs: nil,
			RepoPath:      "",
			ConfigParams:  nil,
		},
	}

	// Write and read back
	err := WriteReportRunsParquet(testData, outputPath)
	require.NoError(t, err)

	// Read back and verify
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ReportRun](file)
	defer reader.Close()

	readData := make([]ReportRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(testData), n)

	// Verify first record has all fields
	assert.NotNil(t, readData[0].EndTime)
	assert.NotNil(t, readData[0].RunDurationMs)
	assert.NotNil(t, readData[0].ConfigParams)

	// Verify second record has nil nullable fields
	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestTimestampPrecision(t *testing.T) {
	// Test that timestamps are stored with nanosecond precision
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "timestamp_test.parquet")

	// Create a timestamp with nanosecond precision
	now := time.Now()
	// Note: Parquet stores timestamps with nanosecond precision internally

	testData := []ReportRun{
		{
			RunID:         1,
			StartTime:     now,
			EndTime:       &now,
			RunDurationMs: nil,
			RepoPath:      "/srv/repos/flaskapp",
			ConfigParams:  nil,
		},
	}

	// Write and read back
	err := WriteReportRunsParquet(testData, outputPath)
	require.NoError(t, err)

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ReportRun](file)
	defer reader.Close()

	readData := make([]ReportRun, reader.NumRows())
	_, err = reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}

	// Verify timestamp precision (should be within nanosecond)
	assert.WithinDuration(t, testData[0].StartTime, readData[0].StartTime, time.Nanosecond)
	assert.WithinDuration(t, *testData[0].EndTime, *readData[0].EndTime, time.Nanosecond)
}
