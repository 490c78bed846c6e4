package core

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/internal/iostore"
	"github.com/huangsam/depmap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestExecuteDepmapReport tests the main report entry point.
func TestExecuteDepmapReport(t *testing.T) {
	ctx := context.Background()

	// Create mock run manager
	mockMgr := &iostore.MockRunManager{}
	mockMgr.On("GetRunStore").Return(nil) // No run tracking for test

	// Create config - this will fail because we're not in a real git repo
	cfg := &contract.Config{
		RepoPath:         "/nonexistent/repo",
		ResultsDir:       t.TempDir(),
		RequirementsPath: "requirements.txt",
	}

	// Execute - should fail due to non-existent repo
	err := ExecuteDepmapReport(ctx, cfg, mockMgr)

	assert.Error(t, err)
	mockMgr.AssertExpectations(t)
}

// TestExecuteDepmapImports tests the imports entry point.
func TestExecuteDepmapImports(t *testing.T) {
	ctx := context.Background()

	mockMgr := &iostore.MockRunManager{}
	mockMgr.On("GetRunStore").Return(nil) // No run tracking for test

	// Conflicting sources fail before any git work happens.
	cfg := &contract.Config{
		RepoPath: "/test/repo",
		RepoURL:  "https://example.com/repo.git",
	}

	err := ExecuteDepmapImports(ctx, cfg, mockMgr)

	assert.ErrorContains(t, err, "not both")
	mockMgr.AssertExpectations(t)
}

func TestResolveRepoDir_LocalPath(t *testing.T) {
	ctx := context.Background()
	mockClient := &contract.MockGitClient{}
	cfg := &contract.Config{RepoPath: "/test/repo"}

	dir, cleanup, err := resolveRepoDir(ctx, cfg, mockClient)

	require.NoError(t, err)
	assert.Equal(t, "/test/repo", dir)
	cleanup() // No-op for local paths
	mockClient.AssertNotCalled(t, "Clone", ctx, mock.Anything, mock.Anything)
}

func TestResolveRepoDir_SourceConflict(t *testing.T) {
	ctx := context.Background()
	mockClient := &contract.MockGitClient{}
	cfg := &contract.Config{
		RepoPath: "/test/repo",
		RepoURL:  "https://example.com/repo.git",
	}

	_, _, err := resolveRepoDir(ctx, cfg, mockClient)

	assert.ErrorContains(t, err, "not both")
}

func TestResolveRepoDir_NoSource(t *testing.T) {
	ctx := context.Background()
	mockClient := &contract.MockGitClient{}
	cfg := &contract.Config{}

	_, _, err := resolveRepoDir(ctx, cfg, mockClient)

	assert.Error(t, err)
}

func TestResolveRepoDir_CloneURL(t *testing.T) {
	ctx := context.Background()
	mockClient := &contract.MockGitClient{}
	cfg := &contract.Config{RepoURL: "https://example.com/repo.git"}

	mockClient.On("Clone", ctx, "https://example.com/repo.git", mock.AnythingOfType("string")).Return(nil)

	dir, cleanup, err := resolveRepoDir(ctx, cfg, mockClient)

	require.NoError(t, err)
	assert.DirExists(t, dir)

	cleanup()
	assert.NoDirExists(t, dir)
	mockClient.AssertExpectations(t)
}

func TestResolveRepoDir_CloneFailure(t *testing.T) {
	ctx := context.Background()
	mockClient := &contract.MockGitClient{}
	cfg := &contract.Config{RepoURL: "https://example.com/repo.git"}

	mockClient.On("Clone", ctx, "https://example.com/repo.git", mock.AnythingOfType("string")).Return(assert.AnError)

	dir, _, err := resolveRepoDir(ctx, cfg, mockClient)

	assert.Error(t, err)
	assert.Empty(t, dir)
	mockClient.AssertExpectations(t)
}

func TestBeginRunTracking_NoStore(t *testing.T) {
	mockMgr := &iostore.MockRunManager{}
	mockMgr.On("GetRunStore").Return(nil)

	cfg := &contract.Config{RepoPath: "/test/repo"}
	runStore, runID := beginRunTracking(cfg, mockMgr, time.Now())

	assert.Nil(t, runStore)
	assert.Zero(t, runID)
	mockMgr.AssertExpectations(t)
}

func TestBeginRunTracking_Success(t *testing.T) {
	mockStore := &iostore.MockRunStore{}
	mockMgr := &iostore.MockRunManager{}
	mockMgr.On("GetRunStore").Return(mockStore)
	mockStore.On("BeginRun", mock.AnythingOfType("time.Time"), mock.AnythingOfType("map[string]interface {}")).Return(int64(42), nil)

	cfg := &contract.Config{RepoPath: "/test/repo", ResultsDir: "results"}
	runStore, runID := beginRunTracking(cfg, mockMgr, time.Now())

	assert.NotNil(t, runStore)
	assert.Equal(t, int64(42), runID)
	mockMgr.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestBeginRunTracking_BeginError(t *testing.T) {
	mockStore := &iostore.MockRunStore{}
	mockMgr := &iostore.MockRunManager{}
	mockMgr.On("GetRunStore").Return(mockStore)
	mockStore.On("BeginRun", mock.AnythingOfType("time.Time"), mock.AnythingOfType("map[string]interface {}")).Return(int64(0), assert.AnError)

	cfg := &contract.Config{RepoPath: "/test/repo"}
	runStore, runID := beginRunTracking(cfg, mockMgr, time.Now())

	// A tracking failure downgrades to a warning and disables tracking.
	assert.Nil(t, runStore)
	assert.Zero(t, runID)
	mockStore.AssertExpectations(t)
}

func TestEndRunTracking(t *testing.T) {
	mockStore := &iostore.MockRunStore{}
	totals := schema.RunTotals{MergedBranches: 2, CommitCount: 10}
	mockStore.On("EndRun", int64(42), mock.AnythingOfType("time.Time"), totals).Return(nil)

	endRunTracking(mockStore, 42, totals)

	mockStore.AssertExpectations(t)
}

func TestEndRunTracking_Disabled(t *testing.T) {
	mockStore := &iostore.MockRunStore{}

	endRunTracking(nil, 42, schema.RunTotals{})
	endRunTracking(mockStore, 0, schema.RunTotals{})

	mockStore.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordFileImports(t *testing.T) {
	mockStore := &iostore.MockRunStore{}
	mockStore.On("RecordFileImports", int64(42), "app.py", []string{"os", "sys"}).Return(nil)
	mockStore.On("RecordFileImports", int64(42), "util.py", []string{"json"}).Return(assert.AnError)

	files := []schema.FileImports{
		{Path: "app.py", Imports: []string{"os", "sys"}},
		{Path: "util.py", Imports: []string{"json"}},
	}

	// Per-file failures warn without aborting the rest.
	recordFileImports(mockStore, 42, files)

	mockStore.AssertExpectations(t)
}
