package contract

import (
	"context"

	"github.com/huangsam/depmap/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is an autogenerated mock type for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// CurrentBranch implements the GitClient interface.
func (m *MockGitClient) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	name, _ := ret.Get(0).(string)
	return name, ret.Error(1)
}

// ListBranches implements the GitClient interface.
func (m *MockGitClient) ListBranches(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	branches, _ := ret.Get(0).([]string)
	return branches, ret.Error(1)
}

// MergedBranches implements the GitClient interface.
func (m *MockGitClient) MergedBranches(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	branches, _ := ret.Get(0).([]string)
	return branches, ret.Error(1)
}

// CommitLog implements the GitClient interface.
func (m *MockGitClient) CommitLog(ctx context.Context, repoPath string, rev string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, rev)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ListCommitsWithParents implements the GitClient interface.
func (m *MockGitClient) ListCommitsWithParents(ctx context.Context, repoPath string) ([][]string, error) {
	ret := m.Called(ctx, repoPath)
	commits, _ := ret.Get(0).([][]string)
	return commits, ret.Error(1)
}

// ChangedFiles implements the GitClient interface.
func (m *MockGitClient) ChangedFiles(ctx context.Context, repoPath string, sha, parent string) ([]schema.ChangedFile, error) {
	ret := m.Called(ctx, repoPath, sha, parent)
	changes, _ := ret.Get(0).([]schema.ChangedFile)
	return changes, ret.Error(1)
}

// FileAtCommit implements the GitClient interface.
func (m *MockGitClient) FileAtCommit(ctx context.Context, repoPath string, sha, path string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, sha, path)
	content, _ := ret.Get(0).([]byte)
	return content, ret.Error(1)
}

// Clone implements the GitClient interface.
func (m *MockGitClient) Clone(ctx context.Context, url, dir string) error {
	ret := m.Called(ctx, url, dir)
	return ret.Error(0)
}
