package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainStateLabel(t *testing.T) {
	tests := []struct {
		name     string
		merged   bool
		expected string
	}{
		{
			name:     "merged branch",
			merged:   true,
			expected: MergedValue,
		},
		{
			name:     "unmerged branch",
			merged:   false,
			expected: UnmergedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainStateLabel(tt.merged))
		})
	}
}

func TestGetColorStateLabel(t *testing.T) {
	tests := []struct {
		name   string
		merged bool
		label  string
	}{
		{"merged", true, MergedValue},
		{"unmerged", false, UnmergedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorStateLabel(tt.merged)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestResolveVersion(t *testing.T) {
	versions := map[string]string{
		"flask": "2.0.1",
		"click": ">=8.0",
	}

	tests := []struct {
		name     string
		dep      string
		expected string
	}{
		{
			name:     "plain import",
			dep:      "flask",
			expected: "2.0.1",
		},
		{
			name:     "dotted import uses prefix",
			dep:      "flask.helpers",
			expected: "2.0.1",
		},
		{
			name:     "loose constraint version",
			dep:      "click",
			expected: ">=8.0",
		},
		{
			name:     "missing package",
			dep:      "os",
			expected: UnknownVersion,
		},
		{
			name:     "dotted import with missing prefix",
			dep:      "collections.OrderedDict",
			expected: UnknownVersion,
		},
		{
			name:     "leading dot resolves empty prefix",
			dep:      ".helpers",
			expected: UnknownVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveVersion(versions, tt.dep))
		})
	}
}

func TestSanitizeBranchRev(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		expected string
	}{
		{
			name:     "active branch marker",
			branch:   "* master",
			expected: "master",
		},
		{
			name:     "indented branch",
			branch:   "  develop",
			expected: "develop",
		},
		{
			name:     "plain branch",
			branch:   "main",
			expected: "main",
		},
		{
			name:     "slashed branch",
			branch:   "feature/login",
			expected: "feature/login",
		},
		{
			name:     "marker only",
			branch:   "*",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeBranchRev(tt.branch))
		})
	}
}

func TestBranchFileName(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		expected string
	}{
		{
			name:     "plain branch",
			branch:   "main",
			expected: "main",
		},
		{
			name:     "active branch marker",
			branch:   "* master",
			expected: "master",
		},
		{
			name:     "slashed branch",
			branch:   "feature/login",
			expected: "feature_login",
		},
		{
			name:     "deeply slashed branch",
			branch:   "user/team/fix",
			expected: "user_team_fix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BranchFileName(tt.branch))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetRunsDBFilePath(t *testing.T) {
	path := GetRunsDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".depmap_runs.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{
			name:     "short path untouched",
			path:     "app.py",
			maxWidth: 20,
			expected: "app.py",
		},
		{
			name:     "long path truncated with ellipsis",
			path:     "src/deeply/nested/module/app.py",
			maxWidth: 15,
			expected: "...odule/app.py",
		},
		{
			name:     "tiny width untouched",
			path:     "src/app.py",
			maxWidth: 3,
			expected: "src/app.py",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxWidth)
			assert.Equal(t, tt.expected, got)
			if tt.maxWidth > 3 {
				assert.LessOrEqual(t, len([]rune(got)), tt.maxWidth)
			}
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", "yes", true, false},
		{"no", "no", false, false},
		{"true", "true", true, false},
		{"false", "false", false, false},
		{"one", "1", true, false},
		{"zero", "0", false, false},
		{"mixed case", "YES", true, false},
		{"invalid", "maybe", false, true},
		{"empty", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
