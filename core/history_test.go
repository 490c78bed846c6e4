package core

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectBranchHistory(t *testing.T) {
	ctx := context.Background()
	mockClient := &contract.MockGitClient{}

	log := "--abc123|Alice|1685608200|add login flow\n" +
		"10\t2\tapp.py\n" +
		"5\t0\tauth/session.py\n" +
		"\n" +
		"--def456|Bob|1685521800|initial commit\n" +
		"3\t0\tapp.py\n"

	// The "* " marker is stripped before the rev reaches git.
	mockClient.On("CommitLog", ctx, "/test/repo", "main").Return([]byte(log), nil)

	records, err := CollectBranchHistory(ctx, mockClient, "/test/repo", "* main")

	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "abc123", first.SHA)
	assert.Equal(t, "Alice", first.Author)
	assert.Equal(t, "add login flow", first.Message)
	assert.Equal(t, []schema.FileStat{
		{Path: "app.py", Insertions: 10, Deletions: 2},
		{Path: "auth/session.py", Insertions: 5, Deletions: 0},
	}, first.Files)
	assert.Equal(t, 12, first.Files[0].Lines())

	second := records[1]
	assert.Equal(t, "def456", second.SHA)
	assert.Equal(t, "Bob", second.Author)
	require.Len(t, second.Files, 1)

	// Dates render in the local zone, so only the layout is asserted.
	for _, rec := range records {
		_, err := time.Parse(contract.DateTimeFormat, rec.Date)
		assert.NoError(t, err, "date %q should match layout", rec.Date)
	}

	mockClient.AssertExpectations(t)
}

func TestCollectBranchHistory_LogError(t *testing.T) {
	ctx := context.Background()
	mockClient := &contract.MockGitClient{}

	mockClient.On("CommitLog", ctx, "/test/repo", "gone").Return(nil, assert.AnError)

	records, err := CollectBranchHistory(ctx, mockClient, "/test/repo", "gone")

	assert.Error(t, err)
	assert.Nil(t, records)
	mockClient.AssertExpectations(t)
}

func TestParseCommitLogSkipsMalformedHeaders(t *testing.T) {
	log := "--badheader\n" +
		"4\t1\torphan.py\n" +
		"--abc|Alice|notatime|msg\n" +
		"2\t2\torphan2.py\n" +
		"--def|Bob|1685521800|ok\n" +
		"3\t1\treal.py\n"

	records := parseCommitLog([]byte(log))

	require.Len(t, records, 1)
	assert.Equal(t, "def", records[0].SHA)
	assert.Equal(t, []schema.FileStat{{Path: "real.py", Insertions: 3, Deletions: 1}}, records[0].Files)
}

func TestParseCommitLogPipeInMessage(t *testing.T) {
	log := "--abc|Alice|1685521800|fix: a|b\n"

	records := parseCommitLog([]byte(log))

	require.Len(t, records, 1)
	assert.Equal(t, "fix: a|b", records[0].Message)
}

func TestParseCommitLogEmpty(t *testing.T) {
	records := parseCommitLog([]byte(""))

	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestParseNumstatLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   schema.FileStat
		wantOK bool
	}{
		{
			name:   "regular change",
			line:   "10\t2\tapp.py",
			want:   schema.FileStat{Path: "app.py", Insertions: 10, Deletions: 2},
			wantOK: true,
		},
		{
			name:   "binary file",
			line:   "-\t-\tlogo.png",
			want:   schema.FileStat{Path: "logo.png", Insertions: 0, Deletions: 0},
			wantOK: true,
		},
		{
			name:   "missing column",
			line:   "10\tapp.py",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNumstatLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseChangeCount(t *testing.T) {
	assert.Equal(t, 0, parseChangeCount("-"))
	assert.Equal(t, 7, parseChangeCount("7"))
	assert.Equal(t, 0, parseChangeCount("abc"))
	assert.Equal(t, 0, parseChangeCount("-3"))
}
