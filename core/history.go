package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
)

// CollectBranchHistory returns the commit records of a branch, newest first.
// The branch may be a raw listing entry; the "* " marker is stripped before
// rev resolution. Commits whose header cannot be parsed are logged and
// skipped.
func CollectBranchHistory(ctx context.Context, client contract.GitClient, repoPath, branch string) ([]schema.CommitRecord, error) {
	rev := contract.SanitizeBranchRev(branch)
	out, err := client.CommitLog(ctx, repoPath, rev)
	if err != nil {
		return nil, err
	}
	return parseCommitLog(out), nil
}

// parseCommitLog parses `git log --numstat` output whose headers follow the
// --<sha>|<author>|<unix-ts>|<subject> format produced by GitClient.CommitLog.
func parseCommitLog(out []byte) []schema.CommitRecord {
	records := []schema.CommitRecord{}
	var current *schema.CommitRecord

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.HasPrefix(line, "--") {
			// Commit header line
			if current != nil {
				records = append(records, *current)
			}
			current = parseHistoryHeader(line)
			continue
		}
		if current == nil || strings.TrimSpace(line) == "" {
			continue // Skip blank lines and stats of skipped commits
		}

		if stat, ok := parseNumstatLine(line); ok {
			current.Files = append(current.Files, stat)
		}
	}
	if current != nil {
		records = append(records, *current)
	}
	return records
}

// parseHistoryHeader parses one commit header line into a record. A
// malformed header is logged and yields nil, which drops the commit along
// with its stats lines.
func parseHistoryHeader(line string) *schema.CommitRecord {
	parts := strings.SplitN(strings.TrimPrefix(line, "--"), "|", 4)
	if len(parts) != 4 {
		contract.LogWarn("Error encountered while processing commit", fmt.Errorf("malformed header %q", line))
		return nil
	}
	ts, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Error encountered while processing commit %s", parts[0]), err)
		return nil
	}
	return &schema.CommitRecord{
		SHA:     parts[0],
		Author:  parts[1],
		Date:    time.Unix(ts, 0).Format(contract.DateTimeFormat),
		Message: strings.TrimSpace(parts[3]),
		Files:   []schema.FileStat{},
	}
}

// parseNumstatLine parses one added<TAB>deleted<TAB>path stats line.
func parseNumstatLine(line string) (schema.FileStat, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return schema.FileStat{}, false
	}
	return schema.FileStat{
		Path:       parts[2],
		Insertions: parseChangeCount(parts[0]),
		Deletions:  parseChangeCount(parts[1]),
	}, true
}

// parseChangeCount converts a numstat counter to int, handling "-" (binary
// files) as 0.
func parseChangeCount(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}
