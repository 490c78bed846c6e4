package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/depmap/schema"
)

// writeJSONBranchHistories marshals the histories to JSON and writes them.
func writeJSONBranchHistories(w io.Writer, histories []schema.BranchHistory) error {
	// 1. Prepare the data structure for JSON with the commit count added
	type JSONBranchHistory struct {
		CommitCount int `json:"commit_count"`
		schema.BranchHistory
	}

	output := make([]JSONBranchHistory, len(histories))
	for i, history := range histories {
		output[i] = JSONBranchHistory{
			CommitCount:   len(history.Commits),
			BranchHistory: history,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeCSVBranchHistories writes one CSV row per commit across all branches.
func writeCSVBranchHistories(w *csv.Writer, histories []schema.BranchHistory) error {
	// 1. Write Header Row
	header := []string{
		"branch",
		"sha",
		"author",
		"date",
		"message",
		"files_changed",
		"insertions",
		"deletions",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, history := range histories {
		for _, commit := range history.Commits {
			insertions, deletions := 0, 0
			for _, stat := range commit.Files {
				insertions += stat.Insertions
				deletions += stat.Deletions
			}
			row := []string{
				history.Branch,                  // Branch entry as listed
				commit.SHA,                      // Commit SHA
				commit.Author,                   // Author name
				commit.Date,                     // Formatted commit date
				commit.Message,                  // Subject line
				strconv.Itoa(len(commit.Files)), // Changed file count
				strconv.Itoa(insertions),        // Added lines
				strconv.Itoa(deletions),         // Removed lines
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// historyTotals sums the change counters across one branch's commits.
func historyTotals(history schema.BranchHistory) (files, insertions, deletions int) {
	for _, commit := range history.Commits {
		files += len(commit.Files)
		for _, stat := range commit.Files {
			insertions += stat.Insertions
			deletions += stat.Deletions
		}
	}
	return files, insertions, deletions
}
