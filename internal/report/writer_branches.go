package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
)

// writeJSONBranchReport marshals the classification to JSON and writes it.
func writeJSONBranchReport(w io.Writer, report *schema.BranchReport) error {
	// 1. Prepare the data structure for JSON with the state label added
	type JSONBranch struct {
		Name  string `json:"name"`
		State string `json:"state"`
	}
	type JSONBranchReport struct {
		Current  string       `json:"current"`
		Branches []JSONBranch `json:"branches"`
	}

	output := JSONBranchReport{Current: report.Current}
	for _, branch := range report.Merged {
		output.Branches = append(output.Branches, JSONBranch{
			Name:  branch,
			State: contract.GetPlainStateLabel(true),
		})
	}
	for _, branch := range report.Unmerged {
		output.Branches = append(output.Branches, JSONBranch{
			Name:  branch,
			State: contract.GetPlainStateLabel(false),
		})
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeCSVBranchReport writes the classification data to a CSV writer.
func writeCSVBranchReport(w *csv.Writer, report *schema.BranchReport) error {
	// 1. Write Header Row
	header := []string{
		"branch",
		"state",
		"current",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	writeRows := func(branches []string, merged bool) error {
		for _, branch := range branches {
			row := []string{
				branch,                                // Branch entry as listed
				contract.GetPlainStateLabel(merged),   // Merge state
				strconv.FormatBool(isCurrent(branch, report.Current)), // Active branch flag
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeRows(report.Merged, true); err != nil {
		return err
	}
	return writeRows(report.Unmerged, false)
}

// isCurrent reports whether a branch entry names the checked-out branch once
// its marker is stripped.
func isCurrent(branch, current string) bool {
	return contract.SanitizeBranchRev(branch) == current
}
