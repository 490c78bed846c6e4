package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintReportSummary outputs the counters of a full report run, dispatching
// based on the output format configured.
func PrintReportSummary(summary *schema.ReportSummary, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONReportSummary(summary, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVReportSummary(summary, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printSummaryTable(summary, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONReportSummary handles opening the file and calling the JSON writer.
func printJSONReportSummary(summary *schema.ReportSummary, cfg *contract.Config) error {
	return writeWithFile(cfg, func(w io.Writer) error {
		return writeJSON(w, summary)
	}, "Wrote JSON")
}

// printCSVReportSummary handles opening the file and calling the CSV writer.
func printCSVReportSummary(summary *schema.ReportSummary, cfg *contract.Config) error {
	header := []string{
		"repo_path",
		"results_dir",
		"merged_branches",
		"unmerged_branches",
		"history_files",
		"commit_count",
		"tracked_files",
		"ignored_files",
		"other_files",
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			row := []string{
				summary.RepoPath,
				summary.ResultsDir,
				strconv.Itoa(summary.MergedBranches),
				strconv.Itoa(summary.UnmergedBranches),
				strconv.Itoa(summary.HistoryFiles),
				strconv.Itoa(summary.CommitCount),
				strconv.Itoa(summary.TrackedFiles),
				strconv.Itoa(summary.IgnoredFiles),
				strconv.Itoa(summary.OtherFiles),
			}
			return csvWriter.Write(row)
		})
	}, "Wrote CSV")
}

// printSummaryTable prints the run counters in a two-column table.
func printSummaryTable(summary *schema.ReportSummary, cfg *contract.Config, duration time.Duration) error {
	if cfg.UseEmojis {
		fmt.Println(contract.HeaderColor.Sprint("🔍 Repository report"))
	} else {
		fmt.Println(contract.HeaderColor.Sprint("Repository report"))
	}

	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	table.Header([]string{"Metric", "Value"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	// 3. Prepare Data Rows
	maxWidth := GetMaxTablePathWidth(cfg)
	data := [][]string{
		{"Repository", contract.TruncatePath(summary.RepoPath, maxWidth)},
		{"Results dir", summary.ResultsDir},
		{"Merged branches", strconv.Itoa(summary.MergedBranches)},
		{"Unmerged branches", strconv.Itoa(summary.UnmergedBranches)},
		{"History files", strconv.Itoa(summary.HistoryFiles)},
		{"Commits scanned", strconv.Itoa(summary.CommitCount)},
		{"Tracked files", strconv.Itoa(summary.TrackedFiles)},
		{"Ignored files", strconv.Itoa(summary.IgnoredFiles)},
		{"Other extensions", strconv.Itoa(summary.OtherFiles)},
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("Report completed in %v\n", duration)
	return nil
}
