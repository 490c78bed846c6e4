package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBranchReport outputs the branch classification, dispatching based on
// the output format configured.
func PrintBranchReport(report *schema.BranchReport, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONBranchReport(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVBranchReport(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printBranchTable(report, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONBranchReport handles opening the file and calling the JSON writer.
func printJSONBranchReport(report *schema.BranchReport, cfg *contract.Config) error {
	return writeWithFile(cfg, func(w io.Writer) error {
		return writeJSONBranchReport(w, report)
	}, "Wrote JSON")
}

// printCSVBranchReport handles opening the file and calling the CSV writer.
func printCSVBranchReport(report *schema.BranchReport, cfg *contract.Config) error {
	return writeWithFile(cfg, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVBranchReport(csvWriter, report)
	}, "Wrote CSV")
}

// printBranchTable prints the classification in a two-column table.
func printBranchTable(report *schema.BranchReport, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	table.Header([]string{"Branch", "State"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	// 3. Prepare Data Rows
	stateLabel := contract.GetColorStateLabel
	if !cfg.UseColors {
		stateLabel = contract.GetPlainStateLabel
	}
	var data [][]string
	maxWidth := GetMaxTablePathWidth(cfg)
	for _, branch := range report.Merged {
		data = append(data, []string{
			contract.TruncatePath(branch, maxWidth),
			stateLabel(true),
		})
	}
	for _, branch := range report.Unmerged {
		data = append(data, []string{
			contract.TruncatePath(branch, maxWidth),
			stateLabel(false),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("Showing %d merged and %d unmerged branches (current: %s)\n",
		len(report.Merged), len(report.Unmerged), report.Current)
	fmt.Printf("Classification completed in %v\n", duration)
	return nil
}
