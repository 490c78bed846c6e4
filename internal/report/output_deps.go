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

// PrintDependencyReport outputs the extraction results, dispatching based on
// the output format configured.
func PrintDependencyReport(report *schema.DependencyReport, versions map[string]string, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONDependencyReport(report, versions, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVDependencyReport(report, versions, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printDependencyTable(report, versions, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONDependencyReport handles opening the file and calling the JSON writer.
func printJSONDependencyReport(report *schema.DependencyReport, versions map[string]string, cfg *contract.Config) error {
	return writeWithFile(cfg, func(w io.Writer) error {
		return writeJSONDependencyReport(w, report, versions)
	}, "Wrote JSON")
}

// printCSVDependencyReport handles opening the file and calling the CSV writer.
func printCSVDependencyReport(report *schema.DependencyReport, versions map[string]string, cfg *contract.Config) error {
	return writeWithFile(cfg, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVDependencyReport(csvWriter, report, versions)
	}, "Wrote CSV")
}

// printDependencyTable prints per-file import counts in a three-column table.
func printDependencyTable(report *schema.DependencyReport, versions map[string]string, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	table.Header([]string{"File", "Imports", "Unresolved"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	maxWidth := GetMaxTablePathWidth(cfg)
	for _, file := range report.Files {
		unresolved := 0
		for _, dep := range file.Imports {
			if contract.ResolveVersion(versions, dep) == contract.UnknownVersion {
				unresolved++
			}
		}
		data = append(data, []string{
			contract.TruncatePath(file.Path, maxWidth),
			fmt.Sprintf("%d", len(file.Imports)),
			fmt.Sprintf("%d", unresolved),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("Showing %d tracked files (ignored: %d, other extensions: %d)\n",
		len(report.Files), report.IgnoredFiles, len(report.OtherExtensions))
	fmt.Printf("Extraction completed in %v across %d commits\n", duration, report.CommitCount)
	return nil
}
