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

// PrintBranchHistories outputs a per-branch history summary, dispatching
// based on the output format configured.
func PrintBranchHistories(histories []schema.BranchHistory, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONBranchHistories(histories, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVBranchHistories(histories, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printHistoryTable(histories, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONBranchHistories handles opening the file and calling the JSON writer.
func printJSONBranchHistories(histories []schema.BranchHistory, cfg *contract.Config) error {
	return writeWithFile(cfg, func(w io.Writer) error {
		return writeJSONBranchHistories(w, histories)
	}, "Wrote JSON")
}

// printCSVBranchHistories handles opening the file and calling the CSV writer.
func printCSVBranchHistories(histories []schema.BranchHistory, cfg *contract.Config) error {
	return writeWithFile(cfg, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVBranchHistories(csvWriter, histories)
	}, "Wrote CSV")
}

// printHistoryTable prints per-branch change totals in a five-column table.
func printHistoryTable(histories []schema.BranchHistory, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	table.Header([]string{"Branch", "Commits", "Files", "Insertions", "Deletions"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	maxWidth := GetMaxTablePathWidth(cfg)
	totalCommits := 0
	for _, history := range histories {
		files, insertions, deletions := historyTotals(history)
		totalCommits += len(history.Commits)
		data = append(data, []string{
			contract.TruncatePath(history.Branch, maxWidth),
			fmt.Sprintf("%d", len(history.Commits)),
			fmt.Sprintf("%d", files),
			fmt.Sprintf("%d", insertions),
			fmt.Sprintf("%d", deletions),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("Showing history for %d branches (total commits: %d)\n", len(histories), totalCommits)
	fmt.Printf("History dump completed in %v\n", duration)
	return nil
}
