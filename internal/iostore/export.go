package iostore

import (
	"errors"
	"fmt"

	"github.com/huangsam/depmap/internal/parquet"
)

// ExecuteRunsExport performs the actual export of run data to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total report runs: %d\n", status.TotalRuns)
	fmt.Printf("Total file records: %d\n", status.TableSizes[fileImportsTable])

	// Retrieve all report runs
	reportRuns, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve report runs: %w", err)
	}

	// Retrieve all file imports
	fileImports, err := store.GetAllFileImports()
	if err != nil {
		return fmt.Errorf("failed to retrieve file imports: %w", err)
	}

	// Convert to Parquet format
	parquetReportRuns := parquet.ConvertRunRecords(reportRuns)
	parquetFileImports := parquet.ConvertFileImportRecords(fileImports)

	// Write report runs to Parquet
	reportRunsFile := outputFile + ".report_runs.parquet"
	if err := parquet.WriteReportRunsParquet(parquetReportRuns, reportRunsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	fmt.Printf("Exported %d report runs to: %s\n", len(parquetReportRuns), reportRunsFile)

	// Write file imports to Parquet
	fileImportsFile := outputFile + ".file_imports.parquet"
	if err := parquet.WriteFileImportsParquet(parquetFileImports, fileImportsFile); err != nil {
		return fmt.Errorf("failed to write file imports: %w", err)
	}
	fmt.Printf("Exported %d file import records to: %s\n", len(parquetFileImports), fileImportsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
