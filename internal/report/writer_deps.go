package report

import (
	"encoding/csv"
	"io"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
)

// writeJSONDependencyReport marshals the extraction results to JSON with
// each import annotated by its resolved version.
func writeJSONDependencyReport(w io.Writer, report *schema.DependencyReport, versions map[string]string) error {
	// 1. Prepare the data structure for JSON with resolved versions added
	type JSONImport struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	type JSONFileImports struct {
		Path    string       `json:"path"`
		Imports []JSONImport `json:"imports"`
	}
	type JSONDependencyReport struct {
		Files           []JSONFileImports `json:"files"`
		IgnoredFiles    int               `json:"ignored_files"`
		OtherExtensions []string          `json:"other_extensions"`
		CommitCount     int               `json:"commit_count"`
	}

	output := JSONDependencyReport{
		Files:           make([]JSONFileImports, len(report.Files)),
		IgnoredFiles:    report.IgnoredFiles,
		OtherExtensions: report.OtherExtensions,
		CommitCount:     report.CommitCount,
	}
	for i, file := range report.Files {
		entry := JSONFileImports{Path: file.Path}
		for _, dep := range file.Imports {
			entry.Imports = append(entry.Imports, JSONImport{
				Name:    dep,
				Version: contract.ResolveVersion(versions, dep),
			})
		}
		output.Files[i] = entry
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeCSVDependencyReport writes one CSV row per (file, import) pair.
func writeCSVDependencyReport(w *csv.Writer, report *schema.DependencyReport, versions map[string]string) error {
	// 1. Write Header Row
	header := []string{
		"file",
		"import",
		"version",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, file := range report.Files {
		for _, dep := range file.Imports {
			row := []string{
				file.Path, // Tracked file path
				dep,       // Stored import string
				contract.ResolveVersion(versions, dep), // Manifest version or "unknown"
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
