package report

import (
	"fmt"
	"io"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
)

// writeBranchLines writes the two-section branch listing. Merged entries keep
// the marker git places on the active branch.
func writeBranchLines(w io.Writer, report *schema.BranchReport) error {
	if _, err := fmt.Fprint(w, "Merged branches:\n"); err != nil {
		return err
	}
	for _, branch := range report.Merged {
		if _, err := fmt.Fprintf(w, "%s\n", branch); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "\nUnmerged branches:\n"); err != nil {
		return err
	}
	for _, branch := range report.Unmerged {
		if _, err := fmt.Fprintf(w, "%s\n", branch); err != nil {
			return err
		}
	}
	return nil
}

// writeHistoryBlocks writes commit records as five-field blocks separated by
// blank lines. The layout is positional and whitespace-sensitive; keep it
// stable for downstream scripts.
func writeHistoryBlocks(w io.Writer, commits []schema.CommitRecord) error {
	for _, commit := range commits {
		if _, err := fmt.Fprintf(w, "SHA: %s\nAuthor: %s\nDate: %s\nMessage: %s\nFiles:\n",
			commit.SHA, commit.Author, commit.Date, commit.Message); err != nil {
			return err
		}
		for _, stat := range commit.Files {
			if _, err := fmt.Fprintf(w, "  %s: +%d -%d (%d lines)\n",
				stat.Path, stat.Insertions, stat.Deletions, stat.Lines()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// writeDependencyLines writes one block per tracked file with its imports
// annotated by the resolved manifest version.
func writeDependencyLines(w io.Writer, files []schema.FileImports, versions map[string]string) error {
	for _, file := range files {
		if _, err := fmt.Fprintf(w, "File: %s\nDependencies:\n", file.Path); err != nil {
			return err
		}
		for _, dep := range file.Imports {
			if _, err := fmt.Fprintf(w, "  %s = %s\n", dep, contract.ResolveVersion(versions, dep)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// writeIgnoredCount writes the single-line counter of files skipped for
// syntax issues.
func writeIgnoredCount(w io.Writer, count int) error {
	_, err := fmt.Fprintf(w, "Number of ignored files due to syntax issues: %d\n", count)
	return err
}

// writeOtherExtensions lists non-Python paths touched across history, one per
// line, duplicates kept.
func writeOtherExtensions(w io.Writer, paths []string) error {
	if _, err := fmt.Fprint(w, "Files with different extensions:\n"); err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintf(w, "  %s\n", path); err != nil {
			return err
		}
	}
	return nil
}
