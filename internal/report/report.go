// Package report has output and writer logic.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
)

// Artifact file names under the results directory.
const (
	BranchesFile        = "branches.txt"
	DependenciesFile    = "dependencies.txt"
	IgnoredFilesFile    = "ignored_files.txt"
	OtherExtensionsFile = "other_extensions.txt"

	historySuffix = "_commit_history.txt"
)

// ReportWriter provides a unified interface for all results-dir artifacts.
// It encapsulates the text formats and provides a clean API for the core logic.
type ReportWriter struct {
	cfg *contract.Config
}

// NewReportWriter creates a new instance of the artifact writer.
func NewReportWriter(cfg *contract.Config) *ReportWriter {
	return &ReportWriter{cfg: cfg}
}

// HistoryFileName returns the artifact name for one branch's history dump.
func HistoryFileName(branch string) string {
	return contract.BranchFileName(branch) + historySuffix
}

// WriteBranchReport writes the branch classification artifact.
func (rw *ReportWriter) WriteBranchReport(report *schema.BranchReport) error {
	return rw.writeArtifact(BranchesFile, func(w io.Writer) error {
		return writeBranchLines(w, report)
	}, "Wrote branches")
}

// WriteBranchHistory writes one branch's commit history artifact.
func (rw *ReportWriter) WriteBranchHistory(history schema.BranchHistory) error {
	return rw.writeArtifact(HistoryFileName(history.Branch), func(w io.Writer) error {
		return writeHistoryBlocks(w, history.Commits)
	}, "Wrote commit history")
}

// WriteDependencyReport writes the dependency, ignored-count and
// other-extension artifacts in one pass.
func (rw *ReportWriter) WriteDependencyReport(report *schema.DependencyReport, versions map[string]string) error {
	if err := rw.writeArtifact(DependenciesFile, func(w io.Writer) error {
		return writeDependencyLines(w, report.Files, versions)
	}, "Wrote dependencies"); err != nil {
		return err
	}
	if err := rw.writeArtifact(IgnoredFilesFile, func(w io.Writer) error {
		return writeIgnoredCount(w, report.IgnoredFiles)
	}, "Wrote ignored count"); err != nil {
		return err
	}
	return rw.writeArtifact(OtherExtensionsFile, func(w io.Writer) error {
		return writeOtherExtensions(w, report.OtherExtensions)
	}, "Wrote other extensions")
}

// writeArtifact handles the common pattern of creating an artifact file under
// the results directory, writing to it, and confirming on stderr.
func (rw *ReportWriter) writeArtifact(name string, writer func(io.Writer) error, successMsg string) error {
	if err := os.MkdirAll(rw.cfg.ResultsDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(rw.cfg.ResultsDir, name)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if err := writer(file); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s%s to %s\n", savePrefix(rw.cfg), successMsg, path)
	return nil
}
