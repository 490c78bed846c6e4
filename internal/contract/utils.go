package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Branch state label constants.
const (
	MergedValue   = "Merged"   // Merged state
	UnmergedValue = "Unmerged" // Unmerged state
)

// Color variables for console output.
var (
	MergedColor   = color.New(color.FgGreen)              // MergedColor represents settled, integrated work.
	UnmergedColor = color.New(color.FgYellow, color.Bold) // UnmergedColor represents work still in flight.
	HeaderColor   = color.New(color.FgCyan, color.Bold)   // HeaderColor marks report section headers.
)

// GetPlainStateLabel returns a plain text label for a branch's merge state.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainStateLabel(merged bool) string {
	if merged {
		return MergedValue
	}
	return UnmergedValue
}

// GetColorStateLabel returns a colored text label for console output (table).
// It uses GetPlainStateLabel to determine the string, and then applies the appropriate color.
func GetColorStateLabel(merged bool) string {
	text := GetPlainStateLabel(merged)
	if merged {
		return MergedColor.Sprint(text)
	}
	return UnmergedColor.Sprint(text)
}

// UnknownVersion is reported for imports without a manifest entry.
const UnknownVersion = "unknown"

// ResolveVersion returns the declared version for a collected import. The
// lookup key is the substring before the first '.' of the stored import
// string; imports without a manifest entry resolve to UnknownVersion.
func ResolveVersion(versions map[string]string, dep string) string {
	pkg := dep
	if idx := strings.Index(dep, "."); idx >= 0 {
		pkg = dep[:idx]
	}
	if version, ok := versions[pkg]; ok {
		return version
	}
	return UnknownVersion
}

// SanitizeBranchRev strips the "* " marker git places on the active branch,
// plus surrounding whitespace, leaving a name usable as a revision.
func SanitizeBranchRev(branch string) string {
	return strings.TrimSpace(strings.ReplaceAll(branch, "*", ""))
}

// BranchFileName converts a branch entry into a filesystem-safe stem for
// per-branch artifacts. Slashes in branch names would otherwise nest
// directories under the results dir.
func BranchFileName(branch string) string {
	return strings.ReplaceAll(SanitizeBranchRev(branch), "/", "_")
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path falls back to os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".depmap_runs.db"
	}
	return filepath.Join(homeDir, ".depmap_runs.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
