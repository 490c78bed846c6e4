// Package main provides a performance benchmarking tool for the Depmap CLI.
// It measures mining times across different repository sizes and command types,
// running each test multiple times, treating the first successful tracked run as cold
// and averaging the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - depmap binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: click, flask, requests, django
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (untracked average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository    string
	Command       string
	UntrackedTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase      string
	ResultsDir    string
	Timeout       time.Duration
	UntrackedRuns int
	TrackedRuns   int
	TestRepos     []string
	RepoReqs      map[string]string
	RepoRefs      map[string][2]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	repoBase := os.Args[1]

	config := BenchmarkConfig{
		RepoBase:      repoBase,
		ResultsDir:    filepath.Join(os.TempDir(), "depmap_bench_results"),
		Timeout:       5 * time.Minute,
		UntrackedRuns: 3,
		TrackedRuns:   4,
		TestRepos:     []string{"click", "flask", "requests", "django"},
		RepoReqs: map[string]string{
			"click":    "requirements/dev.txt",
			"flask":    "requirements/dev.txt",
			"requests": "requirements-dev.txt",
			"django":   "tests/requirements/py3.txt",
		},
		RepoRefs: map[string][2]string{
			"click":    {"8.0.0", "8.1.0"},
			"flask":    {"2.0.0", "2.3.0"},
			"requests": {"v2.28.0", "v2.31.0"},
			"django":   {"4.1", "4.2"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear accumulated run data using depmap runs clear
	fmt.Printf("Clearing run data...\n")
	clearCmd := exec.Command("depmap", "runs", "clear", "--runs-backend", "sqlite")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run data: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run data cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that depmap binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if depmap is available
	if _, err := exec.LookPath("depmap"); err != nil {
		return fmt.Errorf("depmap binary not found in PATH")
	}

	// Check if repositories exist
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, untracked: %d runs, tracked: %d runs\n",
		len(config.TestRepos), config.Timeout, config.UntrackedRuns, config.TrackedRuns)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		repoPath := filepath.Join(config.RepoBase, repo)

		// Branch classification
		result := runBenchmarkSuite(config, repo, repoPath, "branches", "branch classification", "")
		results = append(results, result)

		reqs, hasReqs := config.RepoReqs[repo]
		if !hasReqs {
			continue
		}

		// Full report
		args := fmt.Sprintf("--requirements %s", reqs)
		result = runBenchmarkSuite(config, repo, repoPath, "report", "full report", args)
		results = append(results, result)

		// Import extraction over a tag range. Commit bounds match by SHA,
		// so tags are resolved up front.
		refs, hasRefs := config.RepoRefs[repo]
		if hasRefs {
			fromSHA, errFrom := resolveRef(repoPath, refs[0])
			toSHA, errTo := resolveRef(repoPath, refs[1])
			if errFrom != nil || errTo != nil {
				fmt.Printf("Skipping import extraction on %s: cannot resolve %s..%s\n", repo, refs[0], refs[1])
				continue
			}
			args = fmt.Sprintf("--requirements %s --from-commit %s --to-commit %s", reqs, fromSHA, toSHA)
			desc := fmt.Sprintf("import extraction (%s -> %s)", refs[0], refs[1])
			result = runBenchmarkSuite(config, repo, repoPath, "imports", desc, args)
			results = append(results, result)
		}
	}

	return results
}

// resolveRef resolves a tag or branch name to its commit SHA
func resolveRef(repoPath, ref string) (string, error) {
	cmd := exec.Command("git", "rev-parse", ref+"^{commit}")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// runBenchmarkSuite runs both untracked and tracked benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, repo)

	// Helper to run a benchmark phase
	runPhase := func(runsBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, repoPath, command, extraArgs, runsBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: Untracked runs
	_, untrackedAvg := runPhase("none", config.UntrackedRuns, "Untracked")

	// Phase 2: Tracked runs
	coldTime, warmAvg := runPhase("sqlite", config.TrackedRuns, "Tracked")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Untracked average: %s, Cold time: %s, Warm average: %s\n", untrackedAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:    repo,
		Command:       command,
		UntrackedTime: untrackedAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a depmap command multiple times with the specified runs backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, repoPath, command, extraArgs, runsBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--runs-backend", runsBackend, "--results-dir", config.ResultsDir}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("depmap", args...)
		cmd.Dir = repoPath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	switch command {
	case "branches":
		completionPhrase = "Classification completed in"
	case "imports":
		completionPhrase = "Extraction completed in"
	default:
		completionPhrase = "Report completed in"
	}

	return strings.Contains(outputStr, completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/depmap_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"repo", "cmd", "untracked_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Command, result.UntrackedTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "branches", "Branch Classification:")
	printCommandSummary(results, "report", "Full Report:")
	printCommandSummary(results, "imports", "Import Extraction:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Untracked: %s, Cold: %s, Warm: %s\n", result.Repository, result.UntrackedTime, result.ColdTime, result.WarmTime)
		}
	}
}
