// Package main provides a performance benchmarking tool for the Triage CLI.
// It measures execution times across repositories of different backlog sizes
// and command types, running each test multiple times, treating the first
// successful run as cold and averaging the rest as warm, generating CSV
// output for performance analysis and documentation.
//
// Prerequisites:
// - triage binary installed and available in PATH
// - A GitHub token exported in the configured token env var
//
// Usage: go run benchmark/main.go [owner/repo,owner/repo,...]
//
//	Repositories are comma-separated owner/name slugs.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-snapshot average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository     string
	Command        string
	NoSnapshotTime string
	ColdTime       string
	WarmTime       string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout        time.Duration
	Workers        int
	NoSnapshotRuns int
	SnapshotRuns   int
	TestRepos      []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [owner/repo,owner/repo,...]\n", os.Args[0])
		os.Exit(1)
	}
	repos := strings.Split(os.Args[1], ",")

	config := BenchmarkConfig{
		Timeout:        5 * time.Minute,
		Workers:        8,
		NoSnapshotRuns: 3,
		SnapshotRuns:   4,
		TestRepos:      repos,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the snapshot cache so every repo starts cold
	fmt.Printf("Clearing snapshots...\n")
	clearCmd := exec.Command("triage", "snapshot", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear snapshots: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Snapshots cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the triage binary exists and repos look valid
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if triage is available
	if _, err := exec.LookPath("triage"); err != nil {
		return fmt.Errorf("triage binary not found in PATH")
	}

	// Check that repository slugs are owner/name pairs
	for _, repo := range config.TestRepos {
		parts := strings.Split(repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("invalid repository slug %q. expected owner/name", repo)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d workers, no-snapshot: %d runs, snapshot: %d runs\n",
		len(config.TestRepos), config.Timeout, config.Workers, config.NoSnapshotRuns, config.SnapshotRuns)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		// Priority ranking over the whole backlog
		result := runBenchmarkSuite(config, repo, "prioritize", "priority ranking", "")
		results = append(results, result)

		// Plain listing (same fetch, lighter scoring path)
		result = runBenchmarkSuite(config, repo, "list", "issue listing", "")
		results = append(results, result)

		// Stale detection
		result = runBenchmarkSuite(config, repo, "stale", "stale detection", "")
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both no-snapshot and snapshot benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, repo, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, repo)

	// Helper to run a benchmark phase
	runPhase := func(snapshotBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, repo, command, extraArgs, snapshotBackend, numRuns)
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

	// Phase 1: No-snapshot runs (every run hits the GitHub API)
	_, noSnapshotAvg := runPhase("none", config.NoSnapshotRuns, "No-snapshot")

	// Phase 2: Snapshot runs (first run populates, the rest read from SQLite)
	coldTime, warmAvg := runPhase("sqlite", config.SnapshotRuns, "Snapshot")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-snapshot average: %s, Cold time: %s, Warm average: %s\n", noSnapshotAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:     repo,
		Command:        command,
		NoSnapshotTime: noSnapshotAvg,
		ColdTime:       coldTimeStr,
		WarmTime:       warmAvg,
	}
}

// runBenchmark executes a triage command multiple times with the specified snapshot backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, repo, command, extraArgs, snapshotBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--repository", repo, "--snapshot-backend", snapshotBackend,
		"--workers", fmt.Sprintf("%d", config.Workers)}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("triage", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
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

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)

	return strings.Contains(outputStr, "Triage completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/triage_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"repo", "cmd", "no_snapshot_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Command, result.NoSnapshotTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "prioritize", "Priority Ranking:")
	printCommandSummary(results, "list", "Issue Listing:")
	printCommandSummary(results, "stale", "Stale Detection:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-30s: No-snapshot: %s, Cold: %s, Warm: %s\n", result.Repository, result.NoSnapshotTime, result.ColdTime, result.WarmTime)
		}
	}
}
