package benchmark

import (
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	statusFail = "FAIL"
	statusPass = "OK"
)

// BenchmarkResults holds performance measurement results.
type BenchmarkResults struct {
	TestName        string
	Duration        time.Duration
	MemoryAllocated uint64
	ItemsProcessed  int
	ItemsPerSecond  float64
	PeakMemoryUsage uint64
	GoroutineCount  int
}

// BenchmarkSuite runs comprehensive performance tests over the
// discovery engine's hot paths.
type BenchmarkSuite struct {
	results []BenchmarkResults
}

// NewBenchmarkSuite creates a new benchmark suite.
func NewBenchmarkSuite() *BenchmarkSuite {
	return &BenchmarkSuite{
		results: make([]BenchmarkResults, 0),
	}
}

// BenchmarkRunner provides utilities for running performance benchmarks.
type BenchmarkRunner struct {
	suite *BenchmarkSuite
}

// NewBenchmarkRunner creates a new benchmark runner.
func NewBenchmarkRunner() *BenchmarkRunner {
	return &BenchmarkRunner{
		suite: NewBenchmarkSuite(),
	}
}

// RunFullBenchmarkSuite runs all performance benchmarks.
func (runner *BenchmarkRunner) RunFullBenchmarkSuite() {
	fmt.Println("Starting discovery engine benchmark suite...")
	start := time.Now()

	runner.suite.RunPerformanceProfile()

	duration := time.Since(start)
	fmt.Printf("Benchmark suite completed in %v\n\n", duration)

	runner.suite.PrintResults()
	runner.printPerformanceAnalysis()
}

// RunPoolComparisonSuite runs the reused-buffer vs allocating Fréchet
// comparison.
func (runner *BenchmarkRunner) RunPoolComparisonSuite() {
	fmt.Println("Starting Fréchet buffer pool benchmark suite...")
	start := time.Now()

	poolSuite := NewPoolBenchmarkSuite()
	poolSuite.RunPoolBenchmarks()

	duration := time.Since(start)
	fmt.Printf("Pool benchmark completed in %v\n\n", duration)
}

// printPerformanceAnalysis provides analysis of benchmark results.
func (runner *BenchmarkRunner) printPerformanceAnalysis() {
	results := runner.suite.GetResults()
	if len(results) == 0 {
		return
	}

	fmt.Println("\n=== Performance Analysis ===")

	var totalMemory uint64
	var totalItems int
	var maxThroughput float64
	var slowestTest string
	var fastestTest string
	maxDuration := time.Duration(0)
	minDuration := 24 * time.Hour

	for _, result := range results {
		totalMemory += result.MemoryAllocated
		totalItems += result.ItemsProcessed

		if result.ItemsPerSecond > maxThroughput {
			maxThroughput = result.ItemsPerSecond
		}
		if result.Duration > maxDuration {
			maxDuration = result.Duration
			slowestTest = result.TestName
		}
		if result.Duration < minDuration {
			minDuration = result.Duration
			fastestTest = result.TestName
		}
	}

	fmt.Printf("Total Memory Allocated: %.2f MB\n", float64(totalMemory)/(1024*1024))
	fmt.Printf("Total Items Processed: %d\n", totalItems)
	fmt.Printf("Maximum Throughput: %.2f items/second (%s)\n", maxThroughput, getBestPerformingTest(results))
	fmt.Printf("Fastest Test: %s (Duration: %v)\n", fastestTest, minDuration)
	fmt.Printf("Slowest Test: %s (Duration: %v)\n", slowestTest, maxDuration)

	fmt.Println("\n=== Performance Indicators ===")
	allGood := true

	for _, result := range results {
		status := statusPass
		issues := []string{}

		if result.MemoryAllocated > 100*1024*1024 {
			status = statusFail
			issues = append(issues, "high memory")
			allGood = false
		}
		if result.ItemsPerSecond < 50 {
			status = statusFail
			issues = append(issues, "low throughput")
			allGood = false
		}
		if result.Duration > 10*time.Second {
			status = statusFail
			issues = append(issues, "slow execution")
			allGood = false
		}

		issueText := ""
		if len(issues) > 0 {
			issueText = fmt.Sprintf(" (%s)", strings.Join(issues, ", "))
		}
		fmt.Printf("%s %s%s\n", status, result.TestName, issueText)
	}

	if allGood {
		fmt.Println("\nAll performance tests are within acceptable limits.")
	} else {
		fmt.Println("\nSome performance issues detected; review the indicators above.")
	}
}

// getBestPerformingTest finds the test with highest throughput.
func getBestPerformingTest(results []BenchmarkResults) string {
	maxThroughput := 0.0
	bestTest := ""

	for _, result := range results {
		if result.ItemsPerSecond > maxThroughput {
			maxThroughput = result.ItemsPerSecond
			bestTest = result.TestName
		}
	}
	return bestTest
}

// RunQuickBenchmark runs a quick performance check: KD-tree build plus
// one discovery run over a small synthetic fixture.
func (runner *BenchmarkRunner) RunQuickBenchmark() {
	fmt.Println("Running quick benchmark...")

	runner.suite.profileKDTreeBuild(10, 200)
	runner.suite.profileDiscoveryThroughput(10, 200, 1)

	fmt.Println("Quick benchmark completed!")
	runner.suite.PrintResults()
}

// RunTargetedBenchmark runs a benchmark for a specific component.
func (runner *BenchmarkRunner) RunTargetedBenchmark(component string) {
	fmt.Printf("Running targeted benchmark for: %s\n", component)

	switch component {
	case "kdtree_build":
		runner.suite.profileKDTreeBuild(20, 500)
	case "kdtree_query":
		runner.suite.profileKDTreeQuery(20, 500)
	case "stage1":
		runner.suite.profileStage1CountingPass(20, 500)
	case "discovery":
		runner.suite.profileDiscoveryThroughput(20, 500, 1)
	default:
		log.Printf("Unknown component: %s", component)
		return
	}

	fmt.Printf("Targeted benchmark for %s completed!\n", component)
	runner.suite.PrintResults()
}

// GetPerformanceMetrics returns key performance metrics.
func (runner *BenchmarkRunner) GetPerformanceMetrics() map[string]interface{} {
	results := runner.suite.GetResults()
	metrics := make(map[string]interface{})
	if len(results) == 0 {
		return metrics
	}

	var totalDuration time.Duration
	var totalMemory uint64
	var totalItems int
	var totalThroughput float64

	for _, result := range results {
		totalDuration += result.Duration
		totalMemory += result.MemoryAllocated
		totalItems += result.ItemsProcessed
		totalThroughput += result.ItemsPerSecond
	}

	metrics["total_duration_seconds"] = totalDuration.Seconds()
	metrics["total_memory_mb"] = float64(totalMemory) / (1024 * 1024)
	metrics["total_items_processed"] = totalItems
	metrics["average_throughput"] = totalThroughput / float64(len(results))
	metrics["test_count"] = len(results)

	testMetrics := make(map[string]map[string]interface{})
	for _, result := range results {
		testMetrics[result.TestName] = map[string]interface{}{
			"duration_seconds":    result.Duration.Seconds(),
			"memory_allocated_mb": float64(result.MemoryAllocated) / (1024 * 1024),
			"items_processed":     result.ItemsProcessed,
			"items_per_second":    result.ItemsPerSecond,
			"peak_memory_mb":      float64(result.PeakMemoryUsage) / (1024 * 1024),
			"goroutine_count":     result.GoroutineCount,
		}
	}
	metrics["tests"] = testMetrics
	return metrics
}

// CompareWithBaseline compares current results with a prior run's metrics.
func (runner *BenchmarkRunner) CompareWithBaseline(baseline map[string]interface{}) {
	current := runner.GetPerformanceMetrics()

	fmt.Println("\n=== Performance Comparison with Baseline ===")

	if baseline["average_throughput"] != nil && current["average_throughput"] != nil {
		baselineThroughput := baseline["average_throughput"].(float64)
		currentThroughput := current["average_throughput"].(float64)
		improvement := ((currentThroughput - baselineThroughput) / baselineThroughput) * 100

		switch {
		case improvement > 5:
			fmt.Printf("Throughput improved by %.2f%% (%.2f -> %.2f items/sec)\n",
				improvement, baselineThroughput, currentThroughput)
		case improvement < -5:
			fmt.Printf("Throughput decreased by %.2f%% (%.2f -> %.2f items/sec)\n",
				-improvement, baselineThroughput, currentThroughput)
		default:
			fmt.Printf("Throughput stable: %.2f items/sec (+-%.2f%%)\n",
				currentThroughput, improvement)
		}
	}

	if baseline["total_memory_mb"] != nil && current["total_memory_mb"] != nil {
		baselineMemory := baseline["total_memory_mb"].(float64)
		currentMemory := current["total_memory_mb"].(float64)
		memoryChange := ((currentMemory - baselineMemory) / baselineMemory) * 100

		switch {
		case memoryChange > 10:
			fmt.Printf("Memory usage increased by %.2f%% (%.2f -> %.2f MB)\n",
				memoryChange, baselineMemory, currentMemory)
		case memoryChange < -10:
			fmt.Printf("Memory usage improved by %.2f%% (%.2f -> %.2f MB)\n",
				-memoryChange, baselineMemory, currentMemory)
		default:
			fmt.Printf("Memory usage stable: %.2f MB (+-%.2f%%)\n",
				currentMemory, memoryChange)
		}
	}
}
