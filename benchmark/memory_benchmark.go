package benchmark

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/geotrace/routesegments/geo"
)

// PoolBenchmarkSuite isolates the effect of reusing Fréchet row buffers
// (the saving the discovery package's frechetPool exists for) by
// comparing geo.DiscreteFrechet, which allocates per call, against
// geo.FrechetWithBuffers with one reused buffer pair. The frechetPool
// itself is not exercised here.
type PoolBenchmarkSuite struct {
	results []BenchmarkResults
}

// NewPoolBenchmarkSuite creates a new pool benchmark suite.
func NewPoolBenchmarkSuite() *PoolBenchmarkSuite {
	return &PoolBenchmarkSuite{results: make([]BenchmarkResults, 0)}
}

// RunPoolBenchmarks runs the pooled-vs-unpooled Fréchet distance
// comparison at a few polyline sizes.
func (suite *PoolBenchmarkSuite) RunPoolBenchmarks() {
	fmt.Println("=== Fréchet Buffer Pool Benchmark Suite ===")

	sizes := []int{10, 50, 200}
	for _, n := range sizes {
		suite.benchmarkWithoutPool(n)
		suite.benchmarkWithPool(n)
	}

	suite.PrintResults()
}

func syntheticPolyline(n int) []geo.Point {
	pts := make([]geo.Point, n)
	for i := 0; i < n; i++ {
		pts[i] = geo.Point{Lat: 46.5, Lon: 15.0 + float64(i)*0.0005}
	}
	return pts
}

func (suite *PoolBenchmarkSuite) benchmarkWithoutPool(n int) {
	p := syntheticPolyline(n)
	q := syntheticPolyline(n)

	var memStats runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&memStats)
	initialMem := memStats.Alloc

	start := time.Now()
	const iterations = 2000
	for i := 0; i < iterations; i++ {
		_ = geo.DiscreteFrechet(p, q) // allocates fresh row buffers every call
	}
	duration := time.Since(start)
	runtime.ReadMemStats(&memStats)

	result := BenchmarkResults{
		TestName:        fmt.Sprintf("FrechetNoPool_%dpts", n),
		Duration:        duration,
		MemoryAllocated: memStats.Alloc - initialMem,
		ItemsProcessed:  iterations,
		ItemsPerSecond:  float64(iterations) / duration.Seconds(),
		PeakMemoryUsage: memStats.Alloc,
		GoroutineCount:  runtime.NumGoroutine(),
	}
	suite.results = append(suite.results, result)
}

func (suite *PoolBenchmarkSuite) benchmarkWithPool(n int) {
	p := syntheticPolyline(n)
	q := syntheticPolyline(n)
	prev := make([]float64, n)
	curr := make([]float64, n)

	var memStats runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&memStats)
	initialMem := memStats.Alloc

	start := time.Now()
	const iterations = 2000
	for i := 0; i < iterations; i++ {
		_ = geo.FrechetWithBuffers(p, q, prev, curr) // reuses the same buffers
	}
	duration := time.Since(start)
	runtime.ReadMemStats(&memStats)

	result := BenchmarkResults{
		TestName:        fmt.Sprintf("FrechetPooled_%dpts", n),
		Duration:        duration,
		MemoryAllocated: memStats.Alloc - initialMem,
		ItemsProcessed:  iterations,
		ItemsPerSecond:  float64(iterations) / duration.Seconds(),
		PeakMemoryUsage: memStats.Alloc,
		GoroutineCount:  runtime.NumGoroutine(),
	}
	suite.results = append(suite.results, result)
}

// GetResults returns all benchmark results.
func (suite *PoolBenchmarkSuite) GetResults() []BenchmarkResults {
	return suite.results
}

// PrintResults prints formatted benchmark results plus a pooling
// improvement summary for each polyline size that ran both variants.
func (suite *PoolBenchmarkSuite) PrintResults() {
	fmt.Println("\n=== Fréchet Buffer Pool Benchmark Results ===")
	fmt.Printf("%-25s %-10s %-12s %-12s %-15s %-12s %-12s\n",
		"Test Name", "Duration", "Memory (KB)", "Items", "Items/sec", "Peak Mem (KB)", "Goroutines")
	fmt.Println(strings.Repeat("-", 130))

	for _, result := range suite.results {
		fmt.Printf("%-25s %-10s %-12d %-12d %-15.2f %-12d %-12d\n",
			result.TestName,
			result.Duration.Round(time.Millisecond),
			result.MemoryAllocated/1024,
			result.ItemsProcessed,
			result.ItemsPerSecond,
			result.PeakMemoryUsage/1024,
			result.GoroutineCount)
	}

	suite.printPoolAnalysis()
}

func (suite *PoolBenchmarkSuite) printPoolAnalysis() {
	fmt.Println("\n=== Pooling Improvement ===")
	for _, n := range []int{10, 50, 200} {
		noPool := suite.findResult(fmt.Sprintf("FrechetNoPool_%dpts", n))
		pooled := suite.findResult(fmt.Sprintf("FrechetPooled_%dpts", n))
		if noPool == nil || pooled == nil || noPool.MemoryAllocated == 0 {
			continue
		}
		memoryImprovement := float64(noPool.MemoryAllocated-pooled.MemoryAllocated) / float64(noPool.MemoryAllocated) * 100
		fmt.Printf("%d points: memory reduction %.2f%%\n", n, memoryImprovement)
	}
}

func (suite *PoolBenchmarkSuite) findResult(testName string) *BenchmarkResults {
	for _, result := range suite.results {
		if result.TestName == testName {
			return &result
		}
	}
	return nil
}
