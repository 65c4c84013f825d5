package benchmark

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/geotrace/routesegments/discovery"
	"github.com/geotrace/routesegments/kdtree"
	"github.com/geotrace/routesegments/telemetry"
)

// RunPerformanceProfile runs a comprehensive performance profile over
// the discovery engine's hot paths.
func (suite *BenchmarkSuite) RunPerformanceProfile() {
	suite.profileKDTreeBuild(20, 500)
	suite.profileKDTreeQuery(20, 500)
	suite.profileStage1CountingPass(20, 500)
	suite.profileDiscoveryThroughput(20, 500, 1)
	suite.profileDiscoveryThroughput(50, 500, 1)
	suite.profileDiscoveryThroughput(20, 500, 3)
}

// profileKDTreeBuild profiles per-track KD-tree construction over a
// synthetic fixture of numTracks tracks, pointCount points each.
func (suite *BenchmarkSuite) profileKDTreeBuild(numTracks, pointCount int) {
	s := buildSyntheticStore(numTracks, pointCount)

	var memStats runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&memStats)
	initialMem := memStats.Alloc

	start := time.Now()

	inputs := make([]kdtree.TrackPointsInput, s.NumTracks())
	for i := 0; i < s.NumTracks(); i++ {
		pos := i + 1
		idx := s.TrackIndices(pos)
		inputs[i] = kdtree.TrackPointsInput{
			TrackPos:      pos,
			Points:        s.Polyline(idx),
			GlobalIndices: idx,
		}
	}
	indices := kdtree.BuildPerTrackIndicesParallel(inputs)

	duration := time.Since(start)
	runtime.ReadMemStats(&memStats)

	result := BenchmarkResults{
		TestName:        fmt.Sprintf("KDTreeBuild_%dtracks_%dpts", numTracks, pointCount),
		Duration:        duration,
		MemoryAllocated: memStats.Alloc - initialMem,
		ItemsProcessed:  len(indices),
		ItemsPerSecond:  float64(len(indices)) / duration.Seconds(),
		PeakMemoryUsage: memStats.Alloc,
		GoroutineCount:  runtime.NumGoroutine(),
	}

	suite.results = append(suite.results, result)
}

// profileKDTreeQuery profiles radius queries against one track's
// per-track KD-tree, repeated once per point in the track.
func (suite *BenchmarkSuite) profileKDTreeQuery(numTracks, pointCount int) {
	s := buildSyntheticStore(numTracks, pointCount)
	idx := s.TrackIndices(1)
	points := s.Polyline(idx)
	pti := kdtree.BuildPerTrackIndex(1, points, idx)

	var memStats runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&memStats)
	initialMem := memStats.Alloc

	start := time.Now()
	totalHits := 0
	for _, p := range points {
		totalHits += len(pti.InRangeGlobal(p, 0.001))
	}
	duration := time.Since(start)
	runtime.ReadMemStats(&memStats)

	result := BenchmarkResults{
		TestName:        fmt.Sprintf("KDTreeQuery_%dpts", pointCount),
		Duration:        duration,
		MemoryAllocated: memStats.Alloc - initialMem,
		ItemsProcessed:  len(points),
		ItemsPerSecond:  float64(len(points)) / duration.Seconds(),
		PeakMemoryUsage: memStats.Alloc,
		GoroutineCount:  runtime.NumGoroutine(),
	}

	suite.results = append(suite.results, result)
}

// profileStage1CountingPass times one full FindOverlappingSegments run
// over a synthetic fixture; Stage 1's wall time is not separated from
// Stage 2's. Items processed is the number of close tracks.
func (suite *BenchmarkSuite) profileStage1CountingPass(numTracks, pointCount int) {
	s := buildSyntheticStore(numTracks, pointCount)

	var memStats runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&memStats)
	initialMem := memStats.Alloc

	start := time.Now()
	params := discovery.NewParams().WithMaxLengthM(200).WithTolM(5).WithMinRuns(2)
	segments, closeTracks, err := discovery.FindOverlappingSegments(s, 1, params, telemetry.NoopObserver{})
	duration := time.Since(start)
	runtime.ReadMemStats(&memStats)

	processed := len(closeTracks)
	if err != nil {
		processed = 0
	}

	result := BenchmarkResults{
		TestName:        fmt.Sprintf("Stage1CountingPass_%dtracks_%dpts", numTracks, pointCount),
		Duration:        duration,
		MemoryAllocated: memStats.Alloc - initialMem,
		ItemsProcessed:  processed,
		ItemsPerSecond:  float64(processed) / duration.Seconds(),
		PeakMemoryUsage: memStats.Alloc,
		GoroutineCount:  runtime.NumGoroutine(),
	}
	_ = segments

	suite.results = append(suite.results, result)
}

// profileDiscoveryThroughput profiles end-to-end
// discovery.FindOverlappingSegments over a synthetic fixture sized by
// numTracks/pointCount, at the given window_step.
func (suite *BenchmarkSuite) profileDiscoveryThroughput(numTracks, pointCount, windowStep int) {
	s := buildSyntheticStore(numTracks, pointCount)

	var memStats runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&memStats)
	initialMem := memStats.Alloc

	start := time.Now()
	params := discovery.NewParams().WithMaxLengthM(200).WithTolM(5).WithMinRuns(2).WithWindowStep(windowStep)
	segments, _, _ := discovery.FindOverlappingSegments(s, 1, params, telemetry.NoopObserver{})
	duration := time.Since(start)
	runtime.ReadMemStats(&memStats)

	result := BenchmarkResults{
		TestName:        fmt.Sprintf("Discovery_%dtracks_%dpts_step%d", numTracks, pointCount, windowStep),
		Duration:        duration,
		MemoryAllocated: memStats.Alloc - initialMem,
		ItemsProcessed:  len(segments),
		ItemsPerSecond:  float64(len(segments)) / duration.Seconds(),
		PeakMemoryUsage: memStats.Alloc,
		GoroutineCount:  runtime.NumGoroutine(),
	}

	suite.results = append(suite.results, result)
}

// GetResults returns all benchmark results.
func (suite *BenchmarkSuite) GetResults() []BenchmarkResults {
	return suite.results
}

// PrintResults prints formatted benchmark results, plus a per-item cost
// column so a slow, low-item-count profile (e.g. one discovery run over
// a handful of candidates) isn't misread next to a fast, high-item-count
// one (e.g. per-point KD-tree queries) just by comparing raw durations.
func (suite *BenchmarkSuite) PrintResults() {
	fmt.Println("=== Performance Benchmark Results ===")
	fmt.Printf("%-30s %-10s %-12s %-12s %-15s %-14s %-12s %-12s\n",
		"Test Name", "Duration", "Memory (KB)", "Items", "Items/sec", "ns/item", "Peak Mem (KB)", "Goroutines")
	fmt.Println(strings.Repeat("-", 140))

	for _, result := range suite.results {
		fmt.Printf("%-30s %-10s %-12d %-12d %-15.2f %-14d %-12d %-12d\n",
			result.TestName,
			result.Duration.Round(time.Millisecond),
			result.MemoryAllocated/1024,
			result.ItemsProcessed,
			result.ItemsPerSecond,
			nsPerItem(result),
			result.PeakMemoryUsage/1024,
			result.GoroutineCount)
	}
}

// nsPerItem is the average cost of one processed item, 0 if nothing was
// processed.
func nsPerItem(result BenchmarkResults) int64 {
	if result.ItemsProcessed == 0 {
		return 0
	}
	return result.Duration.Nanoseconds() / int64(result.ItemsProcessed)
}
