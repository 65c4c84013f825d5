package discovery

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/geotrace/routesegments/store"
	"github.com/geotrace/routesegments/telemetry"
)

// runStage1 is the parallel counting pass. One task per element of
// prep.candidates writes into its own slot of a preallocated output
// slice, so the result order is independent of goroutine scheduling
// and no shared append or lock is needed.
func runStage1(s *store.Store, prep *preparation, params Params, obs telemetry.Observer) []stage1Result {
	results := make([]stage1Result, len(prep.candidates))
	fp := newFrechetPool() // sync.Pool is safe for concurrent use across the fan-out below

	var g errgroup.Group
	g.SetLimit(max(1, runtime.NumCPU()))

	for i, w := range prep.candidates {
		i, w := i, w
		g.Go(func() error {
			results[i] = stage1Result{
				window: w,
				count:  countSupportingTracks(s, prep, fp, w, params),
			}
			obs.OnCandidateDone(i+1, len(prep.candidates))
			return nil
		})
	}
	_ = g.Wait() // counting never returns an error

	return results
}

// countSupportingTracks counts close tracks that support one candidate
// window: build its polyline, broad-phase query every close track,
// narrow-phase slide for an admissible window, early-exit on the first
// Fréchet match within tolerance.
func countSupportingTracks(s *store.Store, prep *preparation, fp *frechetPool, w candidateWindow, params Params) int {
	candRange := candidateIndices(prep, w)
	candPoly := s.Polyline(candRange)
	center, radius := broadPhaseRadius(candPoly, prep)

	count := 0
	for _, trackPos := range prep.closeTracks {
		pti := prep.perTrackIndices[trackPos]
		set := candidateSet(pti, center, radius)

		matched := false
		slideWindows(set, len(candRange), func(window []uint32) bool {
			if frechetTo(s, fp, candPoly, window) <= params.TolM {
				matched = true
				return true
			}
			return false
		})
		if matched {
			count++
		}
	}
	return count
}
