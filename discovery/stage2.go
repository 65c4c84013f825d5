package discovery

import (
	"github.com/geotrace/routesegments/geo"
	"github.com/geotrace/routesegments/store"
)

// runStage2 is the sequential "details and deduplication" pass:
// Jaccard-like overlap dedup against the already-accepted list, then
// a best-window detail pass per close track.
func runStage2(s *store.Store, prep *preparation, promoted []stage1Result, params Params, refRideIdx int) []Segment {
	var accepted []Segment
	fp := newFrechetPool()

	for _, cand := range promoted {
		if dedupOverlaps(cand.window, accepted, prep, params.DedupOverlapFrac) {
			continue
		}

		seg := buildSegmentDetail(s, prep, fp, cand.window, params, refRideIdx)
		if len(seg.RunRanges) < params.MinRuns {
			// Recomputation found fewer confirmed runs than Stage 1's
			// boolean count (can happen if the best-window search and the
			// early-exit search disagree at the tolerance boundary); drop
			// rather than emit an under-supported segment.
			continue
		}
		accepted = append(accepted, seg)
	}

	return accepted
}

// dedupOverlaps reports whether w overlaps any already-accepted
// segment's ref_range by at least overlapFrac. Both ranges are
// contiguous sub-ranges of the same reference track's index sequence,
// so overlap reduces to interval intersection on their
// [startIdx, endIdx] positions.
func dedupOverlaps(w candidateWindow, accepted []Segment, prep *preparation, overlapFrac float64) bool {
	for _, a := range accepted {
		aStart, aEnd := refWindowOf(prep, a.RefRange)
		lo := max(w.startIdx, aStart)
		hi := min(w.endIdx, aEnd)
		common := hi - lo + 1
		if common <= 0 {
			continue
		}
		sizeW := w.endIdx - w.startIdx + 1
		sizeA := aEnd - aStart + 1
		denom := sizeW
		if sizeA < denom {
			denom = sizeA
		}
		if float64(common)/float64(denom) >= overlapFrac {
			return true
		}
	}
	return false
}

// refWindowOf recovers the [startIdx, endIdx] reference positions of an
// already-built segment's ref_range by locating its first element in
// prep.refIndices. Safe because ref_range is always a contiguous
// sub-slice of prep.refIndices.
func refWindowOf(prep *preparation, refRange []uint32) (startIdx, endIdx int) {
	first := refRange[0]
	for i, gi := range prep.refIndices {
		if gi == first {
			return i, i + len(refRange) - 1
		}
	}
	return 0, len(refRange) - 1
}

// buildSegmentDetail recomputes the candidate polyline/bbox/candidate
// sets and runs the best-window variant per close track, recording
// run ranges. The reference track's run is set directly to candRange
// rather than searched, guaranteeing it always equals ref_range
// exactly.
func buildSegmentDetail(s *store.Store, prep *preparation, fp *frechetPool, w candidateWindow, params Params, refRideIdx int) Segment {
	candRange := candidateIndices(prep, w)
	candPoly := s.Polyline(candRange)
	center, radius := broadPhaseRadius(candPoly, prep)

	runRanges := make(map[int][]uint32, len(prep.closeTracks))
	runRanges[refRideIdx] = candRange

	for _, trackPos := range prep.closeTracks {
		if trackPos == refRideIdx {
			continue
		}
		pti := prep.perTrackIndices[trackPos]
		set := candidateSet(pti, center, radius)

		bestDist := -1.0
		var bestWindow []uint32
		slideWindows(set, len(candRange), func(window []uint32) bool {
			d := frechetTo(s, fp, candPoly, window)
			if d <= params.TolM && (bestDist < 0 || d < bestDist) {
				bestDist = d
				bestWindow = append([]uint32(nil), window...)
			}
			return false // exhaustive: find the best, not the first
		})
		if bestWindow != nil {
			runRanges[trackPos] = fullGlobalRange(bestWindow[0], bestWindow[len(bestWindow)-1])
		}
	}

	return Segment{
		RefRange:          candRange,
		CandidateLengthM:  geo.PolylineLength(candPoly),
		CandidatePolyline: candPoly,
		RunRanges:         runRanges,
	}
}

// fullGlobalRange returns the inclusive ordered range [first, last] of
// global indices. Track indices are assigned densely and in order per
// track (store.BuildStore), so this is always the track's own point
// sequence between the window's extremes.
func fullGlobalRange(first, last uint32) []uint32 {
	out := make([]uint32, 0, last-first+1)
	for gi := first; gi <= last; gi++ {
		out = append(out, gi)
	}
	return out
}
