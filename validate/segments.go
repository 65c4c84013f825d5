package validate

import (
	"math"

	"github.com/geotrace/routesegments/discovery"
	"github.com/geotrace/routesegments/geo"
	"github.com/geotrace/routesegments/store"
)

// Segments checks a discovery result's structural invariants: every
// segment's support, the reference track's exact run, per-run Fréchet
// tolerance, candidate length accuracy, and pairwise dedup-overlap
// across the emitted set.
func Segments(segments []discovery.Segment, s *store.Store, refRideIdx int, params discovery.Params) Report {
	var issues []Issue

	for i, seg := range segments {
		issues = append(issues, checkSupport(i, seg, params)...)
		issues = append(issues, checkReferenceRun(i, seg, refRideIdx)...)
		issues = append(issues, checkRunTolerance(i, seg, s, params)...)
		issues = append(issues, checkCandidateLength(i, seg)...)
	}
	issues = append(issues, checkPairwiseDedup(segments, params)...)

	return newReport(issues)
}

func checkSupport(i int, seg discovery.Segment, params discovery.Params) []Issue {
	if len(seg.RunRanges) < params.MinRuns {
		return []Issue{errorf("min_runs", "segment %d has %d runs, want >= %d", i, len(seg.RunRanges), params.MinRuns)}
	}
	return nil
}

func checkReferenceRun(i int, seg discovery.Segment, refRideIdx int) []Issue {
	run, ok := seg.RunRanges[refRideIdx]
	if !ok {
		return []Issue{errorf("ref_run_missing", "segment %d has no run on the reference track %d", i, refRideIdx)}
	}
	if len(run) != len(seg.RefRange) {
		return []Issue{errorf("ref_run_mismatch", "segment %d reference run length %d != ref_range length %d", i, len(run), len(seg.RefRange))}
	}
	for k := range run {
		if run[k] != seg.RefRange[k] {
			return []Issue{errorf("ref_run_mismatch", "segment %d reference run differs from ref_range at position %d", i, k)}
		}
	}
	return nil
}

func checkRunTolerance(i int, seg discovery.Segment, s *store.Store, params discovery.Params) []Issue {
	var issues []Issue
	for trackPos, run := range seg.RunRanges {
		d := geo.DiscreteFrechet(seg.CandidatePolyline, s.Polyline(run))
		if d > params.TolM {
			issues = append(issues, errorf("tol_m", "segment %d run on track %d has Fréchet distance %.3f > tol_m %.3f", i, trackPos, d, params.TolM))
		}
	}
	return issues
}

func checkCandidateLength(i int, seg discovery.Segment) []Issue {
	actual := geo.PolylineLength(seg.CandidatePolyline)
	if math.Abs(actual-seg.CandidateLengthM) > 0.5 {
		return []Issue{errorf("candidate_length_m", "segment %d candidate_length_m %.3f differs from haversine arc length %.3f by more than 0.5 m", i, seg.CandidateLengthM, actual)}
	}
	return nil
}

func checkPairwiseDedup(segments []discovery.Segment, params discovery.Params) []Issue {
	var issues []Issue
	for i := 0; i < len(segments); i++ {
		for j := i + 1; j < len(segments); j++ {
			frac := overlapFrac(segments[i].RefRange, segments[j].RefRange)
			if frac >= params.DedupOverlapFrac {
				issues = append(issues, errorf("dedup_overlap", "segments %d and %d overlap %.2f >= dedup_overlap_frac %.2f", i, j, frac, params.DedupOverlapFrac))
			}
		}
	}
	return issues
}

// overlapFrac computes the Jaccard-like overlap used by the dedup rule
// between two reference ranges. Both are contiguous, ascending runs of
// global indices (candidateIndices always returns a contiguous slice of
// the reference track's index sequence), so overlap reduces to interval
// intersection on their first/last values.
func overlapFrac(a, b []uint32) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	lo := a[0]
	if b[0] > lo {
		lo = b[0]
	}
	hi := a[len(a)-1]
	if b[len(b)-1] < hi {
		hi = b[len(b)-1]
	}
	if hi < lo {
		return 0
	}
	common := float64(hi-lo) + 1
	denom := float64(len(a))
	if len(b) < len(a) {
		denom = float64(len(b))
	}
	return common / denom
}
