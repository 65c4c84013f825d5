package discovery

import "github.com/geotrace/routesegments/geo"

// Segment is an immutable discovered repeated route segment.
type Segment struct {
	RefRange          []uint32
	CandidateLengthM  float64
	CandidatePolyline []geo.Point
	RunRanges         map[int][]uint32 // track position -> contiguous ordered global indices
}

// candidateWindow is a reference sub-range [startIdx, endIdx] (0-based
// positions into a track's index sequence) reaching at least
// Params.MaxLengthM, as enumerated by prepare's valid_starts step.
type candidateWindow struct {
	startIdx int
	endIdx   int
}

// stage1Result is written into a fixed output slot, one per element of
// the candidate list, never appended — so Stage 1's goroutine
// scheduling order cannot leak into Stage 2's ordering.
type stage1Result struct {
	window candidateWindow
	count  int
}
