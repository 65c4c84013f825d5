package discovery

import (
	"sort"

	"github.com/geotrace/routesegments/geo"
	"github.com/geotrace/routesegments/kdtree"
	"github.com/geotrace/routesegments/store"
)

// candidateIndices resolves a candidateWindow to the ordered global
// indices of the reference track it spans.
func candidateIndices(prep *preparation, w candidateWindow) []uint32 {
	return append([]uint32(nil), prep.refIndices[w.startIdx:w.endIdx+1]...)
}

// broadPhaseRadius computes the covering circle for a candidate
// polyline's bounding box: half_diagonal + tol_deg + prefilter_margin_deg,
// in degrees.
func broadPhaseRadius(polyline []geo.Point, prep *preparation) (center geo.Point, radius float64) {
	bbox := geo.NewBoundingBox(polyline)
	center = bbox.Center()
	radius = bbox.HalfDiagonalDeg() + prep.tolDeg + prep.prefilterMarginDeg
	return center, radius
}

// candidateSet returns the sorted-ascending global indices within
// radius of center on one close track's per-track KD-tree.
func candidateSet(pti *kdtree.PerTrackIndex, center geo.Point, radius float64) []uint32 {
	out := pti.InRangeGlobal(center, radius)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// slideWindows calls visit(window) for every contiguous winSize-length
// sub-slice of the sorted set whose extreme global indices satisfy the
// contiguity gate `(last - first) <= winSize + contiguitySlack`. visit
// returning true stops iteration early.
func slideWindows(set []uint32, winSize int, visit func(window []uint32) bool) {
	if winSize <= 0 || len(set) < winSize {
		return
	}
	slack := uint32(winSize + contiguitySlack)
	for i := 0; i+winSize <= len(set); i++ {
		window := set[i : i+winSize]
		gap := window[len(window)-1] - window[0]
		if gap > slack {
			continue
		}
		if visit(window) {
			return
		}
	}
}

// frechetTo computes the discrete Fréchet distance, in meters, between
// candidatePolyline and the polyline resolved from window's global
// indices, using pooled row buffers.
func frechetTo(s *store.Store, fp *frechetPool, candidatePolyline []geo.Point, window []uint32) float64 {
	winPoly := s.Polyline(window)
	n := len(candidatePolyline)
	if len(winPoly) > n {
		n = len(winPoly)
	}
	b := fp.get(n)
	d := geo.FrechetWithBuffers(candidatePolyline, winPoly, b.prev, b.curr)
	fp.put(b)
	return d
}
