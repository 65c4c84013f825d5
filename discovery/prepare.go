package discovery

import (
	"github.com/geotrace/routesegments/geo"
	"github.com/geotrace/routesegments/kdtree"
	"github.com/geotrace/routesegments/store"
	"github.com/geotrace/routesegments/telemetry"
)

// preparation bundles everything Stage 1 and Stage 2 need that's
// computed once up front.
type preparation struct {
	refIndices         []uint32
	refPoints          []geo.Point
	cum                []float64
	closeTracks        []int // 1-based track positions, reference always included
	perTrackIndices    map[int]*kdtree.PerTrackIndex
	candidates         []candidateWindow
	tolDeg             float64
	prefilterMarginDeg float64
}

// prepare computes everything needed before the counting pass: margin
// conversion, the reference's expanded bounding box, close-tracks
// selection, per-track KD-tree construction (in parallel, via
// kdtree.BuildPerTrackIndicesParallel), cumulative arc length, and
// candidate window enumeration.
func prepare(s *store.Store, refRideIdx int, params Params, obs telemetry.Observer) *preparation {
	refIndices := s.TrackIndices(refRideIdx)
	refPoints := s.Polyline(refIndices)

	meanLat := geo.MeanLat(refPoints)
	tolDeg := params.TolM * geo.MetersPerDegree
	prefilterMarginDeg := params.PrefilterMarginM * geo.MetersPerDegree
	lonMargin := geo.LonMarginDeg(params.PrefilterMarginM, meanLat)
	latMargin := geo.LatMarginDeg(params.PrefilterMarginM)

	refBBox := geo.NewBoundingBox(refPoints)
	expanded := refBBox.Expand(lonMargin, latMargin)

	var closeTracks []int
	for pos := 1; pos <= s.NumTracks(); pos++ {
		bbox := geo.NewBoundingBox(s.TrackPolyline(pos))
		if bbox.Intersects(expanded) {
			closeTracks = append(closeTracks, pos)
		}
	}

	perTrackIndices := make(map[int]*kdtree.PerTrackIndex, len(closeTracks))
	if len(closeTracks) > 0 {
		inputs := make([]kdtree.TrackPointsInput, len(closeTracks))
		for i, pos := range closeTracks {
			idx := s.TrackIndices(pos)
			inputs[i] = kdtree.TrackPointsInput{
				TrackPos:      pos,
				Points:        s.Polyline(idx),
				GlobalIndices: idx,
			}
		}
		for _, pti := range kdtree.BuildPerTrackIndicesParallel(inputs) {
			perTrackIndices[pti.TrackPos] = pti
		}
	}

	cum := geo.CumulativeArcLength(refPoints)

	var candidates []candidateWindow
	n := len(refIndices)
	for sIdx := 0; sIdx < n; sIdx += params.WindowStep {
		e := sIdx
		for e < n-1 && cum[e]-cum[sIdx] < params.MaxLengthM {
			e++
		}
		if cum[e]-cum[sIdx] < params.MaxLengthM {
			continue // extension ran off the reference's end
		}
		candidates = append(candidates, candidateWindow{startIdx: sIdx, endIdx: e})
	}

	return &preparation{
		refIndices:         refIndices,
		refPoints:          refPoints,
		cum:                cum,
		closeTracks:        closeTracks,
		perTrackIndices:    perTrackIndices,
		candidates:         candidates,
		tolDeg:             tolDeg,
		prefilterMarginDeg: prefilterMarginDeg,
	}
}
