package validate

import (
	"github.com/geotrace/routesegments/geo"
	"github.com/geotrace/routesegments/pathfind"
	"github.com/geotrace/routesegments/store"
)

// Path checks a pathfinder result's structural invariants: oriented
// endpoint adjacency between every consecutive pair, per-segment
// min_runs support, minimum path length, and that the path starts at
// the requested segment.
func Path(path []pathfind.PathSegment, s *store.Store, params pathfind.Params, wantStartIndex int) Report {
	var issues []Issue

	if len(path) < params.MinLength {
		issues = append(issues, errorf("min_length", "path length %d < min_length %d", len(path), params.MinLength))
	}
	if len(path) > 0 && path[0].Index != wantStartIndex {
		issues = append(issues, errorf("path_head", "path starts at segment %d, want %d", path[0].Index, wantStartIndex))
	}

	for i, ps := range path {
		if len(ps.Segment.RunRanges) < params.MinRuns {
			issues = append(issues, errorf("min_runs", "path element %d (segment %d) has %d runs, want >= %d", i, ps.Index, len(ps.Segment.RunRanges), params.MinRuns))
		}
	}

	for i := 0; i+1 < len(path); i++ {
		end := orientedEnd(path[i], s)
		start := orientedStart(path[i+1], s)
		d := geo.DistancePoints(end, start)
		if d > params.ToleranceM {
			issues = append(issues, errorf("endpoint_adjacency", "path elements %d->%d endpoint distance %.3f > tolerance_m %.3f", i, i+1, d, params.ToleranceM))
		}
	}

	return newReport(issues)
}

func orientedStart(ps pathfind.PathSegment, s *store.Store) geo.Point {
	first := s.GeoPoint(ps.Segment.RefRange[0])
	last := s.GeoPoint(ps.Segment.RefRange[len(ps.Segment.RefRange)-1])
	if ps.Orientation == pathfind.Reversed {
		return last
	}
	return first
}

func orientedEnd(ps pathfind.PathSegment, s *store.Store) geo.Point {
	first := s.GeoPoint(ps.Segment.RefRange[0])
	last := s.GeoPoint(ps.Segment.RefRange[len(ps.Segment.RefRange)-1])
	if ps.Orientation == pathfind.Reversed {
		return first
	}
	return last
}
