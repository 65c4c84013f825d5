// Package export serializes already-computed Segments and Paths to a
// caller-supplied io.Writer, the same kind of boundary as
// GtfsRepository.WriteGtfs() (io.Reader, error): pure serialization, no
// file system or database access, and no persistence/ingestion or
// plotting/viewer concerns.
package export

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/geotrace/routesegments/discovery"
	"github.com/geotrace/routesegments/pathfind"
)

// segmentJSON is the wire shape for discovery.Segment: run_ranges'
// int-keyed map becomes track_position-tagged entries since JSON object
// keys must be strings and a track position is conceptually an integer
// key, not a string identifier.
type segmentJSON struct {
	RefRange          []uint32    `json:"ref_range"`
	CandidateLengthM  float64     `json:"candidate_length_m"`
	CandidatePolyline []pointJSON `json:"candidate_polyline"`
	Runs              []runJSON   `json:"runs"`
}

type pointJSON struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type runJSON struct {
	TrackPosition int      `json:"track_position"`
	Indices       []uint32 `json:"indices"`
}

func toSegmentJSON(seg discovery.Segment) segmentJSON {
	poly := make([]pointJSON, len(seg.CandidatePolyline))
	for i, p := range seg.CandidatePolyline {
		poly[i] = pointJSON{Lon: p.Lon, Lat: p.Lat}
	}
	runs := make([]runJSON, 0, len(seg.RunRanges))
	for trackPos, indices := range seg.RunRanges {
		runs = append(runs, runJSON{TrackPosition: trackPos, Indices: indices})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].TrackPosition < runs[j].TrackPosition })
	return segmentJSON{
		RefRange:          seg.RefRange,
		CandidateLengthM:  seg.CandidateLengthM,
		CandidatePolyline: poly,
		Runs:              runs,
	}
}

// SegmentsJSON writes segments to w as a JSON array, one object per
// segment.
func SegmentsJSON(w io.Writer, segments []discovery.Segment) error {
	out := make([]segmentJSON, len(segments))
	for i, seg := range segments {
		out[i] = toSegmentJSON(seg)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type pathElementJSON struct {
	Index       int    `json:"index"`
	Orientation string `json:"orientation"`
	Segment     segmentJSON `json:"segment"`
}

// PathJSON writes a pathfinder result to w as a JSON array, one object
// per path element, in path order.
func PathJSON(w io.Writer, path []pathfind.PathSegment) error {
	out := make([]pathElementJSON, len(path))
	for i, ps := range path {
		out[i] = pathElementJSON{
			Index:       ps.Index,
			Orientation: ps.Orientation.String(),
			Segment:     toSegmentJSON(ps.Segment),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
