package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotrace/routesegments/discovery"
	"github.com/geotrace/routesegments/geo"
	"github.com/geotrace/routesegments/store"
)

func buildSimpleStore(t *testing.T) *store.Store {
	t.Helper()
	pts := []store.TrackPointInput{
		{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}, {Lat: 0, Lon: 0.002}, {Lat: 0, Lon: 0.003},
	}
	s, err := store.BuildStore([][]store.TrackPointInput{pts})
	require.NoError(t, err)
	return s
}

func TestSegmentsValidWhenInvariantsHold(t *testing.T) {
	s := buildSimpleStore(t)
	refRange := []uint32{0, 1, 2, 3}
	poly := s.Polyline(refRange)
	seg := discovery.Segment{
		RefRange:          refRange,
		CandidatePolyline: poly,
		CandidateLengthM:  geo.PolylineLength(poly),
		RunRanges:         map[int][]uint32{1: refRange},
	}

	params := discovery.NewParams().WithMinRuns(1).WithTolM(1)
	report := Segments([]discovery.Segment{seg}, s, 1, params)
	assert.True(t, report.IsValid)
	assert.Empty(t, report.Issues)
}

func TestSegmentsFlagsMissingReferenceRun(t *testing.T) {
	s := buildSimpleStore(t)
	refRange := []uint32{0, 1, 2, 3}
	poly := s.Polyline(refRange)
	seg := discovery.Segment{
		RefRange:          refRange,
		CandidatePolyline: poly,
		CandidateLengthM:  geo.PolylineLength(poly),
		RunRanges:         map[int][]uint32{2: refRange}, // missing track 1 (the reference)
	}

	report := Segments([]discovery.Segment{seg}, s, 1, discovery.NewParams().WithMinRuns(1))
	assert.False(t, report.IsValid)
}

func TestSegmentsFlagsDedupOverlapViolation(t *testing.T) {
	s := buildSimpleStore(t)
	a := discovery.Segment{RefRange: []uint32{0, 1, 2, 3}, CandidatePolyline: s.Polyline([]uint32{0, 1, 2, 3}), RunRanges: map[int][]uint32{1: {0, 1, 2, 3}}}
	b := discovery.Segment{RefRange: []uint32{1, 2, 3}, CandidatePolyline: s.Polyline([]uint32{1, 2, 3}), RunRanges: map[int][]uint32{1: {1, 2, 3}}}
	a.CandidateLengthM = geo.PolylineLength(a.CandidatePolyline)
	b.CandidateLengthM = geo.PolylineLength(b.CandidatePolyline)

	params := discovery.NewParams().WithMinRuns(1).WithDedupOverlapFrac(0.5)
	report := Segments([]discovery.Segment{a, b}, s, 1, params)
	assert.False(t, report.IsValid)
}
