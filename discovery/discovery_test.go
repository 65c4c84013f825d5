package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotrace/routesegments/geo"
	"github.com/geotrace/routesegments/store"
	"github.com/geotrace/routesegments/telemetry"
)

func lineTrack(n int, lat0, lon0, dLat, dLon float64) []store.TrackPointInput {
	out := make([]store.TrackPointInput, n)
	for i := 0; i < n; i++ {
		out[i] = store.TrackPointInput{Lat: lat0 + float64(i)*dLat, Lon: lon0 + float64(i)*dLon}
	}
	return out
}

func idsFrom(start uint32, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = start + uint32(i)
	}
	return out
}

// S1 — trivial repetition: two identical tracks, expect a shared segment.
func TestFindOverlappingSegmentsS1TrivialRepetition(t *testing.T) {
	step := 0.0001 // degrees longitude per point
	trackA := lineTrack(10, 46.5, 15.0, 0, step)
	trackB := lineTrack(10, 46.5, 15.0, 0, step)

	s, err := store.BuildStore([][]store.TrackPointInput{trackA, trackB})
	require.NoError(t, err)

	params := NewParams().WithMaxLengthM(50).WithTolM(1).WithMinRuns(2)
	segments, closeTracks, err := FindOverlappingSegments(s, 1, params, telemetry.NoopObserver{})
	require.NoError(t, err)
	require.ElementsMatch(t, []int{1, 2}, closeTracks)
	require.NotEmpty(t, segments)

	var found bool
	for _, seg := range segments {
		_, hasA := seg.RunRanges[1]
		_, hasB := seg.RunRanges[2]
		if hasA && hasB {
			found = true
			assert.GreaterOrEqual(t, seg.CandidateLengthM, 50.0-1e-6)
			assert.InDelta(t, 0.0, geo.DiscreteFrechet(seg.CandidatePolyline, s.Polyline(seg.RunRanges[2])), 1e-6)
		}
	}
	assert.True(t, found, "expected at least one segment shared by both tracks")
}

// S2 — partial overlap: track B joins A for an interior stretch, then
// deviates; some discovered segment should have a run in B of exactly
// the same length as its ref_range.
func TestFindOverlappingSegmentsS2PartialOverlap(t *testing.T) {
	stepDeg := 20 * geo.MetersPerDegree // ~20 m north per point
	trackA := lineTrack(20, 46.5, 15.0, stepDeg, 0)

	trackB := make([]store.TrackPointInput, 20)
	for i := 0; i < 4; i++ {
		trackB[i] = store.TrackPointInput{Lat: 46.5 + float64(i)*stepDeg, Lon: 15.01} // far away, own road
	}
	for i := 4; i <= 14; i++ {
		trackB[i] = trackA[i] // exact join, 0-based positions 4..14
	}
	for i := 15; i < 20; i++ {
		trackB[i] = store.TrackPointInput{Lat: 46.5 + float64(i)*stepDeg, Lon: 15.02} // deviates
	}

	s, err := store.BuildStore([][]store.TrackPointInput{trackA, trackB})
	require.NoError(t, err)

	params := NewParams().WithMaxLengthM(150).WithTolM(2).WithMinRuns(2)
	segments, _, err := FindOverlappingSegments(s, 1, params, telemetry.NoopObserver{})
	require.NoError(t, err)
	require.NotEmpty(t, segments)

	var exact *Segment
	for i := range segments {
		seg := &segments[i]
		if len(seg.RunRanges) < 2 {
			continue
		}
		if len(seg.RunRanges[2]) == len(seg.RefRange) {
			exact = seg
			break
		}
	}
	require.NotNil(t, exact, "expected a segment with an exact-length run in track B")
	assert.GreaterOrEqual(t, exact.CandidateLengthM, 150.0-1e-6)
}

// S3 — Fréchet tolerance sanity: perturbing track B by 3 m should be
// accepted at tol_m=5 and rejected at tol_m=1.
func TestFindOverlappingSegmentsS3ToleranceSanity(t *testing.T) {
	stepDeg := 15 * geo.MetersPerDegree
	trackA := lineTrack(15, 46.0, 15.0, stepDeg, 0)

	meanLat := geo.MeanLat(s2Points(trackA))
	offset := geo.LonMarginDeg(3, meanLat) // 3 m orthogonal (east-west) perturbation
	trackB := lineTrack(15, 46.0, 15.0+offset, stepDeg, 0)

	s, err := store.BuildStore([][]store.TrackPointInput{trackA, trackB})
	require.NoError(t, err)

	loose := NewParams().WithMaxLengthM(100).WithTolM(5).WithMinRuns(2)
	segments, _, err := FindOverlappingSegments(s, 1, loose, telemetry.NoopObserver{})
	require.NoError(t, err)
	assert.NotEmpty(t, segments, "tol_m=5 should accept a 3 m perturbation")

	strict := NewParams().WithMaxLengthM(100).WithTolM(1).WithMinRuns(2)
	segments, _, err = FindOverlappingSegments(s, 1, strict, telemetry.NoopObserver{})
	require.NoError(t, err)
	assert.Empty(t, segments, "tol_m=1 should reject a 3 m perturbation")
}

func s2Points(in []store.TrackPointInput) []geo.Point {
	out := make([]geo.Point, len(in))
	for i, p := range in {
		out[i] = geo.Point{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}

// promote drops candidates below min_runs and orders the rest by
// support descending, so the higher-support candidate reaches the S4
// dedup check first.
func TestPromoteSortsBySupportThenStart(t *testing.T) {
	results := []stage1Result{
		{window: candidateWindow{startIdx: 1, endIdx: 10}, count: 3},
		{window: candidateWindow{startIdx: 0, endIdx: 9}, count: 4},
		{window: candidateWindow{startIdx: 5, endIdx: 14}, count: 1},
	}
	promoted := promote(results, NewParams().WithMinRuns(2))
	require.Len(t, promoted, 2)
	assert.Equal(t, 4, promoted[0].count)
	assert.Equal(t, 3, promoted[1].count)
}

// S4 — dedup: a candidate overlapping an already-accepted one by at
// least dedup_overlap_frac is dropped.
func TestDedupOverlapsDropsHighOverlapCandidate(t *testing.T) {
	prep := &preparation{refIndices: idsFrom(0, 20)}
	accepted := []Segment{{RefRange: idsFrom(0, 10)}} // ref positions 0..9

	// Candidate positions 1..10: 9 of its 10 positions overlap accepted's
	// 0..9 (overlap 9/10 = 0.9 >= 0.8 threshold) -> dropped.
	assert.True(t, dedupOverlaps(candidateWindow{startIdx: 1, endIdx: 10}, accepted, prep, 0.8))

	// Candidate positions 9..18: overlap is just position 9 (1/10 = 0.1) -> kept.
	assert.False(t, dedupOverlaps(candidateWindow{startIdx: 9, endIdx: 18}, accepted, prep, 0.8))
}

func TestFindOverlappingSegmentsNoSupportingTracksIsNotAnError(t *testing.T) {
	// The reference is always its own close track (trivial bbox
	// self-intersection), but an unrelated, distant track never joins
	// the close-tracks set, so with min_runs=2 no candidate can reach
	// the required support: an empty-but-successful result.
	ref := lineTrack(10, 46.5, 15.0, 0, 0.0001)
	distant := lineTrack(10, -10.0, 170.0, 0, 0.0001) // far side of the planet

	s, err := store.BuildStore([][]store.TrackPointInput{ref, distant})
	require.NoError(t, err)

	// max_length_m=50 fits inside the ~69 m reference, so candidates
	// exist and reach Stage 1's support count.
	segments, closeTracks, err := FindOverlappingSegments(s, 1, NewParams().WithMaxLengthM(50), telemetry.NoopObserver{})
	require.NoError(t, err)
	assert.Empty(t, segments)
	assert.Equal(t, []int{1}, closeTracks)
}

func TestFindOverlappingSegmentsRejectsInvalidParams(t *testing.T) {
	s, _ := store.BuildStore([][]store.TrackPointInput{lineTrack(5, 0, 0, 0, 0.001)})

	_, _, err := FindOverlappingSegments(s, 1, NewParams().WithWindowStep(0), telemetry.NoopObserver{})
	require.Error(t, err)

	_, _, err = FindOverlappingSegments(s, 1, NewParams().WithDedupOverlapFrac(1.5), telemetry.NoopObserver{})
	require.Error(t, err)
}
