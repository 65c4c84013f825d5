package geo

import (
	"math"
	"testing"
)

func TestHaversineZeroAndSymmetry(t *testing.T) {
	a := Point{Lon: 15.0, Lat: 46.5}
	b := Point{Lon: 15.01, Lat: 46.51}

	if d := DistancePoints(a, a); d != 0 {
		t.Fatalf("d(A,A) = %v, want 0", d)
	}

	ab := DistancePoints(a, b)
	ba := DistancePoints(b, a)
	if math.Abs(ab-ba) > 1e-6 {
		t.Fatalf("|d(A,B)-d(B,A)| = %v, want <= 1e-6", math.Abs(ab-ba))
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Oslo points taken from the geometry package's test fixtures.
	lat1, lon1 := 59.963926, 10.784823
	lat2, lon2 := 59.963652, 10.784564
	got := HaversineDistance(lat1, lon1, lat2, lon2)
	if math.Abs(got-34) > 2 {
		t.Fatalf("HaversineDistance = %v, want ~34", got)
	}
}

func straightLine(n int, stepDeg float64) []Point {
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = Point{Lon: 15.0 + float64(i)*stepDeg, Lat: 46.5}
	}
	return pts
}

func reversePolyline(p []Point) []Point {
	out := make([]Point, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

func TestFrechetSelfZero(t *testing.T) {
	p := straightLine(10, 0.0001)
	if d := DiscreteFrechet(p, p); d != 0 {
		t.Fatalf("df(P,P) = %v, want 0", d)
	}
}

func TestFrechetReversalSymmetry(t *testing.T) {
	p := straightLine(8, 0.0001)
	q := straightLine(8, 0.00012)
	df1 := DiscreteFrechet(p, q)
	df2 := DiscreteFrechet(reversePolyline(p), reversePolyline(q))
	if math.Abs(df1-df2) > 1e-9 {
		t.Fatalf("df(P,Q)=%v != df(rev P, rev Q)=%v", df1, df2)
	}
}

func TestFrechetUpperBoundsHausdorff(t *testing.T) {
	p := straightLine(12, 0.0001)
	q := make([]Point, len(p))
	for i, pt := range p {
		q[i] = Point{Lon: pt.Lon, Lat: pt.Lat + 0.00003}
	}
	df := DiscreteFrechet(p, q)
	hd := Hausdorff(p, q)
	if df < hd-1e-9 {
		t.Fatalf("df=%v should be >= hausdorff=%v", df, hd)
	}
}

func TestFrechetWithBuffersMatchesAllocatingVersion(t *testing.T) {
	p := straightLine(6, 0.0001)
	q := straightLine(5, 0.00011)
	want := DiscreteFrechet(p, q)

	prev := make([]float64, len(q))
	curr := make([]float64, len(q))
	got := FrechetWithBuffers(p, q, prev, curr)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("FrechetWithBuffers = %v, want %v", got, want)
	}
}

func TestCumulativeArcLength(t *testing.T) {
	p := straightLine(4, 0.0001)
	c := CumulativeArcLength(p)
	if c[0] != 0 {
		t.Fatalf("C[0] = %v, want 0", c[0])
	}
	for k := 1; k < len(c); k++ {
		if c[k] <= c[k-1] {
			t.Fatalf("cumulative arc length not increasing at k=%d", k)
		}
	}
	total := PolylineLength(p)
	if math.Abs(total-c[len(c)-1]) > 1e-9 {
		t.Fatalf("PolylineLength = %v, want %v", total, c[len(c)-1])
	}
}

func TestDouglasPeuckerKeepsEndpoints(t *testing.T) {
	p := []Point{
		{Lon: 15.0, Lat: 46.5},
		{Lon: 15.0001, Lat: 46.50001}, // near-colinear, should drop
		{Lon: 15.0002, Lat: 46.50002},
		{Lon: 15.0003, Lat: 46.55}, // large deviation, should keep
		{Lon: 15.0004, Lat: 46.5},
	}
	out := DouglasPeucker(p, 5.0)
	if out[0] != p[0] || out[len(out)-1] != p[len(p)-1] {
		t.Fatalf("DouglasPeucker must keep first/last points, got %v", out)
	}
	if len(out) >= len(p) {
		t.Fatalf("expected simplification to drop at least one point, got %d of %d", len(out), len(p))
	}
}

func TestDouglasPeuckerThresholdProperty(t *testing.T) {
	p := []Point{
		{Lon: 0, Lat: 0},
		{Lon: 0.0005, Lat: 0.0005}, // ~55m deviation from chord -> kept at small epsilon
		{Lon: 0.001, Lat: 0},
	}
	kept := DouglasPeucker(p, 1.0) // 1 meter epsilon: deviation far exceeds it
	if len(kept) != 3 {
		t.Fatalf("expected midpoint kept at tight epsilon, got %v", kept)
	}
	dropped := DouglasPeucker(p, 1000000.0) // huge epsilon: midpoint dropped
	if len(dropped) != 2 {
		t.Fatalf("expected midpoint dropped at huge epsilon, got %v", dropped)
	}
}

func TestDegenerateChordFallsBackToPointDistance(t *testing.T) {
	p := []Point{
		{Lon: 10, Lat: 10},
		{Lon: 10, Lat: 10.001},
		{Lon: 10, Lat: 10}, // same as first: degenerate chord
	}
	out := DouglasPeucker(p, 1.0)
	if len(out) != 3 {
		t.Fatalf("expected middle point kept for degenerate chord with large deviation, got %v", out)
	}
}

func TestBoundingBoxIntersectsAndExpand(t *testing.T) {
	a := NewBoundingBox([]Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}})
	b := NewBoundingBox([]Point{{Lon: 2, Lat: 2}, {Lon: 3, Lat: 3}})
	if a.Intersects(b) {
		t.Fatalf("boxes should not intersect")
	}
	expanded := a.Expand(1.5, 1.5)
	if !expanded.Intersects(b) {
		t.Fatalf("expanded box should now intersect b")
	}
}
