package kdtree

import (
	"sort"
	"testing"

	"github.com/geotrace/routesegments/geo"
)

func gridPoints() []geo.Point {
	var pts []geo.Point
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			pts = append(pts, geo.Point{Lon: float64(i) * 0.001, Lat: float64(j) * 0.001})
		}
	}
	return pts
}

func TestTreeInRangeFindsNearbyPoints(t *testing.T) {
	pts := gridPoints()
	tree := Build(pts)

	got := tree.InRange(geo.Point{Lon: 0.002, Lat: 0.002}, 0.0011)
	sort.Ints(got)

	if len(got) == 0 {
		t.Fatalf("expected at least the center point to match")
	}
	for _, pos := range got {
		p := tree.Point(pos)
		dx := p.Lon - 0.002
		dy := p.Lat - 0.002
		if dx*dx+dy*dy > 0.0011*0.0011+1e-12 {
			t.Fatalf("position %d at %v outside radius", pos, p)
		}
	}
}

func TestTreeInRangeNoDuplicates(t *testing.T) {
	pts := gridPoints()
	tree := Build(pts)
	got := tree.InRange(geo.Point{Lon: 0.002, Lat: 0.002}, 0.01)
	seen := make(map[int]bool)
	for _, pos := range got {
		if seen[pos] {
			t.Fatalf("position %d returned more than once", pos)
		}
		seen[pos] = true
	}
}

func TestTreeInRangeEmptyTree(t *testing.T) {
	tree := Build(nil)
	got := tree.InRange(geo.Point{Lon: 0, Lat: 0}, 10)
	if len(got) != 0 {
		t.Fatalf("expected no results from empty tree, got %v", got)
	}
}

func TestGlobalIndexResolvesGlobalIds(t *testing.T) {
	pts := gridPoints()
	ids := make([]uint32, len(pts))
	for i := range ids {
		ids[i] = uint32(100 + i)
	}
	gi := BuildGlobalIndex(pts, ids)

	got := gi.InRangeGlobal(geo.Point{Lon: 0, Lat: 0}, 0.0006)
	if len(got) == 0 {
		t.Fatalf("expected at least the origin point")
	}
	for _, id := range got {
		if id < 100 || id >= uint32(100+len(pts)) {
			t.Fatalf("resolved id %d out of expected range", id)
		}
	}
}

func TestBuildPerTrackIndicesParallelIndependent(t *testing.T) {
	inputs := []TrackPointsInput{
		{TrackPos: 1, Points: gridPoints(), GlobalIndices: idsFrom(0, 25)},
		{TrackPos: 2, Points: gridPoints(), GlobalIndices: idsFrom(25, 25)},
		{TrackPos: 3, Points: gridPoints(), GlobalIndices: idsFrom(50, 25)},
	}
	out := BuildPerTrackIndicesParallel(inputs)
	if len(out) != 3 {
		t.Fatalf("expected 3 indices, got %d", len(out))
	}
	for i, idx := range out {
		if idx == nil {
			t.Fatalf("index %d is nil", i)
		}
		if idx.TrackPos != inputs[i].TrackPos {
			t.Fatalf("index %d TrackPos = %d, want %d", i, idx.TrackPos, inputs[i].TrackPos)
		}
	}
}

func idsFrom(start, n int) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = uint32(start + i)
	}
	return ids
}
