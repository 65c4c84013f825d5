package refselect

import (
	"testing"

	"github.com/geotrace/routesegments/store"
	"github.com/geotrace/routesegments/telemetry"
)

func track(n int, lat, lonStart, step float64) []store.TrackPointInput {
	out := make([]store.TrackPointInput, n)
	for i := 0; i < n; i++ {
		out[i] = store.TrackPointInput{Lat: lat, Lon: lonStart + float64(i)*step}
	}
	return out
}

func TestFindBestRefRidePicksMostVisitedHotspots(t *testing.T) {
	// Three tracks share the same road (track 1's line); track 2 and 3
	// additionally wander off into cells nobody else visits, each at a
	// different location so neither wander leg reaches the
	// min_reps_for_hotspot threshold on its own. All three tracks then
	// score equally on the shared hotspot cells, so track 1 wins on the
	// tie-break (lowest position among equal scores).
	shared := track(20, 46.5, 15.0, 0.0005)
	wander2 := track(20, 50.0, 20.0, 0.0005) // far away, unique cells
	wander3 := track(20, 55.0, 25.0, 0.0005) // a different far-away spot

	tracks := [][]store.TrackPointInput{
		shared,
		append(append([]store.TrackPointInput{}, shared...), wander2...),
		append(append([]store.TrackPointInput{}, shared...), wander3...),
	}
	s, err := store.BuildStore(tracks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	best, err := FindBestRefRide(s, 50, 2, telemetry.NoopObserver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best != 1 {
		t.Fatalf("expected track 1 (purely shared road) to win, got %d", best)
	}
}

func TestFindBestRefRideNoHotspotsFallsBackToFirst(t *testing.T) {
	tracks := [][]store.TrackPointInput{
		track(5, 0, 0, 0.01),
		track(5, 10, 10, 0.01),
	}
	s, _ := store.BuildStore(tracks)

	best, err := FindBestRefRide(s, 50, 10, telemetry.NoopObserver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best != 1 {
		t.Fatalf("expected fallback to track 1, got %d", best)
	}
}

func TestFindBestRefRideRejectsNonPositiveGridSize(t *testing.T) {
	tracks := [][]store.TrackPointInput{track(3, 0, 0, 0.01)}
	s, _ := store.BuildStore(tracks)
	if _, err := FindBestRefRide(s, 0, 1, nil); err == nil {
		t.Fatalf("expected error for non-positive grid size")
	}
}
