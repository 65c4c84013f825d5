package benchmark

import (
	"math"

	"github.com/geotrace/routesegments/store"
)

// syntheticLine builds one track of pointCount points along a straight
// line starting at (startLat, startLon), stepping stepDeg degrees of
// longitude per point, with a small deterministic sinusoidal jitter so
// tracks aren't perfectly collinear with their reference.
func syntheticLine(pointCount int, startLat, startLon, stepDeg, jitterDeg float64, phase int) []store.TrackPointInput {
	pts := make([]store.TrackPointInput, pointCount)
	for i := 0; i < pointCount; i++ {
		jitter := jitterDeg * math.Sin(float64(i+phase)/7.0)
		pts[i] = store.TrackPointInput{
			Lat: startLat + jitter,
			Lon: startLon + float64(i)*stepDeg,
		}
	}
	return pts
}

// syntheticTracks builds numTracks GPS tracks of pointCount points each,
// all running roughly parallel to a shared reference line so that
// close-tracks selection and Fréchet matching have realistic work to
// do, rather than degenerating to "every track is its own island".
func syntheticTracks(numTracks, pointCount int) [][]store.TrackPointInput {
	const (
		startLat  = 46.5
		startLon  = 15.0
		stepDeg   = 0.0005
		jitterDeg = 0.00003
	)
	tracks := make([][]store.TrackPointInput, numTracks)
	for t := 0; t < numTracks; t++ {
		tracks[t] = syntheticLine(pointCount, startLat, startLon, stepDeg, jitterDeg, t*3)
	}
	return tracks
}

func buildSyntheticStore(numTracks, pointCount int) *store.Store {
	s, err := store.BuildStore(syntheticTracks(numTracks, pointCount))
	if err != nil {
		panic(err) // synthetic fixtures are always well-formed
	}
	return s
}
