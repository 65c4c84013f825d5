// Package refselect chooses the reference track that traverses the
// most "hotspot" grid cells — cells visited by many distinct tracks.
// Follows the repository package's map-counting idiom (count
// structures keyed by a derived id), generalized from entity ids to
// quantized grid cells.
package refselect

import (
	"fmt"
	"math"

	"github.com/geotrace/routesegments/geo"
	"github.com/geotrace/routesegments/routeerr"
	"github.com/geotrace/routesegments/store"
	"github.com/geotrace/routesegments/telemetry"
)

type cell struct {
	x, y int64
}

// FindBestRefRide chooses the reference track position (1-based) by
// quantizing every point into a gridSizeM grid (latitude-corrected by
// the mean latitude of all points), marking cells visited by at least
// minRepsForHotspot distinct tracks as hotspots, and picking the track
// with the highest count of points in hotspot cells. Ties are broken
// by lowest track position. If
// no hotspots exist, returns track 1 and emits an OnWarn — a recoverable
// situation, not an error.
func FindBestRefRide(s *store.Store, gridSizeM float64, minRepsForHotspot int, obs telemetry.Observer) (int, error) {
	obs = telemetry.OrNoop(obs)

	if gridSizeM <= 0 {
		return 0, routeerr.New(routeerr.InvalidInput, fmt.Sprintf("grid_size_m must be positive, got %v", gridSizeM))
	}
	if s.NumTracks() == 0 {
		return 0, routeerr.New(routeerr.InvalidInput, "store has no tracks")
	}

	meanLat := geo.MeanLat(s.AllPoints())
	lonCellDeg := geo.LonMarginDeg(gridSizeM, meanLat)
	latCellDeg := geo.LatMarginDeg(gridSizeM)
	if lonCellDeg <= 0 {
		lonCellDeg = gridSizeM * geo.MetersPerDegree
	}

	// cellVisitors[cell] = set of track positions that visit it.
	cellVisitors := make(map[cell]map[int]bool)

	for pos := 1; pos <= s.NumTracks(); pos++ {
		poly := s.TrackPolyline(pos)
		visitedThisTrack := make(map[cell]bool)
		for _, p := range poly {
			c := cell{x: int64(math.Floor(p.Lon / lonCellDeg)), y: int64(math.Floor(p.Lat / latCellDeg))}
			if visitedThisTrack[c] {
				continue
			}
			visitedThisTrack[c] = true
			visitors, ok := cellVisitors[c]
			if !ok {
				visitors = make(map[int]bool)
				cellVisitors[c] = visitors
			}
			visitors[pos] = true
		}
	}

	hotspots := make(map[cell]bool)
	for c, visitors := range cellVisitors {
		if len(visitors) >= minRepsForHotspot {
			hotspots[c] = true
		}
	}

	if len(hotspots) == 0 {
		obs.OnWarn("no hotspots found, falling back to first track", map[string]any{
			"grid_size_m":          gridSizeM,
			"min_reps_for_hotspot": minRepsForHotspot,
		})
		return 1, nil
	}

	bestPos := 0
	bestScore := -1
	for pos := 1; pos <= s.NumTracks(); pos++ {
		poly := s.TrackPolyline(pos)
		score := 0
		for _, p := range poly {
			c := cell{x: int64(math.Floor(p.Lon / lonCellDeg)), y: int64(math.Floor(p.Lat / latCellDeg))}
			if hotspots[c] {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestPos = pos
		}
	}

	return bestPos, nil
}
