package store

import (
	"fmt"

	"github.com/geotrace/routesegments/routeerr"
)

// BuildStore builds an immutable Store from an ordered sequence of
// tracks, each an ordered sequence of TrackPointInput records. Global
// point indices are assigned densely starting at 0, track ranges in
// capture order.
//
// Fails with routeerr.InvalidInput if any track has fewer than 2 points
// with valid (finite) lat/lon.
func BuildStore(tracksInput [][]TrackPointInput) (*Store, error) {
	s := &Store{}

	for trackPos, trackPoints := range tracksInput {
		validCount := 0
		for _, tp := range trackPoints {
			if (TrackPoint{Lat: tp.Lat, Lon: tp.Lon}).Valid() {
				validCount++
			}
		}
		if validCount < 2 {
			return nil, routeerr.New(routeerr.InvalidInput,
				fmt.Sprintf("track %d has only %d point(s) with valid lat/lon, need at least 2", trackPos+1, validCount))
		}

		first := uint32(len(s.points))
		for _, tp := range trackPoints {
			s.points = append(s.points, TrackPoint{
				Lat:      tp.Lat,
				Lon:      tp.Lon,
				Time:     tp.Time,
				Altitude: tp.Altitude,
				Extra:    tp.Extra,
			})
		}
		last := uint32(len(s.points)) - 1
		s.tracks = append(s.tracks, Track{First: first, Last: last})
	}

	return s, nil
}
