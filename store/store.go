package store

import "github.com/geotrace/routesegments/geo"

// Store is the immutable global point table and tracks collection: the
// shared, read-only state every worker and every downstream component
// reads from. Built once via BuildStore and never mutated afterward.
type Store struct {
	points []TrackPoint // dense, indexed by global point index
	tracks []Track      // 0-indexed internally; 1-based "track position" in the API
}

// NumTracks returns the number of tracks in the collection.
func (s *Store) NumTracks() int { return len(s.tracks) }

// NumPoints returns the number of points in the global point table.
func (s *Store) NumPoints() int { return len(s.points) }

// Point returns the record at global index idx. ok is false if idx is
// out of range.
func (s *Store) Point(idx uint32) (TrackPoint, bool) {
	if int(idx) >= len(s.points) {
		return TrackPoint{}, false
	}
	return s.points[idx], true
}

// GeoPoint returns just the (lon, lat) of the record at global index idx.
func (s *Store) GeoPoint(idx uint32) geo.Point {
	p := s.points[idx]
	return geo.Point{Lon: p.Lon, Lat: p.Lat}
}

// Track returns the track at 1-based position pos. ok is false if pos
// is out of [1, NumTracks()].
func (s *Store) Track(pos int) (Track, bool) {
	if pos < 1 || pos > len(s.tracks) {
		return Track{}, false
	}
	return s.tracks[pos-1], true
}

// TrackIndices returns the ordered global point indices of the track at
// 1-based position pos.
func (s *Store) TrackIndices(pos int) []uint32 {
	tr, ok := s.Track(pos)
	if !ok {
		return nil
	}
	return tr.Indices()
}

// TrackPolyline returns the ordered Points of the track at 1-based
// position pos.
func (s *Store) TrackPolyline(pos int) []geo.Point {
	idx := s.TrackIndices(pos)
	out := make([]geo.Point, len(idx))
	for i, gi := range idx {
		out[i] = s.GeoPoint(gi)
	}
	return out
}

// Polyline resolves an ordered list of global indices to Points.
func (s *Store) Polyline(indices []uint32) []geo.Point {
	out := make([]geo.Point, len(indices))
	for i, gi := range indices {
		out[i] = s.GeoPoint(gi)
	}
	return out
}

// AllPoints returns every point's geo.Point, in global-index order.
// Used by reference selection to compute the global mean latitude.
func (s *Store) AllPoints() []geo.Point {
	out := make([]geo.Point, len(s.points))
	for i, p := range s.points {
		out[i] = geo.Point{Lon: p.Lon, Lat: p.Lat}
	}
	return out
}
