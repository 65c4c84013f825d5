package geo

import "math"

// BoundingBox is an axis-aligned box in degrees over (lon, lat).
type BoundingBox struct {
	Min Point
	Max Point
}

// NewBoundingBox computes the bounding box of a non-empty point set.
// Returns the zero BoundingBox for an empty slice.
func NewBoundingBox(points []Point) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	bb := BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.Lon < bb.Min.Lon {
			bb.Min.Lon = p.Lon
		}
		if p.Lon > bb.Max.Lon {
			bb.Max.Lon = p.Lon
		}
		if p.Lat < bb.Min.Lat {
			bb.Min.Lat = p.Lat
		}
		if p.Lat > bb.Max.Lat {
			bb.Max.Lat = p.Lat
		}
	}
	return bb
}

// Expand returns a copy of bb grown by lonMargin/latMargin degrees on
// every side.
func (bb BoundingBox) Expand(lonMargin, latMargin float64) BoundingBox {
	return BoundingBox{
		Min: Point{Lon: bb.Min.Lon - lonMargin, Lat: bb.Min.Lat - latMargin},
		Max: Point{Lon: bb.Max.Lon + lonMargin, Lat: bb.Max.Lat + latMargin},
	}
}

// Intersects reports whether bb and other overlap (touching counts as
// intersecting).
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	if bb.Max.Lon < other.Min.Lon || other.Max.Lon < bb.Min.Lon {
		return false
	}
	if bb.Max.Lat < other.Min.Lat || other.Max.Lat < bb.Min.Lat {
		return false
	}
	return true
}

// Center returns the midpoint of the box.
func (bb BoundingBox) Center() Point {
	return Point{
		Lon: (bb.Min.Lon + bb.Max.Lon) / 2,
		Lat: (bb.Min.Lat + bb.Max.Lat) / 2,
	}
}

// HalfDiagonalMeters returns half the great-circle length of the box's
// diagonal, used to size a covering radius around the center.
func (bb BoundingBox) HalfDiagonalMeters() float64 {
	d := HaversineDistance(bb.Min.Lat, bb.Min.Lon, bb.Max.Lat, bb.Max.Lon)
	return d / 2
}

// MeanLat returns the mean of Min.Lat and Max.Lat.
func (bb BoundingBox) MeanLat() float64 {
	return (bb.Min.Lat + bb.Max.Lat) / 2
}

// HalfDiagonalDeg returns half the diagonal of the box in degrees
// (Euclidean in the degree plane), used only for pruning radii.
func (bb BoundingBox) HalfDiagonalDeg() float64 {
	dLon := bb.Max.Lon - bb.Min.Lon
	dLat := bb.Max.Lat - bb.Min.Lat
	return math.Hypot(dLon, dLat) / 2
}
