package geo

import "math"

// linearPoint is a point in a local planar projection, in meters.
type linearPoint struct {
	x, y float64
}

// linearize projects points into a small-area planar metric space
// centered on no particular origin: lon*cos(meanLat)*111000 for x,
// lat*111000 for y. Only valid for small-area inputs.
func linearize(points []Point, meanLat float64) []linearPoint {
	cos := math.Cos(toRadians(meanLat))
	out := make([]linearPoint, len(points))
	for i, p := range points {
		out[i] = linearPoint{x: p.Lon * cos * 111000.0, y: p.Lat * 111000.0}
	}
	return out
}

// DouglasPeucker simplifies a polyline to within epsilonMeters using the
// Douglas-Peucker algorithm in a locally linearized planar metric. The
// first and last points are always kept.
func DouglasPeucker(points []Point, epsilonMeters float64) []Point {
	if len(points) <= 2 {
		return points
	}
	meanLat := MeanLat(points)
	lin := linearize(points, meanLat)
	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true
	douglasPeuckerRange(lin, 0, len(lin)-1, epsilonMeters, keep)

	out := make([]Point, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

// douglasPeuckerRange recursively marks points to keep between indices
// [first, last] inclusive, given the chord from first to last.
func douglasPeuckerRange(lin []linearPoint, first, last int, epsilon float64, keep []bool) {
	if last <= first+1 {
		return
	}

	maxDist := -1.0
	maxIdx := -1
	for i := first + 1; i < last; i++ {
		d := perpendicularDistance(lin[i], lin[first], lin[last])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxIdx == -1 || maxDist <= epsilon {
		return
	}

	keep[maxIdx] = true
	douglasPeuckerRange(lin, first, maxIdx, epsilon, keep)
	douglasPeuckerRange(lin, maxIdx, last, epsilon, keep)
}

// perpendicularDistance returns the perpendicular distance from p to the
// chord (a, b) in the linearized plane. If a and b coincide (degenerate
// chord), it falls back to point-to-point distance from p to a.
func perpendicularDistance(p, a, b linearPoint) float64 {
	dx := b.x - a.x
	dy := b.y - a.y
	chordLen := math.Hypot(dx, dy)
	if chordLen == 0 {
		return math.Hypot(p.x-a.x, p.y-a.y)
	}
	// |cross product| / |chord|
	cross := dx*(a.y-p.y) - dy*(a.x-p.x)
	return math.Abs(cross) / chordLen
}
