package geo

// CumulativeArcLength returns an array C of length len(points) where
// C[0]=0 and C[k]=C[k-1]+HaversineDistance(points[k-1], points[k]).
func CumulativeArcLength(points []Point) []float64 {
	c := make([]float64, len(points))
	for k := 1; k < len(points); k++ {
		c[k] = c[k-1] + DistancePoints(points[k-1], points[k])
	}
	return c
}

// PolylineLength is the total haversine arc length of points.
func PolylineLength(points []Point) float64 {
	total := 0.0
	for k := 1; k < len(points); k++ {
		total += DistancePoints(points[k-1], points[k])
	}
	return total
}
