package geo

// DiscreteFrechet computes the discrete Fréchet distance, in meters,
// between two polylines P and Q using great-circle point distances. It
// fills the n x m dynamic-program matrix bottom-up (no recursion, no
// memoization map) and keeps only two rows at a time.
//
// ca[i][j] = max( min(ca[i-1][j], ca[i-1][j-1], ca[i][j-1]), d(P[i],Q[j]) )
// with base cases on row 0 and column 0.
func DiscreteFrechet(p, q []Point) float64 {
	if len(p) == 0 || len(q) == 0 {
		return 0
	}
	m := len(q)
	prev := make([]float64, m)
	curr := make([]float64, m)
	return FrechetWithBuffers(p, q, prev, curr)
}

// FrechetWithBuffers is DiscreteFrechet using caller-supplied row
// buffers (each must have length >= len(q)), avoiding an allocation per
// call in hot loops. Buffer contents are overwritten; callers typically
// draw prev/curr from a sync.Pool (see discovery's frechetPool).
func FrechetWithBuffers(p, q []Point, prev, curr []float64) float64 {
	n := len(p)
	m := len(q)
	if n == 0 || m == 0 {
		return 0
	}
	prev = prev[:m]
	curr = curr[:m]
	for j := 0; j < m; j++ {
		prev[j], curr[j] = -1, -1 // sentinel: cell not yet computed
	}

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			d := DistancePoints(p[i], q[j])

			switch {
			case i == 0 && j == 0:
				curr[j] = d
			case i == 0:
				curr[j] = max(curr[j-1], d)
			case j == 0:
				curr[j] = max(prev[j], d)
			default:
				curr[j] = max(min(prev[j], prev[j-1], curr[j-1]), d)
			}
		}
		prev, curr = curr, prev
	}

	return prev[m-1]
}

// Hausdorff returns the directed-set Hausdorff distance from P to Q
// merged symmetrically: max(sup_{p in P} inf_{q in Q} d(p,q), sup_{q in
// Q} inf_{p in P} d(p,q)). Used only by tests to sanity-check that the
// discrete Fréchet distance upper-bounds it; not on the discovery
// engine's hot path.
func Hausdorff(p, q []Point) float64 {
	return max(directedHausdorff(p, q), directedHausdorff(q, p))
}

func directedHausdorff(a, b []Point) float64 {
	sup := 0.0
	for _, pa := range a {
		inf := -1.0
		for _, pb := range b {
			d := DistancePoints(pa, pb)
			if inf < 0 || d < inf {
				inf = d
			}
		}
		if inf > sup {
			sup = inf
		}
	}
	return sup
}
