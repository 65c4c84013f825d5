package pathfind

import (
	"github.com/geotrace/routesegments/discovery"
	"github.com/geotrace/routesegments/geo"
	"github.com/geotrace/routesegments/kdtree"
	"github.com/geotrace/routesegments/store"
)

// graph is the oriented node graph over segments: 2N nodes for N
// segments, node i is (segment i, forward), node i+N is (segment i,
// reversed). adj is an adjacency list over these 2N node ids.
type graph struct {
	n   int
	adj [][]int
}

// nodeID packs a 0-based segment index and orientation into a node id,
// given n total segments: node i is (segment i, forward), node i+n is
// (segment i, reversed).
func nodeID(segIdx, n int, o Orientation) int {
	if o == Reversed {
		return segIdx + n
	}
	return segIdx
}

// nodeSegment unpacks a node id back into its 0-based segment index and
// orientation, given n segments.
func nodeSegment(node, n int) (segIdx int, o Orientation) {
	if node >= n {
		return node - n, Reversed
	}
	return node, Forward
}

type endpointPair struct{ start, end geo.Point }

func endpointsOf(seg discovery.Segment, s *store.Store) endpointPair {
	return endpointPair{
		start: s.GeoPoint(seg.RefRange[0]),
		end:   s.GeoPoint(seg.RefRange[len(seg.RefRange)-1]),
	}
}

func near(a, b geo.Point, toleranceM float64) bool {
	return geo.DistancePoints(a, b) <= toleranceM
}

// buildGraph constructs the edge set: for every ordered pair (i != j)
// of segments both meeting params.MinRuns support, adds the four
// oriented-endpoint adjacency edges wherever their endpoints lie
// within params.ToleranceM of each other.
//
// Candidate partners for a segment's endpoints are narrowed with a
// broad-phase radius query against a kdtree.GlobalIndex over every
// eligible segment's two endpoints, the same broad-phase-then-exact-check
// idiom discovery uses for candidate windows: the radius query can only
// over-admit (its degree-space margin is a safe upper bound on
// params.ToleranceM meters), so the exact haversine check in near()
// still decides every edge; only the O(n) scan it runs against shrinks
// from all segments to the query's hits.
func buildGraph(segments []discovery.Segment, s *store.Store, params Params) *graph {
	n := len(segments)
	g := &graph{n: n, adj: make([][]int, 2*n)}
	if n == 0 {
		return g
	}

	endpoints := make([]endpointPair, n)
	eligible := make([]bool, n)
	for i, seg := range segments {
		endpoints[i] = endpointsOf(seg, s)
		eligible[i] = len(seg.RunRanges) >= params.MinRuns
	}

	// endpointPoints[2k]/[2k+1] are the start/end of the k-th eligible
	// segment; endpointIDs carries the matching 2*segIdx/2*segIdx+1 ids
	// back through the radius query.
	endpointPoints := make([]geo.Point, 0, 2*n)
	endpointIDs := make([]uint32, 0, 2*n)
	for i, ep := range endpoints {
		if !eligible[i] {
			continue
		}
		endpointPoints = append(endpointPoints, ep.start, ep.end)
		endpointIDs = append(endpointIDs, uint32(2*i), uint32(2*i+1))
	}
	if len(endpointPoints) == 0 {
		return g
	}
	index := kdtree.BuildGlobalIndex(endpointPoints, endpointIDs)

	meanLat := geo.MeanLat(endpointPoints)
	marginDeg := geo.LonMarginDeg(params.ToleranceM, meanLat) + geo.LatMarginDeg(params.ToleranceM)

	candidatesOf := func(p geo.Point) map[int]bool {
		candidates := make(map[int]bool)
		for _, id := range index.InRangeGlobal(p, marginDeg) {
			candidates[int(id)/2] = true
		}
		return candidates
	}

	for i := 0; i < n; i++ {
		if !eligible[i] {
			continue
		}
		ei := endpoints[i]

		candidates := candidatesOf(ei.start)
		for j := range candidatesOf(ei.end) {
			candidates[j] = true
		}

		for j := range candidates {
			if i == j || !eligible[j] {
				continue
			}
			ej := endpoints[j]

			if near(ei.end, ej.start, params.ToleranceM) {
				g.addEdge(nodeID(i, n, Forward), nodeID(j, n, Forward))
			}
			if near(ei.end, ej.end, params.ToleranceM) {
				g.addEdge(nodeID(i, n, Forward), nodeID(j, n, Reversed))
			}
			if near(ei.start, ej.start, params.ToleranceM) {
				g.addEdge(nodeID(i, n, Reversed), nodeID(j, n, Forward))
			}
			if near(ei.start, ej.end, params.ToleranceM) {
				g.addEdge(nodeID(i, n, Reversed), nodeID(j, n, Reversed))
			}
		}
	}

	return g
}

func (g *graph) addEdge(from, to int) {
	g.adj[from] = append(g.adj[from], to)
}

// bfs searches from startNode for the first-visited node whose segment
// index equals targetSeg (either orientation). Returns the terminal
// node, the parent map built along the way, and whether the target was
// reached.
func (g *graph) bfs(startNode, targetSeg int) (found int, parent map[int]int, ok bool) {
	visited := make([]bool, len(g.adj))
	parent = make(map[int]int)
	queue := []int{startNode}
	visited[startNode] = true

	if seg, _ := nodeSegment(startNode, g.n); seg == targetSeg {
		return startNode, parent, true
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range g.adj[cur] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = cur

			if seg, _ := nodeSegment(next, g.n); seg == targetSeg {
				return next, parent, true
			}
			queue = append(queue, next)
		}
	}

	return 0, parent, false
}
