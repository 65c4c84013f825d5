// Package pathfind composes discovered segments into a longer directed
// path by stitching segments whose endpoints connect head-to-tail, in
// either orientation. Follows producer/pathways_producer.go's approach
// of building connections from geographic proximity between endpoints,
// generalized from quay-to-quay distance to oriented-segment-endpoint
// distance; the BFS/reconstruction has no direct precedent in that file
// and is built directly for this domain.
package pathfind

import (
	"fmt"

	"github.com/geotrace/routesegments/discovery"
	"github.com/geotrace/routesegments/routeerr"
	"github.com/geotrace/routesegments/store"
)

// Orientation is a tagged variant over a segment's two traversal
// directions, preferred over packing it into an integer offset for
// anything callers see (the packed form is still used internally for
// node ids, but never exposed).
type Orientation int

const (
	Forward Orientation = iota
	Reversed
)

func (o Orientation) String() string {
	if o == Reversed {
		return "reversed"
	}
	return "forward"
}

// PathSegment is one element of a discovered path: its underlying
// segment, its 1-based position in the input segment list, and its
// traversal orientation.
type PathSegment struct {
	Segment     discovery.Segment
	Index       int
	Orientation Orientation
}

// Params configures FindPathBetweenSegments. Unlike discovery.Params,
// there is no universal default tolerance or support requirement for
// path stitching, so Params carries no defaulting constructor —
// callers must set every field to the value appropriate for their
// tolerance and support requirements.
type Params struct {
	ToleranceM float64 // endpoint connection tolerance, meters
	MinLength  int     // minimum path length, in segments
	MinRuns    int     // minimum |run_ranges| for a segment to carry an edge
}

// WithToleranceM sets the endpoint connection tolerance in meters.
func (p Params) WithToleranceM(v float64) Params { p.ToleranceM = v; return p }

// WithMinLength sets the minimum accepted path length, in segments.
func (p Params) WithMinLength(v int) Params { p.MinLength = v; return p }

// WithMinRuns sets the minimum support a segment must carry to
// participate in an edge.
func (p Params) WithMinRuns(v int) Params { p.MinRuns = v; return p }

// FindPathBetweenSegments builds the oriented node graph over segments,
// BFS's from (startIdx, forward) to the first visited node tagged with
// endIdx (either orientation), and reconstructs the path. startIdx and
// endIdx are 1-based positions into segments.
func FindPathBetweenSegments(segments []discovery.Segment, s *store.Store, startIdx, endIdx int, params Params) ([]PathSegment, error) {
	n := len(segments)
	if startIdx < 1 || startIdx > n {
		return nil, routeerr.New(routeerr.InvalidInput, fmt.Sprintf("start index %d out of range", startIdx))
	}
	if endIdx < 1 || endIdx > n {
		return nil, routeerr.New(routeerr.InvalidInput, fmt.Sprintf("end index %d out of range", endIdx))
	}

	g := buildGraph(segments, s, params)

	startNode := nodeID(startIdx-1, n, Forward)
	targetSeg := endIdx - 1

	foundNode, parent, ok := g.bfs(startNode, targetSeg)
	if !ok {
		return nil, routeerr.New(routeerr.PathNotFound, fmt.Sprintf("no path from segment %d to segment %d", startIdx, endIdx))
	}

	path := reconstruct(foundNode, startNode, parent)
	if len(path) == 0 || path[0] != startNode {
		return nil, routeerr.New(routeerr.ReconstructionFailure, "reconstructed path does not start at the requested segment")
	}
	if len(path) < params.MinLength {
		return nil, routeerr.New(routeerr.PathTooShort, fmt.Sprintf("path length %d below min_length %d", len(path), params.MinLength))
	}

	out := make([]PathSegment, len(path))
	for i, node := range path {
		segIdx, orient := nodeSegment(node, n)
		out[i] = PathSegment{Segment: segments[segIdx], Index: segIdx + 1, Orientation: orient}
	}
	return out, nil
}

// reconstruct walks the BFS parent chain from found back to start,
// unshifting from terminal to source.
func reconstruct(found, start int, parent map[int]int) []int {
	path := []int{found}
	cur := found
	for cur != start {
		p, ok := parent[cur]
		if !ok {
			return nil
		}
		cur = p
		path = append([]int{cur}, path...)
	}
	return path
}
