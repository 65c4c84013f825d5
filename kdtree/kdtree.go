// Package kdtree implements an immutable 2-D spatial index over
// geographic points (longitude, latitude), supporting radius queries in
// planar (degree) space. Follows the balanced-median-split build and
// per-axis-pruned radius search seen in PatrickSteil-gtfstidy's kdtree
// processor and dlfelps-sd-uber-go's spatial_index (index returns
// positions, a parallel side table resolves to a caller-defined id).
package kdtree

import (
	"math"
	"sort"

	"github.com/geotrace/routesegments/geo"
)

type node struct {
	pos         int // position in the original (possibly reordered) points slice
	point       geo.Point
	left, right *node
	axis        int // 0 = lon, 1 = lat
}

// Tree is an immutable, balanced 2-D KD-tree over a fixed set of Points.
// Queries are read-only and safe for concurrent use.
type Tree struct {
	root   *node
	points []geo.Point // copy, indexed by original position
}

// Build constructs a balanced KD-tree from points. The tree retains a
// copy of points; radius query results are positions into this original
// ordering (0-based), letting callers resolve back to whatever id space
// points came from via a parallel side table.
func Build(points []geo.Point) *Tree {
	t := &Tree{points: append([]geo.Point(nil), points...)}
	indexed := make([]indexedPoint, len(points))
	for i, p := range points {
		indexed[i] = indexedPoint{pos: i, point: p}
	}
	t.root = build(indexed, 0)
	return t
}

type indexedPoint struct {
	pos   int
	point geo.Point
}

func build(pts []indexedPoint, depth int) *node {
	if len(pts) == 0 {
		return nil
	}
	axis := depth % 2
	sort.Slice(pts, func(i, j int) bool {
		if axis == 0 {
			return pts[i].point.Lon < pts[j].point.Lon
		}
		return pts[i].point.Lat < pts[j].point.Lat
	})
	median := len(pts) / 2
	n := &node{pos: pts[median].pos, point: pts[median].point, axis: axis}
	n.left = build(pts[:median], depth+1)
	n.right = build(pts[median+1:], depth+1)
	return n
}

// InRange returns the positions (into the slice Build was called with)
// of every point within Euclidean distance radius (in degrees) of
// center. Order is unspecified; each point is returned at most once.
func (t *Tree) InRange(center geo.Point, radius float64) []int {
	if t.root == nil || radius < 0 {
		return nil
	}
	var out []int
	searchRange(t.root, center, radius, 0, &out)
	return out
}

func searchRange(n *node, center geo.Point, radius float64, depth int, out *[]int) {
	if n == nil {
		return
	}

	dx := n.point.Lon - center.Lon
	dy := n.point.Lat - center.Lat
	if math.Hypot(dx, dy) <= radius {
		*out = append(*out, n.pos)
	}

	var nodeCoord, queryCoord float64
	if n.axis == 0 {
		nodeCoord, queryCoord = n.point.Lon, center.Lon
	} else {
		nodeCoord, queryCoord = n.point.Lat, center.Lat
	}

	if queryCoord-radius <= nodeCoord {
		searchRange(n.left, center, radius, depth+1, out)
	}
	if queryCoord+radius >= nodeCoord {
		searchRange(n.right, center, radius, depth+1, out)
	}
}

// Len returns the number of points indexed.
func (t *Tree) Len() int { return len(t.points) }

// Point returns the point at position pos (as passed to Build).
func (t *Tree) Point(pos int) geo.Point { return t.points[pos] }
