package kdtree

import "github.com/geotrace/routesegments/geo"

// GlobalIndex is a KD-tree over every point in the store, with a
// parallel side table resolving tree positions back to global point
// indices in O(1).
type GlobalIndex struct {
	tree          *Tree
	globalIndices []uint32
}

// BuildGlobalIndex builds a GlobalIndex from points, where
// globalIndices[i] is the global point index of points[i].
func BuildGlobalIndex(points []geo.Point, globalIndices []uint32) *GlobalIndex {
	return &GlobalIndex{
		tree:          Build(points),
		globalIndices: append([]uint32(nil), globalIndices...),
	}
}

// InRangeGlobal returns the global point indices within radius (degrees)
// of center.
func (g *GlobalIndex) InRangeGlobal(center geo.Point, radius float64) []uint32 {
	positions := g.tree.InRange(center, radius)
	out := make([]uint32, len(positions))
	for i, pos := range positions {
		out[i] = g.globalIndices[pos]
	}
	return out
}
