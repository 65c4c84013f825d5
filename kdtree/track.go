package kdtree

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/geotrace/routesegments/geo"
)

// PerTrackIndex is a KD-tree scoped to a single track, exposing the
// parallel array of global indices so callers can translate tree
// positions back to global point indices in O(1).
type PerTrackIndex struct {
	TrackPos      int // 1-based position of the track in the tracks collection
	tree          *Tree
	globalIndices []uint32
}

// BuildPerTrackIndex builds a PerTrackIndex for one track.
// globalIndices[i] is the global point index of points[i].
func BuildPerTrackIndex(trackPos int, points []geo.Point, globalIndices []uint32) *PerTrackIndex {
	return &PerTrackIndex{
		TrackPos:      trackPos,
		tree:          Build(points),
		globalIndices: append([]uint32(nil), globalIndices...),
	}
}

// InRangeGlobal returns the global point indices within radius (degrees)
// of center, scoped to this track.
func (p *PerTrackIndex) InRangeGlobal(center geo.Point, radius float64) []uint32 {
	positions := p.tree.InRange(center, radius)
	out := make([]uint32, len(positions))
	for i, pos := range positions {
		out[i] = p.globalIndices[pos]
	}
	return out
}

// TrackPointsInput bundles the points and global indices of one track,
// as handed to BuildPerTrackIndicesParallel.
type TrackPointsInput struct {
	TrackPos      int
	Points        []geo.Point
	GlobalIndices []uint32
}

// BuildPerTrackIndicesParallel builds one PerTrackIndex per input, each
// on its own bounded goroutine. Each per-track tree build is
// independent with no shared mutable state, so results are written
// into a preallocated, index-addressed output slice rather than
// appended under a lock. Adapted from loader/streaming_loader.go's
// semaphore+WaitGroup file-processing pool, upgraded to
// golang.org/x/sync/errgroup with a bounded limit.
func BuildPerTrackIndicesParallel(inputs []TrackPointsInput) []*PerTrackIndex {
	out := make([]*PerTrackIndex, len(inputs))

	var g errgroup.Group
	g.SetLimit(max(1, runtime.NumCPU()))

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			out[i] = BuildPerTrackIndex(in.TrackPos, in.Points, in.GlobalIndices)
			return nil
		})
	}
	_ = g.Wait() // build tasks never return an error

	return out
}
