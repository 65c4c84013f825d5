package discovery

import "sync"

// frechetBuffers is a pair of row buffers for geo.FrechetWithBuffers.
type frechetBuffers struct {
	prev, curr []float64
}

// frechetPool recycles frechetBuffers across Stage 1's candidate/track
// pairs, avoiding an allocation per discrete Fréchet call in the hot
// loop. Adapted from memory.MemoryPool's double-checked-locking pool,
// simplified to a single sync.Pool since these buffers aren't keyed by
// an entity type, only by a minimum size.
type frechetPool struct {
	pool sync.Pool
}

func newFrechetPool() *frechetPool {
	return &frechetPool{}
}

// get returns a pair of buffers with capacity >= n.
func (fp *frechetPool) get(n int) *frechetBuffers {
	if v := fp.pool.Get(); v != nil {
		b := v.(*frechetBuffers)
		if cap(b.prev) < n {
			b.prev = make([]float64, n)
		}
		if cap(b.curr) < n {
			b.curr = make([]float64, n)
		}
		return b
	}
	return &frechetBuffers{prev: make([]float64, n), curr: make([]float64, n)}
}

func (fp *frechetPool) put(b *frechetBuffers) {
	fp.pool.Put(b)
}
