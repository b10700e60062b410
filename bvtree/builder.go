package bvtree

// builder constructs a static tree by recursively partitioning an id array
// around spatial medians. It reads bounding volumes from a cache addressed
// by global primitive id, so the same builder serves both the full build and
// the delta rebuild with an externally decided id order.
type builder[BV Volume[BV]] struct {
	ids   []int32
	cache []BV
	cfg   Config
	nodes []node[BV]
}

// buildTree constructs a static tree over ids, reading bounding volumes from
// cache addressed by global primitive id. The ids slice is owned by the
// returned tree and is reordered in place. Every input id ends up in exactly
// one leaf; node volumes are merged at construction time and never tightened
// afterward.
func buildTree[BV Volume[BV]](ids []int32, cache []BV, cfg Config) Tree[BV] {
	if len(ids) == 0 {
		return Tree[BV]{}
	}
	cfg = cfg.normalized()
	b := &builder[BV]{ids: ids, cache: cache, cfg: cfg}
	b.nodes = make([]node[BV], 0, 2*(len(ids)/cfg.MaxLeafSize+1))
	b.buildRange(0, len(ids))
	return Tree[BV]{nodes: b.nodes, ids: ids}
}

// buildRange builds the subtree over ids[start:end) and returns its node
// index. Nodes are appended in preorder, so the first call owns index 0.
func (b *builder[BV]) buildRange(start, end int) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, node[BV]{})

	vol := b.cache[b.ids[start]]
	for _, id := range b.ids[start+1 : end] {
		vol = vol.Merge(b.cache[id])
	}

	if end-start <= b.cfg.MaxLeafSize {
		b.nodes[idx] = node[BV]{
			vol:   vol,
			left:  -1,
			right: -1,
			start: int32(start),
			count: int32(end - start),
		}
		return idx
	}

	mid := b.split(start, end)
	left := b.buildRange(start, mid)
	right := b.buildRange(mid, end)
	b.nodes[idx] = node[BV]{vol: vol, left: left, right: right}
	return idx
}

// split partitions ids[start:end) along the axis where the volume centers
// spread the widest and returns the boundary. With SplitQuality > 0 it first
// tries the spatial midpoint and keeps that split unless one side falls
// below a minimum share; otherwise, and always at quality 0, it partitions
// around the cardinality median with nth-element selection.
func (b *builder[BV]) split(start, end int) int {
	axis, lo, hi := b.widestAxis(start, end)
	median := start + (end-start)/2
	if hi-lo < 1e-12 {
		// All centers coincide; any split keeps the tree balanced.
		return median
	}

	if b.cfg.SplitQuality > 0 {
		mid := b.partitionByValue(start, end, axis, (lo+hi)/2)
		minSide := (end - start) / (2 * b.cfg.SplitQuality)
		if minSide < 1 {
			minSide = 1
		}
		if mid-start >= minSide && end-mid >= minSide {
			return mid
		}
	}

	b.selectNth(start, end, median, axis)
	return median
}

// widestAxis returns the axis with the largest center spread in the range,
// along with the spread's bounds on that axis.
func (b *builder[BV]) widestAxis(start, end int) (int, float64, float64) {
	var lo, hi [3]float64
	first := b.cache[b.ids[start]].Center()
	lo = [3]float64{first.X, first.Y, first.Z}
	hi = lo
	for _, id := range b.ids[start+1 : end] {
		c := b.cache[id].Center()
		for axis, v := range [3]float64{c.X, c.Y, c.Z} {
			if v < lo[axis] {
				lo[axis] = v
			}
			if v > hi[axis] {
				hi[axis] = v
			}
		}
	}
	axis := 0
	for i := 1; i < 3; i++ {
		if hi[i]-lo[i] > hi[axis]-lo[axis] {
			axis = i
		}
	}
	return axis, lo[axis], hi[axis]
}

func (b *builder[BV]) centerAxis(id int32, axis int) float64 {
	c := b.cache[id].Center()
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

// partitionByValue moves ids with center below the pivot value in front of
// the rest and returns the boundary index.
func (b *builder[BV]) partitionByValue(start, end, axis int, pivot float64) int {
	mid := start
	for i := start; i < end; i++ {
		if b.centerAxis(b.ids[i], axis) < pivot {
			b.ids[mid], b.ids[i] = b.ids[i], b.ids[mid]
			mid++
		}
	}
	return mid
}

// selectNth reorders ids[start:end) so the id at position nth is where a
// full sort by center coordinate would place it, with everything before it
// no greater and everything after it no smaller. Three-way partitioning
// keeps the selection linear even with many duplicate coordinates.
func (b *builder[BV]) selectNth(start, end, nth, axis int) {
	lo, hi := start, end
	for hi-lo > 1 {
		pivot := b.centerAxis(b.ids[lo+(hi-lo)/2], axis)
		lt, gt := lo, hi
		i := lo
		for i < gt {
			v := b.centerAxis(b.ids[i], axis)
			switch {
			case v < pivot:
				b.ids[i], b.ids[lt] = b.ids[lt], b.ids[i]
				lt++
				i++
			case v > pivot:
				gt--
				b.ids[i], b.ids[gt] = b.ids[gt], b.ids[i]
			default:
				i++
			}
		}
		switch {
		case nth < lt:
			hi = lt
		case nth >= gt:
			lo = gt
		default:
			return
		}
	}
}
