package bvtree

// node is one entry in a tree's flat node array. Internal nodes store two
// child indices; leaves store a [start, start+count) range into the tree's
// id array. count is the leaf's logical size: pruning shrinks it without
// relocating or zeroing the ids past the live prefix.
type node[BV Volume[BV]] struct {
	vol   BV
	left  int32
	right int32
	start int32
	count int32
}

func (n *node[BV]) isLeaf() bool {
	return n.left < 0
}

// Tree is a static bounding-volume hierarchy: a flat node array with the
// root at index 0, and the id array its leaves reference. The topology is
// fixed once built; only leaf logical sizes change afterward.
type Tree[BV Volume[BV]] struct {
	nodes []node[BV]
	ids   []int32
}

// Empty reports whether the tree holds no nodes.
func (t *Tree[BV]) Empty() bool {
	return len(t.nodes) == 0
}

// NumNodes returns the total node count, internal nodes included.
func (t *Tree[BV]) NumNodes() int {
	return len(t.nodes)
}

// NumIDs returns the physical length of the id array. Pruning never shrinks
// this; it only reduces leaves' logical sizes.
func (t *Tree[BV]) NumIDs() int {
	return len(t.ids)
}

// LiveIDs appends every id inside some leaf's active range to dst and
// returns it.
func (t *Tree[BV]) LiveIDs(dst []int32) []int32 {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.isLeaf() {
			dst = append(dst, t.ids[n.start:n.start+n.count]...)
		}
	}
	return dst
}

// leafIndices returns the node-array positions of every leaf.
func (t *Tree[BV]) leafIndices() []int32 {
	var leaves []int32
	for i := range t.nodes {
		if t.nodes[i].isLeaf() {
			leaves = append(leaves, int32(i))
		}
	}
	return leaves
}
