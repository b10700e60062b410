package bvtree

import (
	"github.com/edaniels/golog"
	"go.uber.org/atomic"

	"github.com/geomworks/modtree/utils"
)

// Index is the incremental bounding-volume index. It owns a persistent main
// tree over the full primitive set, a transient delta tree rebuilt from
// scratch on every update over recently touched primitives, and a dense
// bounding-volume cache addressed by global primitive id that both tree
// builds read.
//
// Mutating calls (Build, Update, UpdateTree, RefreshVolumes, Clear) are
// single-writer and must not run concurrently with each other or with
// queries on the same index; callers must quiesce readers around them. The
// index detects overlapping mutators and panics, since that is a programming
// error rather than a recoverable condition.
type Index[BV Volume[BV]] struct {
	main     Tree[BV]
	delta    Tree[BV]
	deltaIDs []int32
	cache    []BV

	logger  golog.Logger
	writing atomic.Int32
}

// NewIndex creates an empty index. The logger may be nil.
func NewIndex[BV Volume[BV]](logger golog.Logger) *Index[BV] {
	return &Index[BV]{logger: logger}
}

// Main exposes the main tree for query traversal.
func (x *Index[BV]) Main() *Tree[BV] {
	return &x.main
}

// Delta exposes the delta tree for query traversal. Queries must traverse
// both trees unconditionally; an empty delta makes the traversal a no-op.
func (x *Index[BV]) Delta() *Tree[BV] {
	return &x.delta
}

// DeltaIDs returns the ids currently living in the delta tree. The returned
// slice is owned by the index.
func (x *Index[BV]) DeltaIDs() []int32 {
	return x.deltaIDs
}

// beginWrite marks the start of a mutating call and returns its matching
// end. Overlapping mutators indicate a caller bug and panic immediately.
func (x *Index[BV]) beginWrite() func() {
	if !x.writing.CompareAndSwap(0, 1) {
		panic("bvtree: concurrent mutation of Index; mutating calls are single-writer")
	}
	return func() { x.writing.Store(0) }
}

// Build populates the index from the full primitive collection: the
// bounding-volume cache is recomputed for every primitive in parallel, the
// main tree is built over the full id set, and all delta state is dropped.
// Calling Build is also the compaction operation; afterward the index is
// indistinguishable from one that never saw an update.
func (x *Index[BV]) Build(objects Collection[BV], cfg Config) {
	defer x.beginWrite()()
	x.build(objects, cfg)
}

func (x *Index[BV]) build(objects Collection[BV], cfg Config) {
	n := objects.Len()
	x.resizeCache(n)
	utils.ParallelForEach(n, func(i int) {
		x.cache[i] = objects.VolumeAt(i)
	})

	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(i)
	}
	x.main = buildTree(ids, x.cache, cfg)
	x.delta = Tree[BV]{}
	x.deltaIDs = x.deltaIDs[:0]
}

// RefreshVolumes recomputes the cached bounding volume of each given id from
// the collection's current geometry. This is the explicit precondition step
// for Update: every id passed to Update as touched, and any id whose
// geometry changed since the last Build, must be refreshed first, because
// Update itself never recomputes cache entries.
func (x *Index[BV]) RefreshVolumes(objects Collection[BV], ids []int32) {
	defer x.beginWrite()()
	utils.ParallelForEach(len(ids), func(i int) {
		id := ids[i]
		x.cache[id] = objects.VolumeAt(int(id))
	})
}

// Update applies a dirty-region update. touched lists the primitive ids
// whose geometry changed; keep reports whether an id currently in either
// tree should remain indexed there. Ids failing keep are pruned from main
// leaves (shrinking their logical size in place, the leaf volume stays
// conservatively stale) and dropped from the delta set; the delta tree is
// then rebuilt from scratch over the surviving delta ids plus touched.
//
// If the new delta would exceed half the main tree's id count, the
// incremental path no longer amortizes (queries scan the delta as an extra
// linear structure) and Update transparently falls back to a full Build.
//
// Precondition: cache entries for every id that may be visited, in
// particular every touched id, already reflect current geometry; see
// RefreshVolumes.
func (x *Index[BV]) Update(objects Collection[BV], touched []int32, keep func(int32) bool, cfg Config) {
	defer x.beginWrite()()

	if x.deltaOutgrowsMain(len(touched)) {
		x.build(objects, cfg)
		return
	}
	x.pruneMain(keep, nil)
	x.rebuildDelta(touched, keep, nil, cfg)
}

// UpdateTree applies an update after the caller renumbered its primitive
// collection. It differs from Update in three ways: every id still active
// in a main leaf is first rewritten through im.Forward before the keep
// partition runs; the bounding-volume cache is recomputed in parallel for
// every object, so there is no external refresh precondition; and the new
// delta set merges the forwarded old delta ids surviving keep with
// im.KeptIDs().
func (x *Index[BV]) UpdateTree(objects Collection[BV], im IndexMap, keep func(int32) bool, cfg Config) {
	defer x.beginWrite()()

	kept := im.KeptIDs()
	if x.deltaOutgrowsMain(len(kept)) {
		x.build(objects, cfg)
		return
	}

	n := objects.Len()
	x.resizeCache(n)
	utils.ParallelForEach(n, func(i int) {
		x.cache[i] = objects.VolumeAt(i)
	})

	x.pruneMain(keep, im.Forward)
	x.rebuildDelta(kept, keep, im.Forward, cfg)
}

// Clear drops all index state. The next Update on the emptied index
// trivially breaches the rebuild threshold and behaves like Build.
func (x *Index[BV]) Clear() {
	defer x.beginWrite()()
	x.main = Tree[BV]{}
	x.delta = Tree[BV]{}
	x.deltaIDs = nil
	x.cache = nil
}

// deltaOutgrowsMain applies the 2:1 rebuild threshold: the incremental path
// is only worth it while the delta stays a minority of the structure.
func (x *Index[BV]) deltaOutgrowsMain(incoming int) bool {
	estimated := len(x.deltaIDs) + incoming
	if estimated*2 <= len(x.main.ids) {
		return false
	}
	if x.logger != nil {
		x.logger.Debugw("delta would outgrow half the main tree, rebuilding",
			"delta", len(x.deltaIDs), "incoming", incoming, "main", len(x.main.ids))
	}
	return true
}

// pruneMain partitions every main leaf's active id range in place so that
// ids failing keep move to the dead tail, then shrinks the leaf's logical
// size. When forward is non-nil each active id is rewritten through it
// before the partition. Leaves own disjoint id sub-ranges, so the work is
// one independent task per leaf. Tree shape and node volumes are untouched;
// a pruned leaf's volume is stale but still conservative.
func (x *Index[BV]) pruneMain(keep func(int32) bool, forward func(int32) int32) {
	leaves := x.main.leafIndices()
	utils.ParallelForEach(len(leaves), func(i int) {
		n := &x.main.nodes[leaves[i]]
		live := x.main.ids[n.start : n.start+n.count]
		if forward != nil {
			for j := range live {
				live[j] = forward(live[j])
			}
		}
		kept := 0
		for j := range live {
			if keep(live[j]) {
				live[kept], live[j] = live[j], live[kept]
				kept++
			}
		}
		n.count = int32(kept)
	})
}

// rebuildDelta replaces the delta tree with one built over the old delta
// ids (optionally forwarded) surviving keep, plus incoming. The build reads
// the existing cache addressed by global id, which is why Update's refresh
// precondition covers every id entering the delta set.
func (x *Index[BV]) rebuildDelta(incoming []int32, keep func(int32) bool, forward func(int32) int32, cfg Config) {
	next := make([]int32, 0, len(x.deltaIDs)+len(incoming))
	for _, id := range x.deltaIDs {
		if forward != nil {
			id = forward(id)
		}
		if keep(id) {
			next = append(next, id)
		}
	}
	next = append(next, incoming...)
	x.deltaIDs = next

	ids := make([]int32, len(next))
	copy(ids, next)
	x.delta = buildTree(ids, x.cache, cfg)
}

func (x *Index[BV]) resizeCache(n int) {
	if cap(x.cache) >= n {
		x.cache = x.cache[:n]
		return
	}
	x.cache = make([]BV, n)
}
