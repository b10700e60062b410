package bvtree

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/geomworks/modtree/spatialmath"
)

// DistanceFunc resolves a candidate primitive id to its exact distance from
// a query point.
type DistanceFunc func(id int32, pt r3.Vector) float64

// RayHitFunc resolves a candidate primitive id to the parameter at which a
// ray hits it, if it does.
type RayHitFunc func(id int32, ray spatialmath.Ray) (float64, bool)

// OverlapFunc confirms whether a candidate primitive id actually intersects
// the query geometry.
type OverlapFunc func(id int32) bool

// NearestNeighbor returns the id of the primitive closest to the query
// point and its distance. Both trees are traversed unconditionally (an empty
// delta traversal is a no-op) and results merged by minimum distance; leaf
// visits respect logical sizes only. Returns ok=false when the index holds
// no live primitives.
func NearestNeighbor[BV Volume[BV]](x *Index[BV], pt r3.Vector, distTo DistanceFunc) (int32, float64, bool) {
	best := int32(-1)
	bestDist := math.Inf(1)

	search := func(t *Tree[BV]) {
		if t.Empty() {
			return
		}
		var walk func(ni int32)
		walk = func(ni int32) {
			n := &t.nodes[ni]
			if n.vol.DistanceToPoint(pt) > bestDist {
				return
			}
			if n.isLeaf() {
				for _, id := range t.ids[n.start : n.start+n.count] {
					if d := distTo(id, pt); d < bestDist {
						bestDist = d
						best = id
					}
				}
				return
			}
			// Descend into the nearer child first so the far child is more
			// likely to prune.
			distLeft := t.nodes[n.left].vol.DistanceToPoint(pt)
			distRight := t.nodes[n.right].vol.DistanceToPoint(pt)
			if distLeft <= distRight {
				walk(n.left)
				if distRight <= bestDist {
					walk(n.right)
				}
			} else {
				walk(n.right)
				if distLeft <= bestDist {
					walk(n.left)
				}
			}
		}
		walk(0)
	}
	search(&x.main)
	search(&x.delta)
	return best, bestDist, best >= 0
}

// RayCast returns the id of the primitive with the earliest hit along the
// ray and the hit parameter. Both trees are traversed and merged by minimum
// parameter. Returns ok=false when nothing is hit.
func RayCast[BV Volume[BV]](x *Index[BV], ray spatialmath.Ray, hit RayHitFunc) (int32, float64, bool) {
	best := int32(-1)
	bestParam := math.Inf(1)

	search := func(t *Tree[BV]) {
		if t.Empty() {
			return
		}
		var walk func(ni int32)
		walk = func(ni int32) {
			n := &t.nodes[ni]
			if !n.vol.IntersectsRay(ray) {
				return
			}
			if n.isLeaf() {
				for _, id := range t.ids[n.start : n.start+n.count] {
					if param, ok := hit(id, ray); ok && param < bestParam {
						bestParam = param
						best = id
					}
				}
				return
			}
			walk(n.left)
			walk(n.right)
		}
		walk(0)
	}
	search(&x.main)
	search(&x.delta)
	return best, bestParam, best >= 0
}

// Intersects reports whether any live primitive overlaps the query volume,
// returning the first confirming id found. Results from the two trees merge
// by logical OR; traversal order between them is unspecified.
func Intersects[BV Volume[BV]](x *Index[BV], query BV, confirm OverlapFunc) (int32, bool) {
	found := int32(-1)

	var search func(t *Tree[BV]) bool
	search = func(t *Tree[BV]) bool {
		if t.Empty() {
			return false
		}
		var walk func(ni int32) bool
		walk = func(ni int32) bool {
			n := &t.nodes[ni]
			if !n.vol.Overlaps(query) {
				return false
			}
			if n.isLeaf() {
				for _, id := range t.ids[n.start : n.start+n.count] {
					if confirm(id) {
						found = id
						return true
					}
				}
				return false
			}
			return walk(n.left) || walk(n.right)
		}
		return walk(0)
	}
	if search(&x.main) || search(&x.delta) {
		return found, true
	}
	return -1, false
}
