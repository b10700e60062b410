// Package bvtree implements an incrementally maintained bounding-volume
// index over a dynamic set of geometric primitives. The index keeps a
// persistent main tree plus a transient delta tree holding recently touched
// primitives; queries traverse both and merge results, so geometry can be
// edited continuously without rebuilding the full hierarchy on every change.
package bvtree

import (
	"github.com/golang/geo/r3"

	"github.com/geomworks/modtree/spatialmath"
)

// Volume is the bounding-volume strategy contract. The index treats volumes
// as opaque mergeable summaries and never inspects their geometry beyond
// these operations. The constraint is generic so each concrete tree is
// monomorphized over its volume type.
type Volume[T any] interface {
	// Merge returns a volume containing both the receiver and the argument.
	Merge(T) T
	// Overlaps reports whether the two volumes share any point.
	Overlaps(T) bool
	// Center returns a representative point, used for spatial partitioning.
	Center() r3.Vector
	// DistanceToPoint returns a lower bound on the distance from the query
	// point to any primitive inside the volume.
	DistanceToPoint(r3.Vector) float64
	// IntersectsRay reports whether the ray can reach anything inside the
	// volume.
	IntersectsRay(spatialmath.Ray) bool
}

// Collection adapts a caller's primitive set to the index: random access by
// id plus a per-id bounding-volume factory reflecting current geometry.
type Collection[BV Volume[BV]] interface {
	Len() int
	VolumeAt(id int) BV
}

// IndexMap describes an id renumbering the caller applied to its primitive
// collection, for use with UpdateTree.
type IndexMap interface {
	// Forward maps an old primitive id to its new id.
	Forward(old int32) int32
	// KeptIDs lists the new ids that survived the renumbering.
	KeptIDs() []int32
}

// SliceIndexMap is an IndexMap backed by a dense forward slice indexed by
// old id.
type SliceIndexMap struct {
	ForwardIDs []int32
	Kept       []int32
}

// Forward maps an old primitive id to its new id.
func (m SliceIndexMap) Forward(old int32) int32 { return m.ForwardIDs[old] }

// KeptIDs lists the new ids that survived the renumbering.
func (m SliceIndexMap) KeptIDs() []int32 { return m.Kept }

// TriangleAABBs adapts a triangle slice to the index using axis-aligned
// bounding boxes.
type TriangleAABBs []*spatialmath.Triangle

// Len returns the number of triangles.
func (c TriangleAABBs) Len() int { return len(c) }

// VolumeAt computes the bounding box of the triangle with the given id.
func (c TriangleAABBs) VolumeAt(id int) spatialmath.AABB {
	return spatialmath.NewAABBFromTriangle(c[id])
}

// TriangleOBBs adapts a triangle slice to the index using oriented bounding
// boxes.
type TriangleOBBs []*spatialmath.Triangle

// Len returns the number of triangles.
func (c TriangleOBBs) Len() int { return len(c) }

// VolumeAt computes the oriented bounding box of the triangle with the given id.
func (c TriangleOBBs) VolumeAt(id int) spatialmath.OBB {
	return spatialmath.NewOBBFromTriangle(c[id])
}
