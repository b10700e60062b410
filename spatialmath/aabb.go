package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// AABB is an axis-aligned bounding box. The zero value is not meaningful;
// construct one with the NewAABB* functions or start from an inverted box
// and merge into it.
type AABB struct {
	Min r3.Vector
	Max r3.Vector
}

// NewAABBFromPoints returns the tightest axis-aligned box around the given points.
func NewAABBFromPoints(pts ...r3.Vector) AABB {
	box := AABB{
		Min: r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, pt := range pts {
		box.Min.X = math.Min(box.Min.X, pt.X)
		box.Min.Y = math.Min(box.Min.Y, pt.Y)
		box.Min.Z = math.Min(box.Min.Z, pt.Z)
		box.Max.X = math.Max(box.Max.X, pt.X)
		box.Max.Y = math.Max(box.Max.Y, pt.Y)
		box.Max.Z = math.Max(box.Max.Z, pt.Z)
	}
	return box
}

// NewAABBFromTriangle returns the tightest axis-aligned box around a triangle.
func NewAABBFromTriangle(t *Triangle) AABB {
	return NewAABBFromPoints(t.Points()...)
}

// NewAABBFromSegment returns the tightest axis-aligned box around a segment.
func NewAABBFromSegment(s *Segment) AABB {
	return NewAABBFromPoints(s.Points()...)
}

// Merge returns the smallest axis-aligned box containing both input boxes.
func (a AABB) Merge(other AABB) AABB {
	return AABB{
		Min: r3.Vector{
			X: math.Min(a.Min.X, other.Min.X),
			Y: math.Min(a.Min.Y, other.Min.Y),
			Z: math.Min(a.Min.Z, other.Min.Z),
		},
		Max: r3.Vector{
			X: math.Max(a.Max.X, other.Max.X),
			Y: math.Max(a.Max.Y, other.Max.Y),
			Z: math.Max(a.Max.Z, other.Max.Z),
		},
	}
}

// Overlaps reports whether the two boxes share any point.
func (a AABB) Overlaps(other AABB) bool {
	return a.Min.X <= other.Max.X && a.Max.X >= other.Min.X &&
		a.Min.Y <= other.Max.Y && a.Max.Y >= other.Min.Y &&
		a.Min.Z <= other.Max.Z && a.Max.Z >= other.Min.Z
}

// Contains reports whether other lies entirely inside the box.
func (a AABB) Contains(other AABB) bool {
	return a.Min.X <= other.Min.X && a.Max.X >= other.Max.X &&
		a.Min.Y <= other.Min.Y && a.Max.Y >= other.Max.Y &&
		a.Min.Z <= other.Min.Z && a.Max.Z >= other.Max.Z
}

// Center returns the box's midpoint.
func (a AABB) Center() r3.Vector {
	return a.Min.Add(a.Max).Mul(0.5)
}

// DistanceToPoint returns the distance from the query point to the nearest
// point on the box, or zero if the point lies inside it.
func (a AABB) DistanceToPoint(pt r3.Vector) float64 {
	dx := math.Max(math.Max(a.Min.X-pt.X, 0), pt.X-a.Max.X)
	dy := math.Max(math.Max(a.Min.Y-pt.Y, 0), pt.Y-a.Max.Y)
	dz := math.Max(math.Max(a.Min.Z-pt.Z, 0), pt.Z-a.Max.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IntersectsRay reports whether the ray crosses the box, via the slab test.
func (a AABB) IntersectsRay(ray Ray) bool {
	tMin, tMax := 0., math.Inf(1)
	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	lo := [3]float64{a.Min.X, a.Min.Y, a.Min.Z}
	hi := [3]float64{a.Max.X, a.Max.Y, a.Max.Z}
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < floatEpsilon {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return false
			}
			continue
		}
		inv := 1. / dir[i]
		t0 := (lo[i] - origin[i]) * inv
		t1 := (hi[i] - origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return false
		}
	}
	return true
}
