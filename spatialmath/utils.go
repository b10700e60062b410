// Package spatialmath defines the geometric primitives and bounding volumes
// used by the rest of the module.
package spatialmath

import (
	"github.com/golang/geo/r3"
)

const floatEpsilon = 1e-9

// PlaneNormal returns the unit normal of the plane through three points.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// ClosestPointSegmentPoint returns the point on the segment [a, b] closest to pt.
func ClosestPointSegmentPoint(a, b, pt r3.Vector) r3.Vector {
	ab := b.Sub(a)
	length2 := ab.Norm2()
	if length2 < floatEpsilon {
		return a
	}
	t := pt.Sub(a).Dot(ab) / length2
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a.Add(ab.Mul(t))
}
