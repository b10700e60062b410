package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is a three-vertex primitive with a cached unit normal.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle creates a Triangle from three vertices.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

// Points returns the three vertices of the triangle.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the triangle's unit normal.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Centroid returns the arithmetic mean of the three vertices.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1. / 3.)
}

// Translate returns a copy of the triangle moved by the given offset.
func (t *Triangle) Translate(offset r3.Vector) *Triangle {
	return NewTriangle(t.p0.Add(offset), t.p1.Add(offset), t.p2.Add(offset))
}

// ClosestInsidePoint returns the projection of the query point onto the
// triangle's plane, and whether that projection falls inside the triangle.
// If it does not, the closest point lies on one of the edges.
func (t *Triangle) ClosestInsidePoint(point r3.Vector) (r3.Vector, bool) {
	eps := 1e-6

	// Parametrize the triangle so a point inside it is
	// Q = p0 + u*e0 + v*e1 with 0 <= u, 0 <= v, u+v <= 1,
	// where e0 = p1-p0 and e1 = p2-p0, then minimize analytically.
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	a := e0.Norm2()
	b := e0.Dot(e1)
	c := e1.Norm2()
	d := point.Sub(t.p0)
	// The determinant is zero only for degenerate (collinear) triangles.
	det := a*c - b*b
	u := (c*e0.Dot(d) - b*e1.Dot(d)) / det
	v := (-b*e0.Dot(d) + a*e1.Dot(d)) / det
	inside := u >= -eps && v >= -eps && u+v <= 1+eps
	return t.p0.Add(e0.Mul(u)).Add(e1.Mul(v)), inside
}

// ClosestPoint returns the point on the triangle closest to the query point.
func (t *Triangle) ClosestPoint(point r3.Vector) r3.Vector {
	if pt, inside := t.ClosestInsidePoint(point); inside {
		return pt
	}

	// Projection fell outside, so the closest point is on an edge.
	closest := ClosestPointSegmentPoint(t.p0, t.p1, point)
	bestDist := point.Sub(closest).Norm2()

	if pt := ClosestPointSegmentPoint(t.p1, t.p2, point); point.Sub(pt).Norm2() < bestDist {
		closest = pt
		bestDist = point.Sub(pt).Norm2()
	}
	if pt := ClosestPointSegmentPoint(t.p2, t.p0, point); point.Sub(pt).Norm2() < bestDist {
		return pt
	}
	return closest
}

// DistanceToPoint returns the distance from the query point to the nearest
// point on the triangle.
func (t *Triangle) DistanceToPoint(point r3.Vector) float64 {
	return point.Sub(t.ClosestPoint(point)).Norm()
}

// IntersectsRay reports the parameter along the ray at which it crosses the
// triangle, using the Moller-Trumbore construction. Returns false for misses,
// rays parallel to the triangle plane, and hits behind the ray origin.
func (t *Triangle) IntersectsRay(ray Ray) (float64, bool) {
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	h := ray.Direction.Cross(e1)
	det := e0.Dot(h)
	if math.Abs(det) < floatEpsilon {
		return 0, false
	}
	invDet := 1. / det
	s := ray.Origin.Sub(t.p0)
	u := s.Dot(h) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e0)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	dist := e1.Dot(q) * invDet
	if dist < 0 {
		return 0, false
	}
	return dist, true
}
