package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// OBB is an oriented bounding box: a center, three orthonormal axes, and a
// half-extent along each axis. It bounds tighter than an AABB for elongated
// geometry that is not axis-aligned, at a higher predicate cost.
type OBB struct {
	center   r3.Vector
	axes     [3]r3.Vector
	halfSize [3]float64
}

// NewOBBFromPoints fits an oriented box around the given points. Axes are the
// eigenvectors of the point covariance matrix; extents come from projecting
// the points onto those axes.
func NewOBBFromPoints(pts ...r3.Vector) OBB {
	if len(pts) == 0 {
		return OBB{axes: [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}}
	}

	mean := r3.Vector{}
	for _, pt := range pts {
		mean = mean.Add(pt)
	}
	mean = mean.Mul(1. / float64(len(pts)))

	cov := mat.NewSymDense(3, nil)
	for _, pt := range pts {
		d := [3]float64{pt.X - mean.X, pt.Y - mean.Y, pt.Z - mean.Z}
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				cov.SetSym(i, j, cov.At(i, j)+d[i]*d[j])
			}
		}
	}

	axes := [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
	var eig mat.EigenSym
	if eig.Factorize(cov, true) {
		var vecs mat.Dense
		eig.VectorsTo(&vecs)
		for i := 0; i < 3; i++ {
			axis := r3.Vector{X: vecs.At(0, i), Y: vecs.At(1, i), Z: vecs.At(2, i)}
			if axis.Norm2() > floatEpsilon {
				axes[i] = axis.Normalize()
			}
		}
	}

	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, pt := range pts {
		for i := 0; i < 3; i++ {
			proj := pt.Dot(axes[i])
			lo[i] = math.Min(lo[i], proj)
			hi[i] = math.Max(hi[i], proj)
		}
	}

	box := OBB{axes: axes}
	for i := 0; i < 3; i++ {
		mid := (lo[i] + hi[i]) / 2
		box.halfSize[i] = (hi[i] - lo[i]) / 2
		box.center = box.center.Add(axes[i].Mul(mid))
	}
	return box
}

// NewOBBFromTriangle fits an oriented box around a triangle.
func NewOBBFromTriangle(t *Triangle) OBB {
	return NewOBBFromPoints(t.Points()...)
}

// Center returns the box center.
func (b OBB) Center() r3.Vector {
	return b.center
}

// HalfSizes returns the box's half-extent along each of its axes.
func (b OBB) HalfSizes() [3]float64 {
	return b.halfSize
}

// corners returns the eight vertices of the box.
func (b OBB) corners() []r3.Vector {
	corners := make([]r3.Vector, 0, 8)
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				corner := b.center.
					Add(b.axes[0].Mul(sx * b.halfSize[0])).
					Add(b.axes[1].Mul(sy * b.halfSize[1])).
					Add(b.axes[2].Mul(sz * b.halfSize[2]))
				corners = append(corners, corner)
			}
		}
	}
	return corners
}

// Merge returns an oriented box containing both input boxes, refit from
// their corner points. The result is containing but not necessarily minimal.
func (b OBB) Merge(other OBB) OBB {
	return NewOBBFromPoints(append(b.corners(), other.corners()...)...)
}

// toLocal expresses a world-space point in the box's own frame.
func (b OBB) toLocal(pt r3.Vector) [3]float64 {
	d := pt.Sub(b.center)
	return [3]float64{d.Dot(b.axes[0]), d.Dot(b.axes[1]), d.Dot(b.axes[2])}
}

// DistanceToPoint returns the distance from the query point to the nearest
// point on the box, or zero if the point lies inside it.
func (b OBB) DistanceToPoint(pt r3.Vector) float64 {
	local := b.toLocal(pt)
	var dist2 float64
	for i := 0; i < 3; i++ {
		if excess := math.Abs(local[i]) - b.halfSize[i]; excess > 0 {
			dist2 += excess * excess
		}
	}
	return math.Sqrt(dist2)
}

// separation returns the gap between the two boxes' projections onto the
// given axis; a positive value proves the axis separates them.
func separation(axis, centerDist r3.Vector, a, b OBB) float64 {
	span := math.Abs(centerDist.Dot(axis))
	for i := 0; i < 3; i++ {
		span -= math.Abs(a.axes[i].Mul(a.halfSize[i]).Dot(axis))
		span -= math.Abs(b.axes[i].Mul(b.halfSize[i]).Dot(axis))
	}
	return span
}

// Overlaps reports whether the two boxes share any point, by testing the
// fifteen candidate separating axes.
func (b OBB) Overlaps(other OBB) bool {
	centerDist := other.center.Sub(b.center)
	for i := 0; i < 3; i++ {
		if separation(b.axes[i], centerDist, b, other) > 0 {
			return false
		}
		if separation(other.axes[i], centerDist, b, other) > 0 {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := b.axes[i].Cross(other.axes[j])
			if axis.Norm2() < floatEpsilon {
				// Near-parallel axes; the face axes already cover this direction.
				continue
			}
			if separation(axis, centerDist, b, other) > 0 {
				return false
			}
		}
	}
	return true
}

// IntersectsRay reports whether the ray crosses the box. The ray is expressed
// in the box frame and then slab-tested against the centered extents.
func (b OBB) IntersectsRay(ray Ray) bool {
	origin := b.toLocal(ray.Origin)
	dir := [3]float64{
		ray.Direction.Dot(b.axes[0]),
		ray.Direction.Dot(b.axes[1]),
		ray.Direction.Dot(b.axes[2]),
	}
	tMin, tMax := 0., math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < floatEpsilon {
			if math.Abs(origin[i]) > b.halfSize[i] {
				return false
			}
			continue
		}
		inv := 1. / dir[i]
		t0 := (-b.halfSize[i] - origin[i]) * inv
		t1 := (b.halfSize[i] - origin[i]) * inv
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
