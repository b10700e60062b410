package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestAABBFromPrimitives(t *testing.T) {
	t.Run("triangle", func(t *testing.T) {
		tri := NewTriangle(
			r3.Vector{X: 0, Y: 0, Z: 0},
			r3.Vector{X: 1, Y: 0, Z: 0},
			r3.Vector{X: 0, Y: 1, Z: 0},
		)
		box := NewAABBFromTriangle(tri)
		test.That(t, box.Min, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
		test.That(t, box.Max, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 0})
	})

	t.Run("segment", func(t *testing.T) {
		seg := NewSegment(r3.Vector{X: -1, Y: 2, Z: 3}, r3.Vector{X: 4, Y: -5, Z: 6})
		box := NewAABBFromSegment(seg)
		test.That(t, box.Min, test.ShouldResemble, r3.Vector{X: -1, Y: -5, Z: 3})
		test.That(t, box.Max, test.ShouldResemble, r3.Vector{X: 4, Y: 2, Z: 6})
	})

	t.Run("single point has zero extent", func(t *testing.T) {
		box := NewAABBFromPoints(r3.Vector{X: 1, Y: 2, Z: 3})
		test.That(t, box.Min, test.ShouldResemble, box.Max)
		test.That(t, box.Center(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	})
}

func TestAABBMerge(t *testing.T) {
	a := NewAABBFromPoints(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 1, Z: 1})
	b := NewAABBFromPoints(r3.Vector{X: 2, Y: -1, Z: 0}, r3.Vector{X: 3, Y: 0, Z: 2})
	merged := a.Merge(b)
	test.That(t, merged.Min, test.ShouldResemble, r3.Vector{X: 0, Y: -1, Z: 0})
	test.That(t, merged.Max, test.ShouldResemble, r3.Vector{X: 3, Y: 1, Z: 2})
	test.That(t, merged.Contains(a), test.ShouldBeTrue)
	test.That(t, merged.Contains(b), test.ShouldBeTrue)
	test.That(t, a.Contains(merged), test.ShouldBeFalse)
}

func TestAABBOverlaps(t *testing.T) {
	a := NewAABBFromPoints(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 2, Z: 2})

	t.Run("overlapping boxes", func(t *testing.T) {
		b := NewAABBFromPoints(r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 3, Y: 3, Z: 3})
		test.That(t, a.Overlaps(b), test.ShouldBeTrue)
		test.That(t, b.Overlaps(a), test.ShouldBeTrue)
	})

	t.Run("touching boxes overlap", func(t *testing.T) {
		b := NewAABBFromPoints(r3.Vector{X: 2, Y: 0, Z: 0}, r3.Vector{X: 4, Y: 2, Z: 2})
		test.That(t, a.Overlaps(b), test.ShouldBeTrue)
	})

	t.Run("separated boxes", func(t *testing.T) {
		b := NewAABBFromPoints(r3.Vector{X: 5, Y: 5, Z: 5}, r3.Vector{X: 6, Y: 6, Z: 6})
		test.That(t, a.Overlaps(b), test.ShouldBeFalse)
	})
}

func TestAABBDistanceToPoint(t *testing.T) {
	box := NewAABBFromPoints(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 2, Z: 2})

	t.Run("inside point has zero distance", func(t *testing.T) {
		test.That(t, box.DistanceToPoint(r3.Vector{X: 1, Y: 1, Z: 1}), test.ShouldEqual, 0)
	})

	t.Run("axis distance", func(t *testing.T) {
		test.That(t, box.DistanceToPoint(r3.Vector{X: 5, Y: 1, Z: 1}), test.ShouldAlmostEqual, 3, 1e-9)
	})

	t.Run("corner distance", func(t *testing.T) {
		dist := box.DistanceToPoint(r3.Vector{X: 3, Y: 3, Z: 3})
		test.That(t, dist, test.ShouldAlmostEqual, math.Sqrt(3), 1e-9)
	})
}

func TestAABBIntersectsRay(t *testing.T) {
	box := NewAABBFromPoints(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1})

	t.Run("ray through center", func(t *testing.T) {
		ray := Ray{Origin: r3.Vector{X: -5, Y: 0, Z: 0}, Direction: r3.Vector{X: 1, Y: 0, Z: 0}}
		test.That(t, box.IntersectsRay(ray), test.ShouldBeTrue)
	})

	t.Run("ray pointing away misses", func(t *testing.T) {
		ray := Ray{Origin: r3.Vector{X: -5, Y: 0, Z: 0}, Direction: r3.Vector{X: -1, Y: 0, Z: 0}}
		test.That(t, box.IntersectsRay(ray), test.ShouldBeFalse)
	})

	t.Run("parallel ray outside slab misses", func(t *testing.T) {
		ray := Ray{Origin: r3.Vector{X: -5, Y: 3, Z: 0}, Direction: r3.Vector{X: 1, Y: 0, Z: 0}}
		test.That(t, box.IntersectsRay(ray), test.ShouldBeFalse)
	})

	t.Run("ray starting inside hits", func(t *testing.T) {
		ray := Ray{Origin: r3.Vector{X: 0, Y: 0, Z: 0}, Direction: r3.Vector{X: 0, Y: 0, Z: 1}}
		test.That(t, box.IntersectsRay(ray), test.ShouldBeTrue)
	})

	t.Run("diagonal ray hits", func(t *testing.T) {
		ray := Ray{Origin: r3.Vector{X: -3, Y: -3, Z: -3}, Direction: r3.Vector{X: 1, Y: 1, Z: 1}}
		test.That(t, box.IntersectsRay(ray), test.ShouldBeTrue)
	})
}
