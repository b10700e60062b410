package bvtree

import (
	"sort"

	"github.com/golang/geo/r3"

	"github.com/geomworks/modtree/spatialmath"
)

// gridTriangles lays out n unit right triangles on the z=0 plane, ten per
// row, so triangle ids map to predictable positions.
func gridTriangles(n int) []*spatialmath.Triangle {
	triangles := make([]*spatialmath.Triangle, n)
	for i := 0; i < n; i++ {
		x := float64(i % 10)
		y := float64(i / 10)
		triangles[i] = spatialmath.NewTriangle(
			r3.Vector{X: x, Y: y, Z: 0},
			r3.Vector{X: x + 1, Y: y, Z: 0},
			r3.Vector{X: x, Y: y + 1, Z: 0},
		)
	}
	return triangles
}

func triangleDistance(triangles []*spatialmath.Triangle) DistanceFunc {
	return func(id int32, pt r3.Vector) float64 {
		return triangles[id].DistanceToPoint(pt)
	}
}

func triangleRayHit(triangles []*spatialmath.Triangle) RayHitFunc {
	return func(id int32, ray spatialmath.Ray) (float64, bool) {
		return triangles[id].IntersectsRay(ray)
	}
}

func sortedCopy(ids []int32) []int32 {
	out := make([]int32, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func keepAll(int32) bool { return true }

func keepExcept(excluded ...int32) func(int32) bool {
	set := make(map[int32]bool, len(excluded))
	for _, id := range excluded {
		set[id] = true
	}
	return func(id int32) bool { return !set[id] }
}
