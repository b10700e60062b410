package spatialmath

import (
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

const trianglePLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 2
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
1 1 0
3 0 1 2
3 1 3 2
`

const quadPLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`

const badFacePLY = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
3 0 1 7
`

func TestNewMeshFromPLY(t *testing.T) {
	t.Run("two triangles", func(t *testing.T) {
		mesh, err := NewMeshFromPLY(strings.NewReader(trianglePLY))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, len(mesh.Triangles()), test.ShouldEqual, 2)

		box := mesh.AABB()
		test.That(t, box.Min, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
		test.That(t, box.Max, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 0})
	})

	t.Run("quad faces are fan-triangulated", func(t *testing.T) {
		mesh, err := NewMeshFromPLY(strings.NewReader(quadPLY))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, len(mesh.Triangles()), test.ShouldEqual, 2)
	})

	t.Run("out-of-range vertex index errors", func(t *testing.T) {
		_, err := NewMeshFromPLY(strings.NewReader(badFacePLY))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
	})
}

func TestMeshAABB(t *testing.T) {
	mesh := NewMesh([]*Triangle{
		NewTriangle(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 1, Z: 0}),
		NewTriangle(r3.Vector{X: 5, Y: 5, Z: 5}, r3.Vector{X: 6, Y: 5, Z: 5}, r3.Vector{X: 5, Y: 6, Z: 5}),
	})
	box := mesh.AABB()
	test.That(t, box.Min, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
	test.That(t, box.Max, test.ShouldResemble, r3.Vector{X: 6, Y: 6, Z: 5})
}
