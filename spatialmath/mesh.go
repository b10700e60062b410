package spatialmath

import (
	"bytes"
	"io"
	"os"

	"github.com/chenzhekl/goply"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// Mesh is a triangle soup.
type Mesh struct {
	triangles []*Triangle
}

// NewMesh creates a mesh from a set of triangles.
func NewMesh(triangles []*Triangle) *Mesh {
	return &Mesh{triangles: triangles}
}

// Triangles returns the mesh's triangles.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// AABB returns the tightest axis-aligned box around the whole mesh.
func (m *Mesh) AABB() AABB {
	box := NewAABBFromPoints()
	for _, tri := range m.triangles {
		box = box.Merge(NewAABBFromTriangle(tri))
	}
	return box
}

// NewMeshFromPLYFile reads a triangle mesh from a PLY file on disk.
func NewMeshFromPLYFile(path string) (*Mesh, error) {
	//nolint:gosec
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open mesh file %q", path)
	}
	defer goutils.UncheckedErrorFunc(file.Close)
	return NewMeshFromPLY(file)
}

// NewMeshFromPLY reads a triangle mesh from PLY data. Faces with more than
// three vertices are fan-triangulated; malformed faces are reported together
// as one combined error.
func NewMeshFromPLY(r io.Reader) (*Mesh, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read PLY data")
	}
	ply := goply.New(bytes.NewReader(raw))
	vertices := ply.Elements("vertex")
	faces := ply.Elements("face")

	points := make([]r3.Vector, 0, len(vertices))
	for i, vertex := range vertices {
		x, okX := plyFloat(vertex["x"])
		y, okY := plyFloat(vertex["y"])
		z, okZ := plyFloat(vertex["z"])
		if !okX || !okY || !okZ {
			return nil, errors.Errorf("vertex %d has non-numeric coordinates", i)
		}
		points = append(points, r3.Vector{X: x, Y: y, Z: z})
	}

	var triangles []*Triangle
	var faceErrs error
	for i, face := range faces {
		indices, err := plyFaceIndices(face, len(points))
		if err != nil {
			faceErrs = multierr.Append(faceErrs, errors.Wrapf(err, "face %d", i))
			continue
		}
		for j := 1; j < len(indices)-1; j++ {
			triangles = append(triangles, NewTriangle(
				points[indices[0]],
				points[indices[j]],
				points[indices[j+1]],
			))
		}
	}
	if faceErrs != nil {
		return nil, faceErrs
	}
	return NewMesh(triangles), nil
}

func plyFaceIndices(face map[string]interface{}, numVertices int) ([]int, error) {
	raw, ok := face["vertex_indices"]
	if !ok {
		raw, ok = face["vertex_index"]
	}
	if !ok {
		return nil, errors.New("no vertex index property")
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.Errorf("vertex indices have unexpected type %T", raw)
	}
	if len(list) < 3 {
		return nil, errors.Errorf("face has %d vertices, need at least 3", len(list))
	}
	indices := make([]int, 0, len(list))
	for _, v := range list {
		f, ok := plyFloat(v)
		if !ok {
			return nil, errors.Errorf("vertex index has unexpected type %T", v)
		}
		idx := int(f)
		if idx < 0 || idx >= numVertices {
			return nil, errors.Errorf("vertex index %d out of range [0, %d)", idx, numVertices)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// plyFloat widens any numeric scalar the PLY parser may produce.
func plyFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
