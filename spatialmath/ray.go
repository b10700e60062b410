package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Ray is a half-line in 3D space. Direction need not be normalized; hit
// parameters are expressed in multiples of Direction's length.
type Ray struct {
	Origin    r3.Vector
	Direction r3.Vector
}

// At returns the point a parameter t along the ray.
func (r Ray) At(t float64) r3.Vector {
	return r.Origin.Add(r.Direction.Mul(t))
}
