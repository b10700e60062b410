package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Segment is a line segment between two endpoints.
type Segment struct {
	a r3.Vector
	b r3.Vector
}

// NewSegment creates a Segment from its two endpoints.
func NewSegment(a, b r3.Vector) *Segment {
	return &Segment{a: a, b: b}
}

// Points returns the segment's endpoints.
func (s *Segment) Points() []r3.Vector {
	return []r3.Vector{s.a, s.b}
}

// Translate returns a copy of the segment moved by the given offset.
func (s *Segment) Translate(offset r3.Vector) *Segment {
	return NewSegment(s.a.Add(offset), s.b.Add(offset))
}

// ClosestPoint returns the point on the segment closest to the query point.
func (s *Segment) ClosestPoint(point r3.Vector) r3.Vector {
	return ClosestPointSegmentPoint(s.a, s.b, point)
}

// DistanceToPoint returns the distance from the query point to the nearest
// point on the segment.
func (s *Segment) DistanceToPoint(point r3.Vector) float64 {
	return point.Sub(s.ClosestPoint(point)).Norm()
}
