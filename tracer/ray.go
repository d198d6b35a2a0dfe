package tracer

import "github.com/fogleman/pt/pt"

// Ray is a half line with a unit direction.
type Ray struct {
	Origin    pt.Vector
	Direction pt.Vector
}

// NewRay normalizes dir.
func NewRay(origin, dir pt.Vector) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) pt.Vector {
	return r.Origin.Add(r.Direction.MulScalar(t))
}
