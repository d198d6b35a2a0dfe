package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Plane is the set of points with A*x + B*y + C*z + D = 0.
type Plane struct {
	A, B, C, D float64
	Color      pt.Color
	normal     pt.Vector
	scale      float64
}

func NewPlane(a, b, c, d float64, color pt.Color) *Plane {
	n := V(a, b, c)
	return &Plane{
		A: a, B: b, C: c, D: d,
		Color:  color,
		normal: n.Normalize(),
		scale:  n.Length(),
	}
}

func (p *Plane) Intersect(r Ray) Hit {
	if p.scale == 0 {
		return NoHit
	}
	// Work with the normalized equation so the epsilon test is scale free.
	denom := p.normal.Dot(r.Direction)
	if math.Abs(denom) < Epsilon {
		return NoHit
	}
	t := -(p.D/p.scale + p.normal.Dot(r.Origin)) / denom
	if t <= Epsilon {
		return NoHit
	}
	return surfaceHit(r, t, p.normal, p.Color)
}
