package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

type Sphere struct {
	Center pt.Vector
	Radius float64
	Color  pt.Color
	box    pt.Box
}

func NewSphere(center pt.Vector, radius float64, color pt.Color) *Sphere {
	r := V(radius, radius, radius)
	return &Sphere{
		Center: center,
		Radius: radius,
		Color:  color,
		box:    pt.Box{Min: center.Sub(r), Max: center.Add(r)},
	}
}

// Intersect solves |o + t*d - c|^2 = r^2 for the smallest root past Epsilon.
func (s *Sphere) Intersect(r Ray) Hit {
	sc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Direction.Dot(sc)
	c := sc.Dot(sc) - s.Radius*s.Radius

	det := b*b - 4*a*c
	if det <= Epsilon {
		return NoHit
	}
	sq := math.Sqrt(det)
	for _, t := range [2]float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
		if t > Epsilon {
			p := r.At(t)
			return surfaceHit(r, t, p.Sub(s.Center).Normalize(), s.Color)
		}
	}
	return NoHit
}
