package tracer

import "github.com/fogleman/pt/pt"

// Epsilon is the minimum depth a hit needs to count. Anything closer is
// treated as self-intersection of a ray leaving a surface.
const Epsilon = 2e-4

// Hit describes the intersection of a ray with a surface.
type Hit struct {
	// Distance along the ray. Depth <= Epsilon means no hit.
	Depth float64
	Point pt.Vector
	// Unit surface normal at Point
	Normal pt.Vector
	// Mirror reflection of the incoming direction about Normal
	Reflect pt.Vector
	// Surface color at Point
	Color pt.Color
}

var NoHit = Hit{Depth: -1}

func (h Hit) Ok() bool {
	return h.Depth > Epsilon
}

// closer returns whichever of a and b is the nearer valid hit.
func closer(a, b Hit) Hit {
	if !b.Ok() {
		return a
	}
	if !a.Ok() || b.Depth < a.Depth {
		return b
	}
	return a
}

func surfaceHit(r Ray, t float64, normal pt.Vector, color pt.Color) Hit {
	return Hit{
		Depth:   t,
		Point:   r.At(t),
		Normal:  normal,
		Reflect: reflect(r.Direction, normal),
		Color:   color,
	}
}
