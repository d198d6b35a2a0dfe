package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// V is a shorthand constructor for pt.Vector
func V(X, Y, Z float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: Z}
}

// C is a shorthand constructor for pt.Color
func C(R, G, B float64) pt.Color {
	return pt.Color{R: R, G: G, B: B}
}

var black = pt.Color{}

func isBlack(c pt.Color) bool {
	return c == black
}

// reflect mirrors d about the unit normal n. The result is unit length when d is.
func reflect(d, n pt.Vector) pt.Vector {
	return d.Sub(n.MulScalar(2 * d.Dot(n)))
}

func emptyBox() pt.Box {
	inf := math.Inf(1)
	return pt.Box{Min: V(inf, inf, inf), Max: V(-inf, -inf, -inf)}
}

func infiniteBox() pt.Box {
	inf := math.Inf(1)
	return pt.Box{Min: V(-inf, -inf, -inf), Max: V(inf, inf, inf)}
}

func extendBox(a, b pt.Box) pt.Box {
	return pt.Box{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

func boxContains(b pt.Box, p pt.Vector, tolerance float64) bool {
	return p.X >= b.Min.X-tolerance && p.X <= b.Max.X+tolerance &&
		p.Y >= b.Min.Y-tolerance && p.Y <= b.Max.Y+tolerance &&
		p.Z >= b.Min.Z-tolerance && p.Z <= b.Max.Z+tolerance
}

func axis(v pt.Vector, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func maxComponent(c pt.Color) float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}
