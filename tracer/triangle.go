package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// determinant threshold below which a ray counts as parallel to a triangle
const detEpsilon = 1e-9

// Vertex is a mesh vertex with its shading normal.
type Vertex struct {
	Position pt.Vector
	Normal   pt.Vector
}

type Triangle struct {
	A, B, C Vertex
	Color   pt.Color
	// Cull discards hits on the back side of the flat face.
	Cull bool

	edge1, edge2 pt.Vector
	normal       pt.Vector
	barycenter   pt.Vector
	box          pt.Box
}

func NewTriangle(a, b, c Vertex, color pt.Color, cull bool) *Triangle {
	t := &Triangle{A: a, B: b, C: c, Color: color, Cull: cull}
	t.compile()
	return t
}

func (t *Triangle) compile() {
	t.edge1 = t.B.Position.Sub(t.A.Position)
	t.edge2 = t.C.Position.Sub(t.A.Position)
	t.normal = t.edge1.Cross(t.edge2).Normalize()
	t.barycenter = t.A.Position.Add(t.B.Position).Add(t.C.Position).DivScalar(3)
	t.box = pt.Box{
		Min: t.A.Position.Min(t.B.Position).Min(t.C.Position),
		Max: t.A.Position.Max(t.B.Position).Max(t.C.Position),
	}
}

// Barycenter is the centroid used to order triangles in the k-d tree.
func (t *Triangle) Barycenter() pt.Vector {
	return t.barycenter
}

// Intersect is the Möller–Trumbore algorithm.
func (t *Triangle) Intersect(r Ray) Hit {
	if t.Cull && r.Direction.Dot(t.normal) > 0 {
		return NoHit
	}
	h := r.Direction.Cross(t.edge2)
	a := t.edge1.Dot(h)
	if math.Abs(a) < detEpsilon {
		return NoHit
	}
	f := 1 / a
	s := r.Origin.Sub(t.A.Position)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return NoHit
	}
	q := s.Cross(t.edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return NoHit
	}
	d := f * t.edge2.Dot(q)
	if d <= Epsilon {
		return NoHit
	}
	n := t.A.Normal.MulScalar(1 - u - v).
		Add(t.B.Normal.MulScalar(u)).
		Add(t.C.Normal.MulScalar(v))
	if !(n.Length() >= detEpsilon) {
		n = t.normal
	} else {
		n = n.Normalize()
	}
	return surfaceHit(r, d, n, t.Color)
}
