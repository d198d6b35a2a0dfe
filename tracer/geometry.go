package tracer

import "github.com/fogleman/pt/pt"

// Object is one of *Sphere, *Plane, *Triangle, *Mesh or *Model.
type Object interface {
	object()
}

func (*Sphere) object()   {}
func (*Plane) object()    {}
func (*Triangle) object() {}
func (*Mesh) object()     {}
func (*Model) object()    {}

// Intersect returns the closest hit of r with o, or NoHit.
func Intersect(o Object, r Ray) Hit {
	switch o := o.(type) {
	case *Sphere:
		return o.Intersect(r)
	case *Plane:
		return o.Intersect(r)
	case *Triangle:
		return o.Intersect(r)
	case *Mesh:
		return o.Intersect(r)
	case *Model:
		return o.Intersect(r)
	}
	return NoHit
}

// BoundingBox returns a box containing every point o can be hit at.
func BoundingBox(o Object) pt.Box {
	switch o := o.(type) {
	case *Sphere:
		return o.box
	case *Plane:
		return infiniteBox()
	case *Triangle:
		return o.box
	case *Mesh:
		return o.BoundingBox()
	case *Model:
		return o.BoundingBox()
	}
	return emptyBox()
}
