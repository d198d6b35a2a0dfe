package tracer

import (
	"math"
	"math/rand"

	"github.com/fogleman/pt/pt"
)

// LightSample is the light arriving at a surface point from one emitter sample.
type LightSample struct {
	Color pt.Color
	// Unit direction from the surface point toward the sample
	Direction pt.Vector
	Distance  float64
}

// Light is one of *PointLight, *AreaLight or *CubeMap.
type Light interface {
	light()
}

func (*PointLight) light() {}
func (*AreaLight) light()  {}
func (*CubeMap) light()    {}

// AppendSamples appends the samples l contributes at p to dst.
func AppendSamples(l Light, p pt.Vector, dst []LightSample) []LightSample {
	switch l := l.(type) {
	case *PointLight:
		return l.AppendSamples(p, dst)
	case *AreaLight:
		return l.AppendSamples(p, dst)
	case *CubeMap:
		return l.AppendSamples(p, dst)
	}
	return dst
}

// IntersectLight tests whether r sees l directly. Only environment faces have
// a visible surface; point and area lights are never hit.
func IntersectLight(l Light, r Ray) Hit {
	if cm, ok := l.(*CubeMap); ok {
		return cm.Intersect(r)
	}
	return NoHit
}

// SampleCount is the number of samples l produces at every point.
func SampleCount(l Light) int {
	switch l := l.(type) {
	case *PointLight:
		return 1
	case *AreaLight:
		return len(l.Samples)
	case *CubeMap:
		n := 0
		for _, f := range l.Faces {
			for _, a := range f.Lights {
				n += len(a.Samples)
			}
		}
		return n
	}
	return 0
}

type PointLight struct {
	Position pt.Vector
	Color    pt.Color
}

func NewPointLight(position pt.Vector, color pt.Color) *PointLight {
	return &PointLight{Position: position, Color: color}
}

func (l *PointLight) AppendSamples(p pt.Vector, dst []LightSample) []LightSample {
	d := l.Position.Sub(p)
	dist := d.Length()
	if dist == 0 {
		return dst
	}
	return append(dst, LightSample{
		Color:     l.Color,
		Direction: d.DivScalar(dist),
		Distance:  dist,
	})
}

// AreaLight is a rectangular emitter approximated by point light samples that
// share its total color equally.
type AreaLight struct {
	Position pt.Vector
	Total    pt.Color
	Width    float64
	Height   float64
	Right    pt.Vector
	Down     pt.Vector
	Samples  []PointLight
}

// NewAreaLight spreads total over floor(maxComponent(total)/unitColor) points
// placed by BestCandidate around position in the plane spanned by right and
// down. When that count is zero the light has no samples.
func NewAreaLight(position pt.Vector, total pt.Color, width, height float64, right, down pt.Vector, unitColor float64, rng *rand.Rand) *AreaLight {
	a := &AreaLight{
		Position: position,
		Total:    total,
		Width:    width,
		Height:   height,
		Right:    right,
		Down:     down,
	}
	if unitColor <= 0 {
		return a
	}
	n := int(math.Floor(maxComponent(total) / unitColor))
	if n <= 0 {
		return a
	}
	share := total.DivScalar(float64(n))
	a.Samples = make([]PointLight, 0, n)
	for _, p := range BestCandidate(width, height, n, DefaultCandidates, rng) {
		a.Samples = append(a.Samples, PointLight{
			Position: position.Add(right.MulScalar(p.X)).Add(down.MulScalar(p.Y)),
			Color:    share,
		})
	}
	return a
}

func (a *AreaLight) AppendSamples(p pt.Vector, dst []LightSample) []LightSample {
	for i := range a.Samples {
		dst = a.Samples[i].AppendSamples(p, dst)
	}
	return dst
}
