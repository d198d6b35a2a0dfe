package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// ShadingConfig holds the fixed coefficients of the local shading model.
type ShadingConfig struct {
	// Share of light energy going to diffuse; the rest is specular
	DiffuseStrength float64
	// Attenuation applied to every mirror bounce
	Reflectivity float64
	// Deepest recursion level that is shaded. Primary hits are level 1.
	MaxLevel int
	// Multiplier on direct lighting, raised when there is no environment
	DirectLightScale float64
	// Whether rays can see environment faces directly
	LightsVisible bool
}

var DefaultShadingConfig = ShadingConfig{
	DiffuseStrength:  0.8,
	Reflectivity:     0.5,
	MaxLevel:         3,
	DirectLightScale: 1,
}

func (c ShadingConfig) SpecularStrength() float64 {
	return 1 - c.DiffuseStrength
}

type HitKind int

const (
	Miss HitKind = iota
	HitScene
	HitLight
)

func (k HitKind) String() string {
	switch k {
	case HitScene:
		return "scene"
	case HitLight:
		return "light"
	}
	return "miss"
}

// Scene is everything a ray can interact with. It is read-only while rendering.
type Scene struct {
	Objects []Object
	Lights  []Light
}

// Integrator shades rays against a scene with a recursive Whitted-style model.
// It is safe for concurrent use.
type Integrator struct {
	Scene  *Scene
	Config ShadingConfig
}

func NewIntegrator(scene *Scene, config ShadingConfig) *Integrator {
	return &Integrator{Scene: scene, Config: config}
}

// scratch is per-goroutine working memory reused across rays.
type scratch struct {
	samples []LightSample
}

// RayHitTest finds what r hits closer than lightDistance. With a finite
// lightDistance this is an occlusion query and returns the first blocker
// found. With an infinite one the closest object is returned, and when lights
// are visible a nearer light surface wins.
func (it *Integrator) RayHitTest(r Ray, lightDistance float64) (HitKind, Hit) {
	occlusion := !math.IsInf(lightDistance, 1)
	best := NoHit
	for _, o := range it.Scene.Objects {
		h := Intersect(o, r)
		if !h.Ok() || h.Depth >= lightDistance-Epsilon {
			continue
		}
		if occlusion {
			return HitScene, h
		}
		best = closer(best, h)
	}
	kind := Miss
	if best.Ok() {
		kind = HitScene
	}
	if occlusion || !it.Config.LightsVisible {
		return kind, best
	}
	for _, l := range it.Scene.Lights {
		h := IntersectLight(l, r)
		if h.Ok() && (!best.Ok() || h.Depth < best.Depth) {
			best = h
			kind = HitLight
		}
	}
	return kind, best
}

// ComputeColorAtHit shades h as seen at recursion level. Levels beyond
// MaxLevel are black.
func (it *Integrator) ComputeColorAtHit(h Hit, level int) pt.Color {
	var s scratch
	return it.shade(&s, h, level)
}

func (it *Integrator) shade(s *scratch, h Hit, level int) pt.Color {
	cfg := &it.Config
	if level > cfg.MaxLevel {
		return black
	}

	var reflection, specular pt.Color
	kind, next := it.RayHitTest(Ray{Origin: h.Point, Direction: h.Reflect}, math.Inf(1))
	switch kind {
	case HitScene:
		if level < cfg.MaxLevel {
			att := cfg.Reflectivity * math.Max(0, h.Normal.Dot(h.Reflect))
			if att > 0 {
				reflection = it.shade(s, next, level+1).MulScalar(att)
			}
		}
	case HitLight:
		specular = next.Color.MulScalar(cfg.SpecularStrength())
	}

	var diffuse pt.Color
	for _, l := range it.Scene.Lights {
		s.samples = AppendSamples(l, h.Point, s.samples[:0])
		if len(s.samples) == 0 {
			continue
		}
		var sum pt.Color
		for _, ls := range s.samples {
			cos := h.Normal.Dot(ls.Direction)
			if cos <= 0 {
				continue
			}
			if kind, _ := it.RayHitTest(Ray{Origin: h.Point, Direction: ls.Direction}, ls.Distance); kind != Miss {
				continue
			}
			sum = sum.Add(ls.Color.MulScalar(cfg.DiffuseStrength * cos))
		}
		diffuse = diffuse.Add(sum.DivScalar(float64(len(s.samples))))
	}
	diffuse = diffuse.MulScalar(cfg.DirectLightScale)

	return diffuse.Add(specular).Add(reflection).Mul(h.Color)
}

// Trace returns the radiance arriving along a primary ray.
func (it *Integrator) Trace(r Ray) pt.Color {
	var s scratch
	return it.trace(&s, r)
}

func (it *Integrator) trace(s *scratch, r Ray) pt.Color {
	kind, h := it.RayHitTest(r, math.Inf(1))
	switch kind {
	case HitScene:
		return it.shade(s, h, 1)
	case HitLight:
		return h.Color
	}
	return black
}
