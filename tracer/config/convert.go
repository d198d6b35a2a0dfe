package config

import (
	"math/rand"

	"github.com/fogleman/pt/pt"
	lin "github.com/sgreben/piecewiselinear"

	"github.com/jdginn/go-raytracer/tracer"
)

func vec(v [3]float64) pt.Vector {
	return tracer.V(v[0], v[1], v[2])
}

func color(c [3]float64) pt.Color {
	return tracer.C(c[0], c[1], c[2])
}

func (c *RenderConfig) ShadingConfig() tracer.ShadingConfig {
	return tracer.ShadingConfig{
		DiffuseStrength:  floatOr(c.Shading.DiffuseStrength, DefaultDiffuseStrength),
		Reflectivity:     floatOr(c.Shading.Reflectivity, DefaultReflectivity),
		MaxLevel:         c.Shading.MaxLevel,
		DirectLightScale: floatOr(c.Shading.DirectLightScale, 1),
		LightsVisible:    c.Render.LightsVisible,
	}
}

func (c *RenderConfig) LightingOptions() tracer.LightingOptions {
	return tracer.LightingOptions{
		UnitSampleColor:    c.Lighting.UnitSampleColor,
		IntensityThreshold: c.Lighting.IntensityThreshold,
	}
}

func (c *RenderConfig) ModelOptions() tracer.ModelOptions {
	return tracer.ModelOptions{
		Cull:      c.Render.CullBackFaces,
		UnitScale: c.Render.ModelUnitScale,
	}
}

func (c *RenderConfig) RenderParams() tracer.RenderParams {
	return tracer.RenderParams{
		Width:         c.Render.Width,
		Height:        c.Render.Height,
		MultiSampling: c.Render.MultiSampling,
		ScaleRatio:    c.Render.ScaleRatio,
		Workers:       c.Render.Workers,
	}
}

func (c *RenderConfig) ToneMapConfig() tracer.ToneMapConfig {
	cfg := tracer.ToneMapConfig{
		Percentile: c.ToneMapping.Percentile,
		Floor:      c.ToneMapping.Floor,
	}
	if curve := c.ToneMapping.Curve; curve != nil {
		cfg.Curve = &lin.Function{X: curve.X, Y: curve.Y}
	}
	return cfg
}

func (c *RenderConfig) NewCamera() (*tracer.Camera, error) {
	return tracer.NewCamera(
		vec(c.Camera.Position),
		vec(c.Camera.LookAt),
		vec(c.Camera.Up),
		c.Render.Width,
		c.Render.Height,
		c.Camera.FOVDeg,
		c.Render.MultiSampling,
	)
}

// NewPointLights returns the configured point lights sorted by name.
func (l *Lighting) NewPointLights() []*tracer.PointLight {
	lights := make([]*tracer.PointLight, 0, len(l.PointLights))
	for _, name := range sortedKeys(l.PointLights) {
		p := l.PointLights[name]
		lights = append(lights, tracer.NewPointLight(vec(p.Position), color(p.Color)))
	}
	return lights
}

// NewAreaLights samples the configured area lights in name order, so a fixed
// rng gives the same samples every run.
func (l *Lighting) NewAreaLights(rng *rand.Rand) []*tracer.AreaLight {
	lights := make([]*tracer.AreaLight, 0, len(l.AreaLights))
	for _, name := range sortedKeys(l.AreaLights) {
		a := l.AreaLights[name]
		lights = append(lights, tracer.NewAreaLight(
			vec(a.Position), color(a.Color), a.Width, a.Height,
			vec(a.Right), vec(a.Down), l.UnitSampleColor, rng,
		))
	}
	return lights
}
