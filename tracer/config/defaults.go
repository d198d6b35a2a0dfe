package config

import "runtime"

const (
	DefaultEnvironmentSize    = 30.1
	DefaultFOVDeg             = 53.13 // an 8 wide image plane at focal length 8
	DefaultDiffuseStrength    = 0.8
	DefaultReflectivity       = 0.5
	DefaultMaxLevel           = 3
	DefaultUnitSampleColor    = 2000
	DefaultIntensityThreshold = 2e4
	DefaultPercentile         = 0.85
	DefaultFloor              = 0.01
	DefaultModelUnitScale     = 1000 // 3MF millimeters to meters
	DefaultImage              = "render.png"

	// Direct lighting is boosted when no environment contributes light
	noEnvironmentLightScale = 15
)

// Float returns a pointer to v, for the optional shading fields.
func Float(v float64) *float64 {
	return &v
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// ApplyDefaults fills every unset field
func (c *RenderConfig) ApplyDefaults() {
	if c.Input.Environment.Path != "" && c.Input.Environment.Size == 0 {
		c.Input.Environment.Size = DefaultEnvironmentSize
	}

	if c.Camera.Up == [3]float64{} {
		c.Camera.Up = [3]float64{0, 1, 0}
	}
	if c.Camera.FOVDeg == 0 {
		c.Camera.FOVDeg = DefaultFOVDeg
	}

	r := &c.Render
	if r.MultiSampling == 0 {
		r.MultiSampling = 1
	}
	if r.ScaleRatio == 0 {
		r.ScaleRatio = 1
	}
	if r.Workers == 0 {
		r.Workers = runtime.NumCPU()
	}
	if r.ModelUnitScale == 0 {
		r.ModelUnitScale = DefaultModelUnitScale
	}

	s := &c.Shading
	if s.DiffuseStrength == nil {
		s.DiffuseStrength = Float(DefaultDiffuseStrength)
	}
	if s.Reflectivity == nil {
		s.Reflectivity = Float(DefaultReflectivity)
	}
	if s.MaxLevel == 0 {
		s.MaxLevel = DefaultMaxLevel
	}
	if s.DirectLightScale == nil {
		scale := 1.0
		if c.Input.Environment.Path == "" {
			scale = noEnvironmentLightScale
		}
		s.DirectLightScale = &scale
	}

	l := &c.Lighting
	if l.UnitSampleColor == 0 {
		l.UnitSampleColor = DefaultUnitSampleColor
	}
	if l.IntensityThreshold == 0 {
		l.IntensityThreshold = DefaultIntensityThreshold
	}

	if c.Output.Image == "" {
		c.Output.Image = DefaultImage
	}

	t := &c.ToneMapping
	if t.Percentile == 0 {
		t.Percentile = DefaultPercentile
	}
	if t.Floor == 0 {
		t.Floor = DefaultFloor
	}
}
