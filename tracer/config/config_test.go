package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-raytracer/tracer"
)

const minimalConfig = `
input:
  scene: scene.txt
camera:
  position: [0, 1, 6]
  look_at: [0, 0, 0]
render:
  width: 16
  height: 12
lighting:
  point_lights:
    key:
      position: [0, 5, 0]
      color: [1, 1, 1]
  from_file: lights.json
output:
  image: out/render.png
`

const lightsJSON = `{
  "point_lights": {
    "key": {"position": [9, 9, 9], "color": [0, 0, 0]},
    "fill": {"position": [-3, 2, 1], "color": [0.2, 0.2, 0.2]}
  },
  "area_lights": {
    "panel": {"position": [0, 4, 0], "color": [6000, 6000, 6000], "width": 1, "height": 1,
              "right": [1, 0, 0], "down": [0, 0, 1]}
  }
}`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLoadFromFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"config.yaml": minimalConfig,
		"lights.json": lightsJSON,
		"scene.txt":   "sphere;0,0,0;1;1,0.5,0.25\nplane;0,1,0,1;1,1,1\n",
	})

	cfg, err := LoadFromFile(filepath.Join(dir, "config.yaml"), DefaultLoadOptions)
	require.NoError(t, err)

	t.Run("paths resolved against the config directory", func(t *testing.T) {
		assert.Equal(t, filepath.Join(dir, "scene.txt"), cfg.Input.Scene)
		assert.Equal(t, filepath.Join(dir, "out/render.png"), cfg.Output.Image)
		assert.Equal(t, "", cfg.Output.Histogram)
	})

	t.Run("inline lights win over the file", func(t *testing.T) {
		require.Len(t, cfg.Lighting.PointLights, 2)
		assert.Equal(t, [3]float64{0, 5, 0}, cfg.Lighting.PointLights["key"].Position)
		assert.Equal(t, [3]float64{-3, 2, 1}, cfg.Lighting.PointLights["fill"].Position)
		assert.Len(t, cfg.Lighting.AreaLights, 1)
	})

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, [3]float64{0, 1, 0}, cfg.Camera.Up)
		assert.Equal(t, DefaultFOVDeg, cfg.Camera.FOVDeg)
		assert.Equal(t, 1, cfg.Render.MultiSampling)
		assert.Equal(t, 1, cfg.Render.ScaleRatio)
		assert.Equal(t, DefaultMaxLevel, cfg.Shading.MaxLevel)
		require.NotNil(t, cfg.Shading.DirectLightScale)
		assert.Equal(t, 15.0, *cfg.Shading.DirectLightScale, "no environment")
		assert.Equal(t, DefaultPercentile, cfg.ToneMapping.Percentile)
	})

	t.Run("build", func(t *testing.T) {
		cfg.Render.Seed = 42
		built, err := cfg.Build(tracer.DiscardLogger{})
		require.NoError(t, err)
		assert.Equal(t, tracer.SceneStats{Spheres: 1, Planes: 1}, built.Stats)
		assert.Nil(t, built.Environment)
		// two point lights then one area light
		require.Len(t, built.Scene.Lights, 3)
		assert.Equal(t, 3, tracer.SampleCount(built.Scene.Lights[2]))
		assert.Equal(t, 16, built.Camera.Width)
	})
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing file", map[string]string{}, "reading config file"},
		{"bad yaml", map[string]string{"config.yaml": "render: [1, 2"}, "parsing config file"},
		{"missing lights file", map[string]string{"config.yaml": minimalConfig}, "merging external files"},
		{"invalid", map[string]string{
			"config.yaml": "input:\n  scene: s.txt\nrender:\n  width: -1\n  height: 4\n",
		}, "width: must be positive"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFiles(t, tc.files)
			_, err := LoadFromFile(filepath.Join(dir, "config.yaml"), DefaultLoadOptions)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *RenderConfig {
		c := &RenderConfig{
			Input:  Input{Scene: "scene.txt"},
			Camera: Camera{Position: [3]float64{0, 0, 5}},
			Render: Render{Width: 8, Height: 8},
		}
		c.ApplyDefaults()
		return c
	}
	require.Empty(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *RenderConfig)
		field  string
	}{
		{"no scene", func(c *RenderConfig) { c.Input.Scene = "" }, "input.scene"},
		{"camera at target", func(c *RenderConfig) { c.Camera.LookAt = c.Camera.Position }, "camera.look_at"},
		{"fov", func(c *RenderConfig) { c.Camera.FOVDeg = 200 }, "camera.fov_deg"},
		{"height", func(c *RenderConfig) { c.Render.Height = 0 }, "render.height"},
		{"diffuse", func(c *RenderConfig) { c.Shading.DiffuseStrength = Float(1.5) }, "shading.diffuse_strength"},
		{"percentile", func(c *RenderConfig) { c.ToneMapping.Percentile = 2 }, "tone_mapping.percentile"},
		{"curve", func(c *RenderConfig) { c.ToneMapping.Curve = &Curve{X: []float64{1, 0}, Y: []float64{0, 1}} }, "tone_mapping.curve.x"},
		{"negative light", func(c *RenderConfig) {
			c.Lighting.PointLights = map[string]PointLight{"neg": {Color: [3]float64{-1, 0, 0}}}
		}, "lighting.point_lights.neg.color"},
		{"area light basis", func(c *RenderConfig) {
			c.Lighting.AreaLights = map[string]AreaLight{"a": {Color: [3]float64{1, 1, 1}, Width: 1, Height: 1, Right: [3]float64{2, 0, 0}, Down: [3]float64{0, 0, 1}}}
		}, "lighting.area_lights.a.right"},
		{"environment size", func(c *RenderConfig) {
			c.Input.Environment = Environment{Path: "env.hdr", Size: -1}
		}, "input.environment.size"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			errs := c.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tc.field, errs[0].Field)
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	assert.Equal(t, "", FormatValidationErrors(nil))
	out := FormatValidationErrors([]ValidationError{
		{Field: "render.width", Message: "must be positive"},
		{Field: "camera.fov_deg", Message: "bad"},
		{Field: "render.height", Message: "must be positive"},
	})
	assert.True(t, strings.HasPrefix(out, "Validation Errors:\n"))
	assert.Less(t, strings.Index(out, "RENDER:"), strings.Index(out, "CAMERA:"))
	assert.Contains(t, out, "  - height: must be positive\n")
}

func TestApplyDefaultsWithEnvironment(t *testing.T) {
	c := &RenderConfig{Input: Input{Environment: Environment{Path: "env.hdr"}}}
	c.ApplyDefaults()
	assert.Equal(t, DefaultEnvironmentSize, c.Input.Environment.Size)
	assert.Equal(t, 1.0, *c.Shading.DirectLightScale)

	c = &RenderConfig{Shading: Shading{DiffuseStrength: Float(0.6), DirectLightScale: Float(3)}}
	c.ApplyDefaults()
	assert.Equal(t, 0.6, *c.Shading.DiffuseStrength, "explicit values are kept")
	assert.Equal(t, 3.0, *c.Shading.DirectLightScale)
	assert.Equal(t, DefaultReflectivity, *c.Shading.Reflectivity)
}

func TestExplicitZeroShading(t *testing.T) {
	dir := writeFiles(t, map[string]string{"config.yaml": `
input:
  scene: scene.txt
camera:
  position: [0, 0, 5]
render:
  width: 4
  height: 4
shading:
  diffuse_strength: 0
  reflectivity: 0
  direct_light_scale: 0
`})
	cfg, err := LoadFromFile(filepath.Join(dir, "config.yaml"), DefaultLoadOptions)
	require.NoError(t, err)

	s := cfg.ShadingConfig()
	assert.Equal(t, 0.0, s.DiffuseStrength)
	assert.Equal(t, 0.0, s.Reflectivity)
	assert.Equal(t, 0.0, s.DirectLightScale)
	assert.Equal(t, 1.0, s.SpecularStrength())
}

func TestShadingConfigWithoutDefaults(t *testing.T) {
	c := &RenderConfig{}
	s := c.ShadingConfig()
	assert.Equal(t, DefaultDiffuseStrength, s.DiffuseStrength)
	assert.Equal(t, DefaultReflectivity, s.Reflectivity)
	assert.Equal(t, 1.0, s.DirectLightScale)
}

func TestSaveToFile(t *testing.T) {
	dir := t.TempDir()
	c := &RenderConfig{Input: Input{Scene: "scene.txt"}, Render: Render{Width: 4, Height: 4}}
	path := filepath.Join(dir, "saved.yaml")
	require.NoError(t, SaveToFile(c, path))
	assert.NotEmpty(t, c.Metadata.Timestamp)
	assert.NotEmpty(t, c.Metadata.GitCommit)

	loaded, err := LoadFromFile(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, c.Metadata, loaded.Metadata)
	assert.Equal(t, 4, loaded.Render.Width)
}

func TestToneMapConfig(t *testing.T) {
	c := &RenderConfig{ToneMapping: ToneMapping{Percentile: 0.9, Floor: 0.1, Curve: &Curve{X: []float64{0, 1}, Y: []float64{0, 0.5}}}}
	tm := c.ToneMapConfig()
	assert.Equal(t, 0.9, tm.Percentile)
	require.NotNil(t, tm.Curve)
	assert.InDelta(t, 0.25, tm.Curve.At(0.5), 1e-12)
}
