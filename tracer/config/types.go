package config

// RenderConfig is the complete description of one render
type RenderConfig struct {
	Metadata    Metadata    `yaml:"metadata"`
	Input       Input       `yaml:"input"`
	Camera      Camera      `yaml:"camera"`
	Render      Render      `yaml:"render"`
	Shading     Shading     `yaml:"shading"`
	Lighting    Lighting    `yaml:"lighting"`
	ToneMapping ToneMapping `yaml:"tone_mapping"`
	Output      Output      `yaml:"output"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

type Input struct {
	Scene       string      `yaml:"scene"`
	Environment Environment `yaml:"environment,omitempty"`
}

// Environment is an optional HDR cube cross lighting the scene
type Environment struct {
	Path string  `yaml:"path,omitempty"`
	Size float64 `yaml:"size,omitempty"` // Edge length of the environment cube
}

type Camera struct {
	Position [3]float64 `yaml:"position"`
	LookAt   [3]float64 `yaml:"look_at"`
	Up       [3]float64 `yaml:"up,omitempty"`
	FOVDeg   float64    `yaml:"fov_deg,omitempty"` // Horizontal field of view
}

type Render struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	MultiSampling  int     `yaml:"multi_sampling,omitempty"` // Rays per pixel edge
	ScaleRatio     int     `yaml:"scale_ratio,omitempty"`
	Workers        int     `yaml:"workers,omitempty"` // 0 means one per CPU
	Seed           int64   `yaml:"seed,omitempty"`    // 0 means seeded from the clock
	LightsVisible  bool    `yaml:"lights_visible,omitempty"`
	CullBackFaces  bool    `yaml:"cull_back_faces,omitempty"`
	ModelUnitScale float64 `yaml:"model_unit_scale,omitempty"` // 3MF coordinates are divided by this
}

// Shading fields are pointers where zero is a meaningful setting, so an
// explicit 0 survives ApplyDefaults.
type Shading struct {
	DiffuseStrength  *float64 `yaml:"diffuse_strength,omitempty"`
	Reflectivity     *float64 `yaml:"reflectivity,omitempty"`
	MaxLevel         int      `yaml:"max_level,omitempty"`
	DirectLightScale *float64 `yaml:"direct_light_scale,omitempty"`
}

type Lighting struct {
	UnitSampleColor    float64               `yaml:"unit_sample_color,omitempty"`
	IntensityThreshold float64               `yaml:"intensity_threshold,omitempty"`
	PointLights        map[string]PointLight `yaml:"point_lights,omitempty"`
	AreaLights         map[string]AreaLight  `yaml:"area_lights,omitempty"`
	FromFile           string                `yaml:"from_file,omitempty"`
}

type PointLight struct {
	Position [3]float64 `yaml:"position" json:"position"`
	Color    [3]float64 `yaml:"color" json:"color"`
}

// AreaLight is a rectangle centered at Position spanned by Right and Down
type AreaLight struct {
	Position [3]float64 `yaml:"position" json:"position"`
	Color    [3]float64 `yaml:"color" json:"color"` // Total emitted color
	Width    float64    `yaml:"width" json:"width"`
	Height   float64    `yaml:"height" json:"height"`
	Right    [3]float64 `yaml:"right" json:"right"`
	Down     [3]float64 `yaml:"down" json:"down"`
}

type ToneMapping struct {
	Percentile float64 `yaml:"percentile,omitempty"`
	Floor      float64 `yaml:"floor,omitempty"`
	Curve      *Curve  `yaml:"curve,omitempty"`
}

// Curve maps normalized radiance to normalized display value
type Curve struct {
	X []float64 `yaml:"x"`
	Y []float64 `yaml:"y"`
}

type Output struct {
	Image     string `yaml:"image"`
	Histogram string `yaml:"histogram,omitempty"`
	LightMap  string `yaml:"light_map,omitempty"`
}
