package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

func validateUnitVector(field string, vec [3]float64) []ValidationError {
	length := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1] + vec[2]*vec[2])
	if math.Abs(length-1.0) > 1e-6 {
		return []ValidationError{{
			Field:   field,
			Message: "must be a unit vector",
		}}
	}
	return nil
}

func validateColor(field string, c [3]float64) []ValidationError {
	for _, v := range c {
		if v < 0 {
			return []ValidationError{{
				Field:   field,
				Message: "color channels must be non-negative",
			}}
		}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by their top-level section
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	var order []string
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		if _, ok := categories[category]; !ok {
			order = append(order, category)
		}
		categories[category] = append(categories[category], err)
	}

	for _, category := range order {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			// Remove category prefix from field for cleaner display
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration. It expects
// defaults to have been applied.
func (c *RenderConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Input.Validate()...)
	errors = append(errors, c.Camera.Validate()...)
	errors = append(errors, c.Render.Validate()...)
	errors = append(errors, c.Shading.Validate()...)
	errors = append(errors, c.Lighting.Validate()...)
	errors = append(errors, c.ToneMapping.Validate()...)
	errors = append(errors, c.Output.Validate()...)
	return errors
}

func (i *Input) Validate() []ValidationError {
	var errors []ValidationError

	if i.Scene == "" {
		errors = append(errors, ValidationError{
			Field:   "input.scene",
			Message: "scene path is required",
		})
	}
	if i.Environment.Path != "" {
		errors = append(errors, validatePositive("input.environment.size", i.Environment.Size)...)
	}

	return errors
}

func (c *Camera) Validate() []ValidationError {
	var errors []ValidationError

	if c.Position == c.LookAt {
		errors = append(errors, ValidationError{
			Field:   "camera.look_at",
			Message: "must differ from position",
		})
	}
	if c.Up == [3]float64{} {
		errors = append(errors, ValidationError{
			Field:   "camera.up",
			Message: "must be non-zero",
		})
	}
	if c.FOVDeg <= 0 || c.FOVDeg >= 180 {
		errors = append(errors, ValidationError{
			Field:   "camera.fov_deg",
			Message: "must be between 0 and 180 degrees exclusive",
		})
	}

	return errors
}

func (r *Render) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePositive("render.width", float64(r.Width))...)
	errors = append(errors, validatePositive("render.height", float64(r.Height))...)
	errors = append(errors, validatePositive("render.multi_sampling", float64(r.MultiSampling))...)
	errors = append(errors, validatePositive("render.scale_ratio", float64(r.ScaleRatio))...)
	errors = append(errors, validateNonNegative("render.workers", float64(r.Workers))...)
	errors = append(errors, validatePositive("render.model_unit_scale", r.ModelUnitScale)...)

	return errors
}

func (s *Shading) Validate() []ValidationError {
	var errors []ValidationError

	if s.DiffuseStrength != nil {
		errors = append(errors, validateInRange("shading.diffuse_strength", *s.DiffuseStrength, 0, 1)...)
	}
	if s.Reflectivity != nil {
		errors = append(errors, validateInRange("shading.reflectivity", *s.Reflectivity, 0, 1)...)
	}
	errors = append(errors, validatePositive("shading.max_level", float64(s.MaxLevel))...)
	if s.DirectLightScale != nil {
		errors = append(errors, validateNonNegative("shading.direct_light_scale", *s.DirectLightScale)...)
	}

	return errors
}

func (l *Lighting) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePositive("lighting.unit_sample_color", l.UnitSampleColor)...)
	errors = append(errors, validatePositive("lighting.intensity_threshold", l.IntensityThreshold)...)

	for _, name := range sortedKeys(l.PointLights) {
		errors = append(errors, validateColor(fmt.Sprintf("lighting.point_lights.%s.color", name), l.PointLights[name].Color)...)
	}
	for _, name := range sortedKeys(l.AreaLights) {
		a := l.AreaLights[name]
		prefix := "lighting.area_lights." + name
		errors = append(errors, validateColor(prefix+".color", a.Color)...)
		errors = append(errors, validatePositive(prefix+".width", a.Width)...)
		errors = append(errors, validatePositive(prefix+".height", a.Height)...)
		errors = append(errors, validateUnitVector(prefix+".right", a.Right)...)
		errors = append(errors, validateUnitVector(prefix+".down", a.Down)...)
	}

	return errors
}

func (t *ToneMapping) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateInRange("tone_mapping.percentile", t.Percentile, 0, 1)...)
	errors = append(errors, validatePositive("tone_mapping.floor", t.Floor)...)

	if t.Curve != nil {
		if len(t.Curve.X) < 2 || len(t.Curve.X) != len(t.Curve.Y) {
			errors = append(errors, ValidationError{
				Field:   "tone_mapping.curve",
				Message: "x and y need the same number of points, at least 2",
			})
		} else if !sort.Float64sAreSorted(t.Curve.X) {
			errors = append(errors, ValidationError{
				Field:   "tone_mapping.curve.x",
				Message: "must be increasing",
			})
		}
	}

	return errors
}

func (o *Output) Validate() []ValidationError {
	if o.Image == "" {
		return []ValidationError{{
			Field:   "output.image",
			Message: "image path is required",
		}}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
