package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// lightFile is the layout of lighting.from_file
type lightFile struct {
	PointLights map[string]PointLight `json:"point_lights"`
	AreaLights  map[string]AreaLight  `json:"area_lights"`
}

// MergeLights adds lights from FromFile. Inline lights take precedence over
// file lights with the same name.
func (l *Lighting) MergeLights() error {
	if l.FromFile == "" {
		return nil
	}

	data, err := os.ReadFile(l.FromFile)
	if err != nil {
		return fmt.Errorf("reading lights file: %w", err)
	}

	var file lightFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing lights file: %w", err)
	}

	if l.PointLights == nil && len(file.PointLights) > 0 {
		l.PointLights = make(map[string]PointLight)
	}
	for name, light := range file.PointLights {
		if _, exists := l.PointLights[name]; !exists {
			l.PointLights[name] = light
		}
	}

	if l.AreaLights == nil && len(file.AreaLights) > 0 {
		l.AreaLights = make(map[string]AreaLight)
	}
	for name, light := range file.AreaLights {
		if _, exists := l.AreaLights[name]; !exists {
			l.AreaLights[name] = light
		}
	}

	return nil
}

// LoadAndMerge loads all external files and merges their contents
func (c *RenderConfig) LoadAndMerge() error {
	if err := c.Lighting.MergeLights(); err != nil {
		return fmt.Errorf("merging lights: %w", err)
	}
	return nil
}
