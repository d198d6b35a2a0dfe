package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
	ApplyDefaults       bool
}

// DefaultLoadOptions is what a render needs: everything
var DefaultLoadOptions = LoadOptions{
	ValidateImmediately: true,
	ResolvePaths:        true,
	MergeFiles:          true,
	ApplyDefaults:       true,
}

// LoadFromFile loads a RenderConfig from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := &RenderConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if opts.ResolvePaths {
		config.ResolvePaths(NewPathResolver(filepath.Dir(path)))
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ApplyDefaults {
		config.ApplyDefaults()
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("invalid config %s\n%s", path, FormatValidationErrors(errs))
		}
	}

	return config, nil
}

// SaveToFile stamps metadata into config and writes it as YAML
func SaveToFile(config *RenderConfig, path string) error {
	NewMetadataCollector().PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
