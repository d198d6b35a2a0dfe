package config

import (
	"os"
	"path/filepath"
)

// PathResolver handles resolution of relative paths in the config
type PathResolver struct {
	baseDir string
}

func NewPathResolver(baseDir string) *PathResolver {
	return &PathResolver{baseDir: baseDir}
}

// ResolvePath resolves a relative path against the base directory. Empty
// paths stay empty.
func (pr *PathResolver) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(pr.baseDir, path)
}

// FileExists checks if a file exists and is readable
func (pr *PathResolver) FileExists(path string) bool {
	f, err := os.Open(pr.ResolvePath(path))
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// ResolvePaths resolves all relative paths in the config against resolver
func (c *RenderConfig) ResolvePaths(resolver *PathResolver) {
	c.Input.Scene = resolver.ResolvePath(c.Input.Scene)
	c.Input.Environment.Path = resolver.ResolvePath(c.Input.Environment.Path)
	c.Lighting.FromFile = resolver.ResolvePath(c.Lighting.FromFile)
	c.Output.Image = resolver.ResolvePath(c.Output.Image)
	c.Output.Histogram = resolver.ResolvePath(c.Output.Histogram)
	c.Output.LightMap = resolver.ResolvePath(c.Output.LightMap)
}
