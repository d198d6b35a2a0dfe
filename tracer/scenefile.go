package tracer

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SceneOptions are used when a scene file references models.
type SceneOptions struct {
	Model ModelOptions
	// Colors for sub-meshes of models declared black
	Rand   *rand.Rand
	Logger Logger
}

// SceneStats counts what a scene file produced.
type SceneStats struct {
	Spheres int
	Planes  int
	Models  int
	// Lines that were not understood
	Skipped int
}

func (s SceneStats) String() string {
	return fmt.Sprintf("%d spheres, %d planes, %d models (%d lines skipped)", s.Spheres, s.Planes, s.Models, s.Skipped)
}

// LoadSceneFile parses the scene at path. The only error is failing to read
// the file; bad lines are skipped.
func LoadSceneFile(path string, opts SceneOptions) ([]Object, SceneStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SceneStats{}, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()
	return ParseScene(f, filepath.Dir(path), opts)
}

// ParseScene reads one object per line:
//
//	sphere;cx,cy,cz;radius;R,G,B
//	plane;A,B,C,D;R,G,B
//	model;path;R,G,B
//
// Spaces are ignored and tags are case-insensitive. Relative model paths are
// resolved against baseDir. Blank lines and lines starting with # are ignored.
func ParseScene(r io.Reader, baseDir string, opts SceneOptions) ([]Object, SceneStats, error) {
	if opts.Logger == nil {
		opts.Logger = DiscardLogger{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}

	var objects []Object
	var stats SceneStats
	br := bufio.NewReader(r)
	lineNo := 0
	// ReadString has no line length limit, unlike bufio.Scanner.
	for done := false; !done; {
		raw, err := br.ReadString('\n')
		if err == io.EOF {
			done = true
		} else if err != nil {
			return objects, stats, fmt.Errorf("failed to read scene: %w", err)
		}
		lineNo++
		line := strings.ReplaceAll(raw, " ", "")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if o, err := parseSceneLine(line, baseDir, opts); err != nil {
			opts.Logger.Printf("Warning: scene line %d: %v\n", lineNo, err)
			stats.Skipped++
		} else {
			switch o.(type) {
			case *Sphere:
				stats.Spheres++
			case *Plane:
				stats.Planes++
			case *Model:
				stats.Models++
			}
			objects = append(objects, o)
		}
	}
	return objects, stats, nil
}

func parseSceneLine(line, baseDir string, opts SceneOptions) (Object, error) {
	var fields []string
	for _, f := range strings.Split(line, ";") {
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty line")
	}
	switch strings.ToLower(fields[0]) {
	case "sphere":
		if len(fields) < 4 {
			return nil, fmt.Errorf("sphere needs center, radius and color")
		}
		c, err := parseFloats(fields[1], 3)
		if err != nil {
			return nil, fmt.Errorf("sphere center: %w", err)
		}
		radius, err := strconv.ParseFloat(fields[2], 64)
		if err != nil || radius <= 0 {
			return nil, fmt.Errorf("sphere radius %q", fields[2])
		}
		col, err := parseFloats(fields[3], 3)
		if err != nil {
			return nil, fmt.Errorf("sphere color: %w", err)
		}
		return NewSphere(V(c[0], c[1], c[2]), radius, C(col[0], col[1], col[2])), nil

	case "plane":
		if len(fields) < 3 {
			return nil, fmt.Errorf("plane needs coefficients and color")
		}
		k, err := parseFloats(fields[1], 4)
		if err != nil {
			return nil, fmt.Errorf("plane coefficients: %w", err)
		}
		if k[0] == 0 && k[1] == 0 && k[2] == 0 {
			return nil, fmt.Errorf("plane normal is zero")
		}
		col, err := parseFloats(fields[2], 3)
		if err != nil {
			return nil, fmt.Errorf("plane color: %w", err)
		}
		return NewPlane(k[0], k[1], k[2], k[3], C(col[0], col[1], col[2])), nil

	case "model":
		if len(fields) < 3 {
			return nil, fmt.Errorf("model needs path and color")
		}
		col, err := parseFloats(fields[2], 3)
		if err != nil {
			return nil, fmt.Errorf("model color: %w", err)
		}
		path := fields[1]
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		return LoadModel(path, C(col[0], col[1], col[2]), opts.Rand, opts.Model, opts.Logger), nil
	}
	return nil, fmt.Errorf("unknown object %q", fields[0])
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
