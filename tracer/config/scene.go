package config

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jdginn/go-raytracer/tracer"
	"github.com/jdginn/go-raytracer/tracer/hdr"
)

// Built is everything a render needs, assembled from a RenderConfig
type Built struct {
	Scene       *tracer.Scene
	Stats       tracer.SceneStats
	Environment *tracer.CubeMap // nil without input.environment
	Camera      *tracer.Camera
}

// NewRand returns the generator for all build-time randomness. Seed 0 is
// taken from the clock.
func (c *RenderConfig) NewRand() *rand.Rand {
	seed := c.Render.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// LoadEnvironment decodes input.environment and cuts it into a cube map.
// Without an environment it returns nil.
func (c *RenderConfig) LoadEnvironment(rng *rand.Rand) (*tracer.CubeMap, error) {
	env := c.Input.Environment
	if env.Path == "" {
		return nil, nil
	}
	img, err := hdr.Load(env.Path)
	if err != nil {
		return nil, err
	}
	cm, err := tracer.NewCubeMap(img, env.Size, c.LightingOptions(), rng)
	if err != nil {
		return nil, fmt.Errorf("environment %s: %w", env.Path, err)
	}
	return cm, nil
}

// Build loads the scene file, environment and lights. Errors mean the render
// could not start; bad scene lines and unreadable models only log warnings.
func (c *RenderConfig) Build(logger tracer.Logger) (*Built, error) {
	rng := c.NewRand()

	cam, err := c.NewCamera()
	if err != nil {
		return nil, err
	}

	objects, stats, err := tracer.LoadSceneFile(c.Input.Scene, tracer.SceneOptions{
		Model:  c.ModelOptions(),
		Rand:   rng,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	scene := &tracer.Scene{Objects: objects}
	for _, l := range c.Lighting.NewPointLights() {
		scene.Lights = append(scene.Lights, l)
	}
	for _, l := range c.Lighting.NewAreaLights(rng) {
		scene.Lights = append(scene.Lights, l)
	}

	cm, err := c.LoadEnvironment(rng)
	if err != nil {
		return nil, err
	}
	if cm != nil {
		scene.Lights = append(scene.Lights, cm)
	}

	return &Built{Scene: scene, Stats: stats, Environment: cm, Camera: cam}, nil
}
