package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-raytracer/tracer"
	"github.com/jdginn/go-raytracer/tracer/config"
	"github.com/jdginn/go-raytracer/tracer/experiment"
)

const histogramBins = 64

var CLI struct {
	Render   RenderCmd   `cmd:"" help:"Render a scene described by a config file"`
	Validate ValidateCmd `cmd:"" help:"Check a config file without rendering"`
	Lights   LightsCmd   `cmd:"" help:"Draw how the environment map was split into area lights"`
}

type RenderCmd struct {
	Config     string `arg:"" name:"config" help:"render config (YAML)" type:"existingfile"`
	Experiment bool   `name:"experiment" help:"write outputs into a new directory under renders/"`
}

func (c RenderCmd) Run() error {
	cfg, err := config.LoadFromFile(c.Config, config.DefaultLoadOptions)
	if err != nil {
		return err
	}

	if c.Experiment {
		dir, err := experiment.Create(experiment.RendersDir)
		if err != nil {
			return err
		}
		fmt.Printf("Rendering into %s\n", dir.Path)
		cfg.Output.Image = dir.GetFilePath(filepath.Base(cfg.Output.Image))
		if cfg.Output.Histogram != "" {
			cfg.Output.Histogram = dir.GetFilePath(filepath.Base(cfg.Output.Histogram))
		}
		if cfg.Output.LightMap != "" {
			cfg.Output.LightMap = dir.GetFilePath(filepath.Base(cfg.Output.LightMap))
		}
		if err := dir.CopyFile(cfg.Input.Scene); err != nil {
			return err
		}
		if err := config.SaveToFile(cfg, dir.GetFilePath("config.yaml")); err != nil {
			return err
		}
	}

	logger := tracer.NewDefaultLogger()
	built, err := cfg.Build(logger)
	if err != nil {
		return fmt.Errorf("render could not start: %w", err)
	}
	fmt.Printf("Scene: %s\n", built.Stats)
	if built.Environment != nil {
		fmt.Printf("Environment: %d area lights, %d samples\n", built.Environment.LightCount(), tracer.SampleCount(built.Environment))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := &tracer.Renderer{
		Camera:     built.Camera,
		Integrator: tracer.NewIntegrator(built.Scene, cfg.ShadingConfig()),
		Params:     cfg.RenderParams(),
		ToneMap:    cfg.ToneMapConfig(),
		Logger:     logger,
	}
	result, err := r.Render(ctx)
	if err != nil {
		return err
	}

	if err := tracer.SaveImage(cfg.Output.Image, result.Image); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", cfg.Output.Image)
	if cfg.Output.Histogram != "" {
		if err := tracer.SaveRadianceHistogram(cfg.Output.Histogram, result.Radiance, histogramBins, 600, 400); err != nil {
			return err
		}
	}
	if cfg.Output.LightMap != "" && built.Environment != nil {
		if err := tracer.SaveImage(cfg.Output.LightMap, tracer.DrawLightPartition(built.Environment, 256)); err != nil {
			return err
		}
	}
	return nil
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"render config (YAML)" type:"existingfile"`
}

func (c ValidateCmd) Run() error {
	cfg, err := config.LoadFromFile(c.Config, config.LoadOptions{ResolvePaths: true, MergeFiles: true, ApplyDefaults: true})
	if err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("%s", config.FormatValidationErrors(errs))
	}
	// paths are already resolved against the config directory
	resolver := config.NewPathResolver(".")
	if !resolver.FileExists(cfg.Input.Scene) {
		return fmt.Errorf("scene file %s is not readable", cfg.Input.Scene)
	}
	if env := cfg.Input.Environment.Path; env != "" && !resolver.FileExists(env) {
		return fmt.Errorf("environment %s is not readable", env)
	}
	fmt.Println("OK")
	return nil
}

type LightsCmd struct {
	Config string `arg:"" name:"config" help:"render config (YAML)" type:"existingfile"`
	Output string `arg:"" name:"output" help:"PNG to write"`
	Size   int    `name:"size" default:"256" help:"pixels per cube face edge"`
}

func (c LightsCmd) Run() error {
	cfg, err := config.LoadFromFile(c.Config, config.DefaultLoadOptions)
	if err != nil {
		return err
	}
	cm, err := cfg.LoadEnvironment(cfg.NewRand())
	if err != nil {
		return err
	}
	if cm == nil {
		return fmt.Errorf("%s has no input.environment", c.Config)
	}
	fmt.Printf("%d area lights, %d samples\n", cm.LightCount(), tracer.SampleCount(cm))
	return tracer.SaveImage(c.Output, tracer.DrawLightPartition(cm, c.Size))
}

func main() {
	ctx := kong.Parse(&CLI)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
