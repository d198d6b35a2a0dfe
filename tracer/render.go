package tracer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/fogleman/pt/pt"
	"golang.org/x/sync/errgroup"
)

// RenderParams describe the output image. They do not change the simulation
// except through MultiSampling.
type RenderParams struct {
	Width  int
	Height int
	// Rays per pixel edge, equal to Camera.Level; a pixel averages MultiSampling^2 rays
	MultiSampling int
	// Each rendered pixel becomes a ScaleRatio x ScaleRatio block in the image
	ScaleRatio int
	// Rows rendered concurrently. Zero means one per CPU.
	Workers int
}

type Result struct {
	// Linear radiance, row-major, Width*Height entries
	Radiance []pt.Color
	Image    *image.RGBA
	Width    int
	Height   int
	Elapsed  time.Duration
}

type Renderer struct {
	Camera     *Camera
	Integrator *Integrator
	Params     RenderParams
	ToneMap    ToneMapConfig
	Logger     Logger
}

// Render traces every pixel and tone maps the result. Each row is an
// independent task writing only its own slice of the radiance buffer.
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	p := r.Params
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", p.Width, p.Height)
	}
	if r.Camera.Width != p.Width || r.Camera.Height != p.Height {
		return nil, fmt.Errorf("camera is %dx%d but render is %dx%d", r.Camera.Width, r.Camera.Height, p.Width, p.Height)
	}
	if r.Camera.Level != p.MultiSampling {
		return nil, fmt.Errorf("camera samples %d rays per pixel edge but render asks for %d", r.Camera.Level, p.MultiSampling)
	}
	logger := r.Logger
	if logger == nil {
		logger = DiscardLogger{}
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	radiance := make([]pt.Color, p.Width*p.Height)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for row := 0; row < p.Height; row++ {
		row := row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.renderRow(row, radiance[row*p.Width:(row+1)*p.Width])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render aborted: %w", err)
	}
	elapsed := time.Since(start)
	logger.Printf("Rendered %dx%d at %d rays/pixel in %s\n", p.Width, p.Height, r.Camera.Level*r.Camera.Level, elapsed.Round(time.Millisecond))

	return &Result{
		Radiance: radiance,
		Image:    ToneMap(radiance, p.Width, p.Height, p.ScaleRatio, r.ToneMap),
		Width:    p.Width,
		Height:   p.Height,
		Elapsed:  elapsed,
	}, nil
}

func (r *Renderer) renderRow(row int, out []pt.Color) {
	var s scratch
	var rays []Ray
	for col := range out {
		rays = r.Camera.GenerateRays(row, col, rays[:0])
		var sum pt.Color
		for _, ray := range rays {
			sum = sum.Add(r.Integrator.trace(&s, ray))
		}
		out[col] = sum.DivScalar(float64(len(rays)))
	}
}
