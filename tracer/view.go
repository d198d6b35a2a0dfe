package tracer

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"

	"github.com/fogleman/gg"
	"github.com/fogleman/pt/pt"
)

// SaveImage writes img as a PNG.
func SaveImage(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// DrawLightPartition lays the cube map out as a horizontal cross with px
// pixels per face edge. Every quad-tree leaf is filled with its mean color
// and outlined, so the light budget can be inspected.
func DrawLightPartition(cm *CubeMap, px int) image.Image {
	c := gg.NewContext(4*px, 3*px)
	c.SetRGB(0, 0, 0)
	c.Clear()
	if len(cm.Faces) == 0 || cm.N == 0 {
		return c.Image()
	}

	var means []pt.Color
	for _, f := range cm.Faces {
		for _, leaf := range f.Leaves {
			means = append(means, leaf.SumColor.DivScalar(float64(leaf.Rows*leaf.Cols)))
		}
	}
	ref := ExposureReference(means, DefaultToneMapConfig)

	cell := float64(px) / float64(cm.N)
	i := 0
	for _, f := range cm.Faces {
		ox, oy := crossOrigin(f.Face)
		ox *= float64(px)
		oy *= float64(px)
		for _, leaf := range f.Leaves {
			m := means[i]
			i++
			x := ox + float64(leaf.Col)*cell
			y := oy + float64(leaf.Row)*cell
			w := float64(leaf.Cols) * cell
			h := float64(leaf.Rows) * cell

			c.SetRGB(math.Min(1, m.R/ref), math.Min(1, m.G/ref), math.Min(1, m.B/ref))
			c.DrawRectangle(x, y, w, h)
			c.Fill()
			c.SetRGB(1, 0, 0.5)
			c.SetLineWidth(1)
			c.DrawRectangle(x, y, w, h)
			c.Stroke()
		}
	}
	return c.Image()
}

// crossOrigin is the face's block position in a horizontal cross, in face units.
func crossOrigin(f Face) (x, y float64) {
	for _, l := range horizontalCross {
		if l.face == f {
			return float64(l.col), float64(l.row)
		}
	}
	return 0, 0
}

// luminance uses Rec. 709 weights.
func luminance(c pt.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// SaveRadianceHistogram plots log10 luminance of every non-black pixel, which
// shows where the exposure percentile falls.
func SaveRadianceHistogram(path string, radiance []pt.Color, bins, width, height int) error {
	var values plotter.Values
	for _, c := range radiance {
		if l := luminance(c); l > 0 {
			values = append(values, math.Log10(l))
		}
	}
	if len(values) == 0 {
		return fmt.Errorf("image is black, nothing to plot")
	}

	p := plot.New()
	p.Title.Text = "Radiance"
	p.X.Label.Text = "log10 luminance"
	p.Y.Label.Text = "Pixels"
	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return err
	}
	p.Add(h)
	if err := p.Save(font.Length(width), font.Length(height), path); err != nil {
		return fmt.Errorf("failed to save histogram: %w", err)
	}
	return nil
}
