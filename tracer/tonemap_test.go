package tracer

import (
	"image/color"
	"math/rand"
	"sort"
	"testing"

	"github.com/fogleman/pt/pt"
	lin "github.com/sgreben/piecewiselinear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestSelectNth(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 3, 10, 101} {
		values := make([]float64, n)
		for i := range values {
			// few distinct values so duplicates are common
			values[i] = float64(rng.Intn(7))
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		for k := 0; k < n; k++ {
			work := append([]float64(nil), values...)
			assert.Equal(t, sorted[k], selectNth(work, k), "n=%d k=%d", n, k)
		}
	}
}

func TestExposureReference(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	radiance := make([]pt.Color, 64)
	reds := make([]float64, len(radiance))
	for i := range radiance {
		radiance[i] = C(rng.Float64()*10, rng.Float64(), rng.Float64()*0.1)
		reds[i] = radiance[i].R
	}
	sort.Float64s(reds)

	// red dominates, so the reference is the red percentile
	for _, p := range []float64{0.25, 0.5, 0.75, 1} {
		want := stat.Quantile(p, stat.Empirical, reds, nil)
		got := ExposureReference(radiance, ToneMapConfig{Percentile: p, Floor: 0.01})
		assert.Equal(t, want, got, "p=%v", p)
	}

	t.Run("floor", func(t *testing.T) {
		dark := make([]pt.Color, 10)
		assert.Equal(t, 0.01, ExposureReference(dark, DefaultToneMapConfig))
		assert.Equal(t, 0.01, ExposureReference(nil, DefaultToneMapConfig))
	})

	t.Run("input untouched", func(t *testing.T) {
		before := append([]pt.Color(nil), radiance...)
		ExposureReference(radiance, DefaultToneMapConfig)
		assert.Equal(t, before, radiance)
	})
}

func TestToneMap(t *testing.T) {
	// 4 pixels; the 85th percentile index is int(4*0.85)-1 = 2
	radiance := []pt.Color{C(0, 0, 0), C(1, 1, 1), C(2, 0, 0), C(4, 4, 4)}

	img := ToneMap(radiance, 2, 2, 1, DefaultToneMapConfig)
	require.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{127, 127, 127, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1, 1), "clamped")

	t.Run("scale ratio replicates pixels", func(t *testing.T) {
		img := ToneMap(radiance, 2, 2, 3, DefaultToneMapConfig)
		require.Equal(t, 6, img.Bounds().Dx())
		require.Equal(t, 6, img.Bounds().Dy())
		for y := 3; y < 6; y++ {
			for x := 0; x < 3; x++ {
				assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(x, y))
			}
		}
	})

	t.Run("response curve", func(t *testing.T) {
		cfg := DefaultToneMapConfig
		cfg.Curve = &lin.Function{X: []float64{0, 1}, Y: []float64{0, 0.5}}
		img := ToneMap(radiance, 2, 2, 1, cfg)
		assert.Equal(t, color.RGBA{127, 0, 0, 255}, img.RGBAAt(0, 1))
	})

	t.Run("black image", func(t *testing.T) {
		img := ToneMap(make([]pt.Color, 4), 2, 2, 1, DefaultToneMapConfig)
		assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(1, 1))
	})
}
