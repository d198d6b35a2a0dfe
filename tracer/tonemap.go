package tracer

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/pt/pt"
	lin "github.com/sgreben/piecewiselinear"
)

type ToneMapConfig struct {
	// Channel percentile mapped to full white
	Percentile float64
	// Lower bound on the exposure reference
	Floor float64
	// Optional response applied to radiance normalized by the reference.
	// Nil is linear.
	Curve *lin.Function
}

var DefaultToneMapConfig = ToneMapConfig{
	Percentile: 0.85,
	Floor:      0.01,
}

// ExposureReference is the largest of the per-channel values at the
// configured percentile, and at least Floor.
func ExposureReference(radiance []pt.Color, cfg ToneMapConfig) float64 {
	ref := cfg.Floor
	n := len(radiance)
	if n == 0 {
		return ref
	}
	k := int(float64(n)*cfg.Percentile) - 1
	k = max(0, min(k, n-1))

	values := make([]float64, n)
	for ch := 0; ch < 3; ch++ {
		for i, c := range radiance {
			switch ch {
			case 0:
				values[i] = c.R
			case 1:
				values[i] = c.G
			default:
				values[i] = c.B
			}
		}
		ref = math.Max(ref, selectNth(values, k))
	}
	return ref
}

// ToneMap scales radiance so the exposure reference maps to 255 and writes
// each pixel as a ratio x ratio block.
func ToneMap(radiance []pt.Color, width, height, ratio int, cfg ToneMapConfig) *image.RGBA {
	ratio = max(ratio, 1)
	img := image.NewRGBA(image.Rect(0, 0, width*ratio, height*ratio))
	ref := ExposureReference(radiance, cfg)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := radiance[row*width+col]
			px := color.RGBA{
				R: toByte(c.R/ref, cfg.Curve),
				G: toByte(c.G/ref, cfg.Curve),
				B: toByte(c.B/ref, cfg.Curve),
				A: 255,
			}
			for dy := 0; dy < ratio; dy++ {
				for dx := 0; dx < ratio; dx++ {
					img.SetRGBA(col*ratio+dx, row*ratio+dy, px)
				}
			}
		}
	}
	return img
}

func toByte(v float64, curve *lin.Function) uint8 {
	if curve != nil {
		v = curve.At(v)
	}
	v *= 255
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// selectNth partially orders a so that a[k] holds the k-th smallest value and
// returns it.
func selectNth(a []float64, k int) float64 {
	lo, hi := 0, len(a)-1
	for lo < hi {
		// median of three
		mid := lo + (hi-lo)/2
		if a[mid] < a[lo] {
			a[mid], a[lo] = a[lo], a[mid]
		}
		if a[hi] < a[lo] {
			a[hi], a[lo] = a[lo], a[hi]
		}
		if a[hi] < a[mid] {
			a[hi], a[mid] = a[mid], a[hi]
		}
		pivot := a[mid]
		i, j := lo, hi
		for i <= j {
			for a[i] < pivot {
				i++
			}
			for a[j] > pivot {
				j--
			}
			if i <= j {
				a[i], a[j] = a[j], a[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return a[k]
		}
	}
	return a[k]
}
