// Package hdr loads environment panoramas into linear float RGB images.
package hdr

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

var (
	// ErrUnsupportedFormat is returned for Radiance files that do not store RGBE pixels.
	ErrUnsupportedFormat = errors.New("hdr: unsupported pixel format")
	ErrMalformed         = errors.New("hdr: malformed file")
)

// Image is a linear RGB image stored row-major, three floats per pixel.
type Image struct {
	Width  int
	Height int
	Pix    []float32
}

func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]float32, 3*width*height)}
}

func (m *Image) At(x, y int) (r, g, b float32) {
	i := 3 * (y*m.Width + x)
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

func (m *Image) Set(x, y int, r, g, b float32) {
	i := 3 * (y*m.Width + x)
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = r, g, b
}

// Load decodes path by extension: .hdr and .pic as Radiance RGBE, anything
// else through the registered image decoders with values scaled to [0, 1].
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open panorama: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hdr", ".pic":
		img, err := DecodeRGBE(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return img, nil
	}

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return FromImage(src), nil
}

// FromImage converts an 8 or 16 bit image to linear floats in [0, 1].
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	img := NewImage(b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, bl, _ := src.At(x+b.Min.X, y+b.Min.Y).RGBA()
			img.Set(x, y, float32(r)/65535, float32(g)/65535, float32(bl)/65535)
		}
	}
	return img
}
