package tracer

import (
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/mat"
)

var ErrDegenerateCamera = errors.New("degenerate camera")

// Camera is a pinhole camera. Pixel (col, row) maps to the world direction
// [right down front] * K^-1 * (col, row, 1).
type Camera struct {
	Position pt.Vector
	Width    int
	Height   int
	// Rays per pixel edge
	Level int

	Front, Right, Down pt.Vector

	// row-major pixel to world direction transform
	m [9]float64
}

func NewCamera(position, lookAt, up pt.Vector, width, height int, fovDeg float64, level int) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrDegenerateCamera, width, height)
	}
	if fovDeg <= 0 || fovDeg >= 180 {
		return nil, fmt.Errorf("%w: field of view %v", ErrDegenerateCamera, fovDeg)
	}
	forward := lookAt.Sub(position)
	if forward.Length() == 0 {
		return nil, fmt.Errorf("%w: look-at equals position", ErrDegenerateCamera)
	}
	front := forward.Normalize()
	side := front.Cross(up)
	if side.Length() < 1e-12 {
		return nil, fmt.Errorf("%w: up is parallel to the view direction", ErrDegenerateCamera)
	}
	right := side.Normalize()
	down := front.Cross(right).Normalize()

	f := float64(width) / 2 / math.Tan(fovDeg*math.Pi/360)
	k := mat.NewDense(3, 3, []float64{
		f, 0, float64(width)/2 - 0.5,
		0, f, float64(height)/2 - 0.5,
		0, 0, 1,
	})
	var kInv mat.Dense
	if err := kInv.Inverse(k); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateCamera, err)
	}
	basis := mat.NewDense(3, 3, []float64{
		right.X, down.X, front.X,
		right.Y, down.Y, front.Y,
		right.Z, down.Z, front.Z,
	})
	var xform mat.Dense
	xform.Mul(basis, &kInv)

	c := &Camera{
		Position: position,
		Width:    width,
		Height:   height,
		Level:    max(level, 1),
		Front:    front,
		Right:    right,
		Down:     down,
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c.m[3*i+j] = xform.At(i, j)
		}
	}
	return c, nil
}

func (c *Camera) direction(x, y float64) pt.Vector {
	m := &c.m
	return V(
		m[0]*x+m[1]*y+m[2],
		m[3]*x+m[4]*y+m[5],
		m[6]*x+m[7]*y+m[8],
	).Normalize()
}

// GenerateRays appends Level*Level rays for pixel (row, col) to dst, on a
// regular grid of sub-pixel offsets i/(Level+1) - 0.5 for i = 1..Level.
func (c *Camera) GenerateRays(row, col int, dst []Ray) []Ray {
	step := 1 / float64(c.Level+1)
	for i := 1; i <= c.Level; i++ {
		y := float64(row) + float64(i)*step - 0.5
		for j := 1; j <= c.Level; j++ {
			x := float64(col) + float64(j)*step - 0.5
			dst = append(dst, Ray{Origin: c.Position, Direction: c.direction(x, y)})
		}
	}
	return dst
}

// GenerateRay is the ray through the center of pixel (row, col).
func (c *Camera) GenerateRay(row, col int) Ray {
	return Ray{Origin: c.Position, Direction: c.direction(float64(col), float64(row))}
}
