package tracer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/fogleman/pt/pt"

	"github.com/jdginn/go-raytracer/tracer/hdr"
)

var ErrBadPanorama = errors.New("panorama is not a cube cross")

type Face int

const (
	FaceTop Face = iota
	FaceBottom
	FaceLeft
	FaceRight
	FaceForward
	FaceBackward
)

func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceForward:
		return "forward"
	case FaceBackward:
		return "backward"
	}
	return fmt.Sprintf("Face(%d)", int(f))
}

// faceLayout locates a face's block in the cross. Inverted faces are read
// back to front.
type faceLayout struct {
	face       Face
	row, col   int
	rowInverse bool
	colInverse bool
}

var horizontalCross = []faceLayout{
	{face: FaceTop, row: 0, col: 1},
	{face: FaceBottom, row: 2, col: 1},
	{face: FaceLeft, row: 1, col: 0},
	{face: FaceRight, row: 1, col: 2},
	{face: FaceForward, row: 1, col: 1},
	{face: FaceBackward, row: 1, col: 3},
}

var verticalCross = []faceLayout{
	{face: FaceTop, row: 0, col: 1},
	{face: FaceBottom, row: 2, col: 1},
	{face: FaceLeft, row: 1, col: 0},
	{face: FaceRight, row: 1, col: 2},
	{face: FaceForward, row: 1, col: 1},
	{face: FaceBackward, row: 3, col: 1, rowInverse: true, colInverse: true},
}

// faceBasis returns the center, right and down vectors of a face of a cube
// with edge size centered at the origin.
func faceBasis(f Face, size float64) (center, right, down pt.Vector) {
	h := size / 2
	switch f {
	case FaceTop:
		return V(0, h, 0), V(1, 0, 0), V(0, 0, -1)
	case FaceBottom:
		return V(0, -h, 0), V(1, 0, 0), V(0, 0, 1)
	case FaceLeft:
		return V(-h, 0, 0), V(0, 0, -1), V(0, -1, 0)
	case FaceRight:
		return V(h, 0, 0), V(0, 0, 1), V(0, -1, 0)
	case FaceForward:
		return V(0, 0, -h), V(1, 0, 0), V(0, -1, 0)
	default:
		return V(0, 0, h), V(-1, 0, 0), V(0, -1, 0)
	}
}

// LightingOptions control how radiance is turned into light samples.
type LightingOptions struct {
	// Radiance carried by one light sample
	UnitSampleColor float64
	// Quad-tree blocks whose sum is below this in every channel are not split
	IntensityThreshold float64
}

var DefaultLightingOptions = LightingOptions{
	UnitSampleColor:    2000,
	IntensityThreshold: 2e4,
}

// CubeMapFace is one square of the environment cube.
type CubeMapFace struct {
	Face   Face
	Center pt.Vector
	Right  pt.Vector
	Down   pt.Vector
	Size   float64
	// Texels per edge
	N      int
	Data   [][]pt.Color
	Leaves []NodeInfo
	Lights []*AreaLight
	// Points into the cube
	normal pt.Vector
}

// CubeMap is an environment projected onto the six inner faces of a cube and
// approximated by one area light per quad-tree leaf.
type CubeMap struct {
	Size  float64
	N     int
	Faces []*CubeMapFace
}

// NewCubeMap cuts a horizontal (4N x 3N) or vertical (3N x 4N) cross out of
// pano, N = max(W, H)/4.
func NewCubeMap(pano *hdr.Image, size float64, opts LightingOptions, rng *rand.Rand) (*CubeMap, error) {
	w, h := pano.Width, pano.Height
	n := max(w, h) / 4
	var layout []faceLayout
	switch {
	case n > 0 && w == 4*n && h == 3*n:
		layout = horizontalCross
	case n > 0 && w == 3*n && h == 4*n:
		layout = verticalCross
	default:
		return nil, fmt.Errorf("%w: %dx%d", ErrBadPanorama, w, h)
	}

	cm := &CubeMap{Size: size, N: n}
	for _, l := range layout {
		f := newFace(pano, l, n, size)
		f.Leaves = BuildQuadTree(f.Data, size, opts.IntensityThreshold)
		for _, leaf := range f.Leaves {
			pos := f.Center.Add(f.Right.MulScalar(leaf.Center.X)).Add(f.Down.MulScalar(leaf.Center.Y))
			f.Lights = append(f.Lights, NewAreaLight(pos, leaf.SumColor, leaf.Width, leaf.Height, f.Right, f.Down, opts.UnitSampleColor, rng))
		}
		cm.Faces = append(cm.Faces, f)
	}
	return cm, nil
}

func newFace(pano *hdr.Image, l faceLayout, n int, size float64) *CubeMapFace {
	center, right, down := faceBasis(l.face, size)
	f := &CubeMapFace{
		Face:   l.face,
		Center: center,
		Right:  right,
		Down:   down,
		Size:   size,
		N:      n,
		Data:   make([][]pt.Color, n),
		normal: center.MulScalar(-1).Normalize(),
	}
	for r := 0; r < n; r++ {
		f.Data[r] = make([]pt.Color, n)
		y := l.row*n + r
		if l.rowInverse {
			y = l.row*n + n - 1 - r
		}
		for c := 0; c < n; c++ {
			x := l.col*n + c
			if l.colInverse {
				x = l.col*n + n - 1 - c
			}
			cr, cg, cb := pano.At(x, y)
			f.Data[r][c] = C(float64(cr), float64(cg), float64(cb))
		}
	}
	return f
}

func (cm *CubeMap) AppendSamples(p pt.Vector, dst []LightSample) []LightSample {
	for _, f := range cm.Faces {
		for _, a := range f.Lights {
			dst = a.AppendSamples(p, dst)
		}
	}
	return dst
}

// Intersect returns the nearest face seen by r, colored by the environment.
func (cm *CubeMap) Intersect(r Ray) Hit {
	best := NoHit
	for _, f := range cm.Faces {
		best = closer(best, f.Intersect(r))
	}
	return best
}

// LightCount is the number of area lights over all faces.
func (cm *CubeMap) LightCount() int {
	n := 0
	for _, f := range cm.Faces {
		n += len(f.Lights)
	}
	return n
}

func (f *CubeMapFace) Intersect(r Ray) Hit {
	denom := f.normal.Dot(r.Direction)
	if math.Abs(denom) < Epsilon {
		return NoHit
	}
	t := f.Center.Sub(r.Origin).Dot(f.normal) / denom
	if t <= Epsilon {
		return NoHit
	}
	off := r.At(t).Sub(f.Center)
	x, y := off.Dot(f.Right), off.Dot(f.Down)
	half := f.Size / 2
	if math.Abs(x) > half || math.Abs(y) > half {
		return NoHit
	}
	normal := f.normal
	if denom > 0 {
		normal = normal.MulScalar(-1)
	}
	return surfaceHit(r, t, normal, f.Lookup((x+half)/f.Size, (y+half)/f.Size))
}

// Lookup bilinearly samples the face at normalized coordinates u (along
// Right) and v (along Down) in [0, 1].
func (f *CubeMapFace) Lookup(u, v float64) pt.Color {
	if f.N == 0 {
		return black
	}
	fx := clamp(u*float64(f.N)-0.5, 0, float64(f.N-1))
	fy := clamp(v*float64(f.N)-0.5, 0, float64(f.N-1))
	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, f.N-1), min(y0+1, f.N-1)
	tx, ty := fx-float64(x0), fy-float64(y0)

	top := f.Data[y0][x0].MulScalar(1 - tx).Add(f.Data[y0][x1].MulScalar(tx))
	bottom := f.Data[y1][x0].MulScalar(1 - tx).Add(f.Data[y1][x1].MulScalar(tx))
	return top.MulScalar(1 - ty).Add(bottom.MulScalar(ty))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
