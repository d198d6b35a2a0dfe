package tracer

import (
	"math/rand"

	"github.com/fogleman/pt/pt"
)

// Model is geometry imported from a model file, one Mesh per sub-mesh.
type Model struct {
	Path   string
	Meshes []*Mesh
	box    pt.Box
}

// ModelOptions controls how model files are turned into meshes.
type ModelOptions struct {
	// Cull enables back-face culling on every triangle.
	Cull bool
	// UnitScale divides 3MF coordinates, which are stored in millimeters.
	UnitScale float64
}

// LoadModel imports path. A sub-mesh takes color unless color is black, in
// which case it gets a random color from rng (seed 1 when nil). A file that
// cannot be imported yields an empty model that is never hit.
func LoadModel(path string, color pt.Color, rng *rand.Rand, opts ModelOptions, logger Logger) *Model {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = DiscardLogger{}
	}
	subMeshes, err := importModel(path, opts)
	if err != nil {
		logger.Printf("Warning: skipping model %s: %v\n", path, err)
		return NewModel(path, nil)
	}
	meshes := make([]*Mesh, 0, len(subMeshes))
	for _, sm := range subMeshes {
		c := color
		if isBlack(c) {
			c = C(rng.Float64(), rng.Float64(), rng.Float64())
		}
		meshes = append(meshes, NewMesh(sm.Vertices, sm.Indices, c, opts.Cull))
	}
	return NewModel(path, meshes)
}

func NewModel(path string, meshes []*Mesh) *Model {
	box := emptyBox()
	for _, m := range meshes {
		if m.Len() > 0 {
			box = extendBox(box, m.BoundingBox())
		}
	}
	return &Model{Path: path, Meshes: meshes, box: box}
}

func (m *Model) Intersect(r Ray) Hit {
	if len(m.Meshes) == 0 || !hitBox(m.box, r) {
		return NoHit
	}
	best := NoHit
	for _, mesh := range m.Meshes {
		best = closer(best, mesh.Intersect(r))
	}
	return best
}

func (m *Model) BoundingBox() pt.Box {
	return m.box
}

// Len is the total number of triangles.
func (m *Model) Len() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.Len()
	}
	return n
}
