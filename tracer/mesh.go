package tracer

import "github.com/fogleman/pt/pt"

// Mesh is an indexed triangle mesh intersected through a k-d tree.
type Mesh struct {
	Color pt.Color
	tree  *KDTree
}

// NewMesh builds one triangle per index triple. Trailing indices and triples
// referencing missing vertices are dropped.
func NewMesh(vertices []Vertex, indices []int, color pt.Color, cull bool) *Mesh {
	triangles := make([]Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if !validIndex(a, len(vertices)) || !validIndex(b, len(vertices)) || !validIndex(c, len(vertices)) {
			continue
		}
		t := Triangle{A: vertices[a], B: vertices[b], C: vertices[c], Color: color, Cull: cull}
		t.compile()
		triangles = append(triangles, t)
	}
	return &Mesh{Color: color, tree: NewKDTree(triangles)}
}

func validIndex(i, n int) bool {
	return i >= 0 && i < n
}

func (m *Mesh) Intersect(r Ray) Hit {
	return m.tree.Intersect(r)
}

func (m *Mesh) BoundingBox() pt.Box {
	return m.tree.BoundingBox()
}

// Len is the number of triangles.
func (m *Mesh) Len() int {
	return m.tree.Len()
}

// Tree exposes the acceleration structure for inspection.
func (m *Mesh) Tree() *KDTree {
	return m.tree
}

// intersectLinear tests every triangle. Only used to check the tree.
func (m *Mesh) intersectLinear(r Ray) Hit {
	best := NoHit
	for i := range m.tree.triangles {
		best = closer(best, m.tree.triangles[i].Intersect(r))
	}
	return best
}
