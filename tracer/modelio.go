package tracer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fogleman/pt/pt"
	"github.com/hpinc/go3mf"
)

// SubMesh is one triangulated mesh read from a model file.
type SubMesh struct {
	Name     string
	Vertices []Vertex
	Indices  []int
}

func importModel(path string, opts ModelOptions) ([]SubMesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".3mf":
		scale := opts.UnitScale
		if scale <= 0 {
			scale = 1
		}
		return import3MF(path, scale)
	case ".obj":
		return importPT(path, pt.LoadOBJ)
	case ".stl":
		return importPT(path, pt.LoadSTL)
	}
	return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
}

func importPT(path string, load func(string, pt.Material) (*pt.Mesh, error)) ([]SubMesh, error) {
	mesh, err := load(path, pt.Material{})
	if err != nil {
		return nil, err
	}
	mesh.Triangles = dropDegenerate(mesh.Triangles)
	if len(mesh.Triangles) == 0 {
		return nil, nil
	}
	for _, t := range mesh.Triangles {
		t.FixNormals()
	}
	return []SubMesh{fromPTMesh(filepath.Base(path), mesh)}, nil
}

func import3MF(path string, scale float64) ([]SubMesh, error) {
	var model go3mf.Model
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("decoding 3mf: %w", err)
	}

	vec := func(p go3mf.Point3D) pt.Vector {
		return pt.Vector{
			X: float64(p.X()) / scale,
			Y: float64(p.Y()) / scale,
			Z: float64(p.Z()) / scale,
		}
	}

	var subMeshes []SubMesh
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}
		verts := obj.Mesh.Vertices.Vertex
		triangles := make([]*pt.Triangle, 0, len(obj.Mesh.Triangles.Triangle))
		for _, t := range obj.Mesh.Triangles.Triangle {
			if int(t.V1) >= len(verts) || int(t.V2) >= len(verts) || int(t.V3) >= len(verts) {
				continue
			}
			ptTri := &pt.Triangle{
				V1: vec(verts[t.V1]),
				V2: vec(verts[t.V2]),
				V3: vec(verts[t.V3]),
			}
			if degenerate(ptTri) {
				continue
			}
			ptTri.FixNormals()
			triangles = append(triangles, ptTri)
		}
		if len(triangles) == 0 {
			continue
		}
		mesh := pt.NewMesh(triangles)
		mesh.SmoothNormals()
		subMeshes = append(subMeshes, fromPTMesh(obj.Name, mesh))
	}
	return subMeshes, nil
}

// degenerate reports a triangle with no area. Its face normal is NaN, and
// smoothing would spread that into every vertex it shares.
func degenerate(t *pt.Triangle) bool {
	n := t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length()
	return !(n > detEpsilon)
}

func dropDegenerate(triangles []*pt.Triangle) []*pt.Triangle {
	kept := triangles[:0]
	for _, t := range triangles {
		if !degenerate(t) {
			kept = append(kept, t)
		}
	}
	return kept
}

// fromPTMesh flattens pt triangles into an indexed vertex list.
func fromPTMesh(name string, mesh *pt.Mesh) SubMesh {
	sm := SubMesh{
		Name:     name,
		Vertices: make([]Vertex, 0, 3*len(mesh.Triangles)),
		Indices:  make([]int, 0, 3*len(mesh.Triangles)),
	}
	for _, t := range mesh.Triangles {
		base := len(sm.Vertices)
		sm.Vertices = append(sm.Vertices,
			Vertex{Position: t.V1, Normal: t.N1},
			Vertex{Position: t.V2, Normal: t.N2},
			Vertex{Position: t.V3, Normal: t.N3},
		)
		sm.Indices = append(sm.Indices, base, base+1, base+2)
	}
	return sm
}
