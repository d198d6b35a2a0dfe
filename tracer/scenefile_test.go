package tracer

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hpinc/go3mf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestParseScene(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(triangleOBJ), 0o644))

	src := strings.Join([]string{
		"# a comment",
		"Sphere; 0, 0, -3 ; 1 ; 1, 0.5, 0.25",
		"plane;0,1,0,1;0.5,0.5,0.5",
		"",
		"MODEL;tri.obj;0.2,0.2,0.2",
		"sphere;0,0;1;1,1,1",      // center needs three values
		"sphere;0,0,0;-1;1,1,1",   // radius must be positive
		"plane;0,0,0,1;1,1,1",     // no normal
		"cone;0,0,0;1;1,1,1",      // unknown tag
		"sphere;0,0,0;1",          // no color
		"plane;a,b,c,d;1,1,1",     // not numbers
		";;;",                     // nothing
		"model;missing.stl;1,1,1", // unreadable models are kept but empty
	}, "\n")

	objects, stats, err := ParseScene(strings.NewReader(src), dir, SceneOptions{})
	require.NoError(t, err)
	assert.Equal(t, SceneStats{Spheres: 1, Planes: 1, Models: 2, Skipped: 7}, stats)
	require.Len(t, objects, 4)

	s, ok := objects[0].(*Sphere)
	require.True(t, ok)
	assertVec(t, V(0, 0, -3), s.Center)
	assert.Equal(t, 1.0, s.Radius)
	assert.Equal(t, C(1, 0.5, 0.25), s.Color)

	p, ok := objects[1].(*Plane)
	require.True(t, ok)
	assert.Equal(t, [4]float64{0, 1, 0, 1}, [4]float64{p.A, p.B, p.C, p.D})

	m, ok := objects[2].(*Model)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "tri.obj"), m.Path)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, C(0.2, 0.2, 0.2), m.Meshes[0].Color)

	empty, ok := objects[3].(*Model)
	require.True(t, ok)
	assert.Equal(t, 0, empty.Len())
	assert.False(t, Intersect(empty, NewRay(V(0, 0, 5), V(0, 0, -1))).Ok())
}

func TestParseSceneLongLines(t *testing.T) {
	src := strings.Join([]string{
		"sphere;0,0,0;1;1,1,1" + strings.Repeat(" ", 100<<10),
		"cone;" + strings.Repeat("1,", 100<<10),
		"plane;0,1,0,1;1,1,1",
	}, "\n")

	objects, stats, err := ParseScene(strings.NewReader(src), "", SceneOptions{})
	require.NoError(t, err)
	assert.Equal(t, SceneStats{Spheres: 1, Planes: 1, Skipped: 1}, stats)
	assert.Len(t, objects, 2)
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.txt")
	require.NoError(t, os.WriteFile(path, []byte("sphere;0,0,0;1;1,1,1\n"), 0o644))

	objects, stats, err := LoadSceneFile(path, SceneOptions{})
	require.NoError(t, err)
	assert.Len(t, objects, 1)
	assert.Equal(t, 1, stats.Spheres)

	_, _, err = LoadSceneFile(filepath.Join(dir, "nope.txt"), SceneOptions{})
	assert.Error(t, err)
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(obj, []byte(triangleOBJ), 0o644))

	t.Run("obj", func(t *testing.T) {
		m := LoadModel(obj, C(1, 1, 1), nil, ModelOptions{}, DiscardLogger{})
		require.Equal(t, 1, m.Len())
		h := Intersect(m, NewRay(V(0.2, 0.2, 1), V(0, 0, -1)))
		require.True(t, h.Ok())
		assert.InDelta(t, 1, h.Depth, 1e-9)
		assert.InDelta(t, 1, h.Normal.Length(), 1e-9)
	})

	t.Run("black gets a random color", func(t *testing.T) {
		objects, _, err := ParseScene(strings.NewReader("model;tri.obj;0,0,0"), dir, SceneOptions{})
		require.NoError(t, err)
		require.Len(t, objects, 1)
		m := objects[0].(*Model)
		assert.NotEqual(t, black, m.Meshes[0].Color)
	})

	t.Run("unsupported", func(t *testing.T) {
		path := filepath.Join(dir, "model.fbx")
		require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))
		logger := &recordingLogger{}
		m := LoadModel(path, C(1, 1, 1), nil, ModelOptions{}, logger)
		assert.Equal(t, 0, m.Len())
		assert.Len(t, logger.lines, 1)
	})

	t.Run("black without rng", func(t *testing.T) {
		m := LoadModel(obj, black, nil, ModelOptions{}, nil)
		require.Len(t, m.Meshes, 1)
		assert.NotEqual(t, black, m.Meshes[0].Color)
	})

	t.Run("3mf", func(t *testing.T) {
		path := filepath.Join(dir, "room.3mf")
		write3MF(t, path)

		m := LoadModel(path, C(1, 1, 1), nil, ModelOptions{UnitScale: 1000}, DiscardLogger{})
		require.Len(t, m.Meshes, 2, "one mesh per build item")
		assert.Equal(t, 2, m.Meshes[0].Len(), "sliver dropped")
		assert.Equal(t, 1, m.Meshes[1].Len())
		assertVec(t, V(0, 0, 0), m.BoundingBox().Min)
		assertVec(t, V(2, 1, 2), m.BoundingBox().Max)

		// (0.5, 0, 0.25) lies in the floor triangle that shares a vertex with the sliver
		h := Intersect(m, NewRay(V(0.5, -1, 0.25), V(0, 1, 0)))
		require.True(t, h.Ok())
		assert.InDelta(t, 1, h.Depth, 1e-9)
		assert.InDelta(t, 1, h.Normal.Length(), 1e-9)
		assert.InDelta(t, 1, math.Abs(h.Normal.Y), 1e-9)

		h = Intersect(m, NewRay(V(0.2, 2, 0.2), V(0, -1, 0)))
		require.True(t, h.Ok())
		assert.InDelta(t, 1, h.Depth, 1e-9, "upper triangle at y=1")
	})

	t.Run("broken 3mf", func(t *testing.T) {
		path := filepath.Join(dir, "model.3mf")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
		m := LoadModel(path, C(1, 1, 1), nil, ModelOptions{UnitScale: 1000}, DiscardLogger{})
		assert.Equal(t, 0, m.Len())
	})
}

// write3MF saves a floor of two triangles plus a zero-area sliver sharing its
// corner, and a single triangle one meter up, as separate build items in mm.
func write3MF(t *testing.T, path string) {
	t.Helper()
	floor := &go3mf.Mesh{
		Vertices: go3mf.Vertices{Vertex: []go3mf.Point3D{
			{0, 0, 0}, {2000, 0, 0}, {2000, 0, 2000}, {0, 0, 2000},
			{-1000, 0, 0}, {-2000, 0, 0},
		}},
		Triangles: go3mf.Triangles{Triangle: []go3mf.Triangle{
			{V1: 0, V2: 1, V3: 2},
			{V1: 0, V2: 2, V3: 3},
			{V1: 0, V2: 4, V3: 5},
		}},
	}
	upper := &go3mf.Mesh{
		Vertices: go3mf.Vertices{Vertex: []go3mf.Point3D{
			{0, 1000, 0}, {1000, 1000, 0}, {0, 1000, 1000},
		}},
		Triangles: go3mf.Triangles{Triangle: []go3mf.Triangle{{V1: 0, V2: 1, V3: 2}}},
	}
	model := &go3mf.Model{
		Resources: go3mf.Resources{Objects: []*go3mf.Object{
			{ID: 1, Name: "floor", Mesh: floor},
			{ID: 2, Name: "upper", Mesh: upper},
		}},
		Build: go3mf.Build{Items: []*go3mf.Item{{ObjectID: 1}, {ObjectID: 2}}},
	}

	w, err := go3mf.CreateWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Encode(model))
	require.NoError(t, w.Close())
}
