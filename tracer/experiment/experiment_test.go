package experiment

import (
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	now := time.Date(2024, 3, 9, 17, 4, 5, 0, time.UTC)
	id := GenerateID(rand.New(rand.NewSource(1)), now)
	assert.Regexp(t, regexp.MustCompile(`^[a-z]+-[a-z]+-20240309-170405$`), id)

	// same seed, same name
	assert.Equal(t, id, GenerateID(rand.New(rand.NewSource(1)), now))
}

func TestCreate(t *testing.T) {
	root := filepath.Join(t.TempDir(), RendersDir)

	dir, err := Create(root)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir.Path))
	assert.Equal(t, dir.ID, filepath.Base(dir.Path))

	info, err := os.Stat(dir.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	target, err := os.Readlink(filepath.Join(root, LatestSymlink))
	require.NoError(t, err)
	assert.Equal(t, dir.ID, target)

	t.Run("copy file", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "scene.txt")
		require.NoError(t, os.WriteFile(src, []byte("sphere;0,0,0;1;1,1,1\n"), 0o644))

		require.NoError(t, dir.CopyFile(src))
		got, err := os.ReadFile(dir.GetFilePath("scene.txt"))
		require.NoError(t, err)
		assert.Equal(t, "sphere;0,0,0;1;1,1,1\n", string(got))

		assert.Error(t, dir.CopyFile(filepath.Join(t.TempDir(), "missing.txt")))
	})
}
