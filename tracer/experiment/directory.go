package experiment

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

const (
	RendersDir    = "renders"
	LatestSymlink = "latest"
)

// RenderDir is the output directory of one render
type RenderDir struct {
	Path      string    // Absolute path to the render directory
	ID        string    // Unique render identifier
	Timestamp time.Time // When the render was started
}

// Create makes a new render directory under root and points root/latest at
// it. Failing to update the symlink is only a warning.
func Create(root string) (*RenderDir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating renders directory: %w", err)
	}

	now := time.Now().UTC()
	id := GenerateID(rand.New(rand.NewSource(now.UnixNano())), now)

	absPath, err := filepath.Abs(filepath.Join(root, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating render directory: %w", err)
	}

	latestPath := filepath.Join(root, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		fmt.Printf("Warning: failed to create latest symlink: %v\n", err)
	}

	return &RenderDir{
		Path:      absPath,
		ID:        id,
		Timestamp: now,
	}, nil
}

// GetFilePath returns the absolute path for a file in the render directory
func (d *RenderDir) GetFilePath(filename string) string {
	return filepath.Join(d.Path, filename)
}

// CopyFile copies srcPath into the render directory under its base name
func (d *RenderDir) CopyFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	destPath := d.GetFilePath(filepath.Base(srcPath))
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}

	return nil
}
