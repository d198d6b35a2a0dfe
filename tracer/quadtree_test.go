package tracer

import (
	"math/rand"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGrid(rng *rand.Rand, rows, cols int, peak float64) [][]pt.Color {
	grid := make([][]pt.Color, rows)
	for r := range grid {
		grid[r] = make([]pt.Color, cols)
		for c := range grid[r] {
			grid[r][c] = C(rng.Float64()*peak, rng.Float64()*peak, rng.Float64()*peak)
		}
	}
	return grid
}

func assertColor(t *testing.T, want, got pt.Color, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, delta, msgAndArgs...)
	assert.InDelta(t, want.G, got.G, delta, msgAndArgs...)
	assert.InDelta(t, want.B, got.B, delta, msgAndArgs...)
}

func TestSummedAreaTable(t *testing.T) {
	grid := randomGrid(rand.New(rand.NewSource(1)), 5, 7, 1)
	sat := NewSummedAreaTable(grid)
	for r0 := 0; r0 <= 5; r0++ {
		for r1 := r0; r1 <= 5; r1++ {
			for c0 := 0; c0 <= 7; c0++ {
				for c1 := c0; c1 <= 7; c1++ {
					var want pt.Color
					for r := r0; r < r1; r++ {
						for c := c0; c < c1; c++ {
							want = want.Add(grid[r][c])
						}
					}
					assertColor(t, want, sat.Sum(r0, c0, r1, c1), 1e-9)
				}
			}
		}
	}
}

func TestQuadTreeConservesEnergy(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		threshold  float64
	}{
		{"power of two", 16, 16, 20},
		{"odd size", 13, 13, 20},
		{"rectangular", 8, 3, 5},
		{"everything dim", 16, 16, 1e9},
		{"everything bright", 8, 8, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grid := randomGrid(rand.New(rand.NewSource(2)), tc.rows, tc.cols, 4)
			leaves := BuildQuadTree(grid, 2, tc.threshold)
			require.NotEmpty(t, leaves)

			covered := make([][]int, tc.rows)
			for r := range covered {
				covered[r] = make([]int, tc.cols)
			}
			var total pt.Color
			for _, leaf := range leaves {
				total = total.Add(leaf.SumColor)
				for r := leaf.Row; r < leaf.Row+leaf.Rows; r++ {
					for c := leaf.Col; c < leaf.Col+leaf.Cols; c++ {
						covered[r][c]++
					}
				}
				if leaf.Rows*leaf.Cols > 1 {
					s := leaf.SumColor
					assert.True(t, s.R < tc.threshold && s.G < tc.threshold && s.B < tc.threshold)
				}
			}
			for r := range covered {
				for c := range covered[r] {
					assert.Equal(t, 1, covered[r][c], "cell %d,%d", r, c)
				}
			}
			assertColor(t, NewSummedAreaTable(grid).Total(), total, 1e-6)
		})
	}

	t.Run("dim grid is one leaf", func(t *testing.T) {
		leaves := BuildQuadTree(randomGrid(rand.New(rand.NewSource(3)), 4, 4, 1), 2, 1e9)
		require.Len(t, leaves, 1)
		assert.Equal(t, Point2D{}, leaves[0].Center)
		assert.Equal(t, 2.0, leaves[0].Width)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, BuildQuadTree(nil, 1, 1))
	})
}

func TestQuadTreeGeometry(t *testing.T) {
	// one bright cell in the top-left corner forces splits down to it
	grid := make([][]pt.Color, 4)
	for r := range grid {
		grid[r] = make([]pt.Color, 4)
	}
	grid[0][0] = C(100, 100, 100)

	leaves := BuildQuadTree(grid, 4, 10)
	require.Len(t, leaves, 7)
	first := leaves[0]
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, 0, first.Col)
	assert.Equal(t, 1, first.Rows)
	assert.Equal(t, Point2D{X: -1.5, Y: -1.5}, first.Center)
	assert.Equal(t, 1.0, first.Width)
	assert.Equal(t, C(100, 100, 100), first.SumColor)

	last := leaves[len(leaves)-1]
	assert.Equal(t, 2, last.Rows)
	assert.Equal(t, Point2D{X: 1, Y: 1}, last.Center)
}
