package tracer

import "github.com/fogleman/pt/pt"

// SummedAreaTable answers rectangular sums over a color grid in constant time.
type SummedAreaTable struct {
	rows, cols int
	// sums[r*(cols+1)+c] is the sum of grid[0:r][0:c]
	sums []pt.Color
}

// NewSummedAreaTable expects a rectangular grid.
func NewSummedAreaTable(grid [][]pt.Color) *SummedAreaTable {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}
	s := &SummedAreaTable{rows: rows, cols: cols, sums: make([]pt.Color, (rows+1)*(cols+1))}
	stride := cols + 1
	for r := 0; r < rows; r++ {
		var line pt.Color
		for c := 0; c < cols; c++ {
			line = line.Add(grid[r][c])
			s.sums[(r+1)*stride+c+1] = s.sums[r*stride+c+1].Add(line)
		}
	}
	return s
}

// Sum of the cells in rows [r0, r1) and columns [c0, c1).
func (s *SummedAreaTable) Sum(r0, c0, r1, c1 int) pt.Color {
	stride := s.cols + 1
	return s.sums[r1*stride+c1].
		Sub(s.sums[r0*stride+c1]).
		Sub(s.sums[r1*stride+c0]).
		Add(s.sums[r0*stride+c0])
}

func (s *SummedAreaTable) Total() pt.Color {
	return s.Sum(0, 0, s.rows, s.cols)
}

// NodeInfo is a quad-tree leaf: a block of cells whose summed color becomes
// one area light.
type NodeInfo struct {
	Row, Col   int
	Rows, Cols int
	// Center of the block relative to the center of the grid, in the same
	// physical units as the grid size. X grows with columns, Y with rows.
	Center        Point2D
	Width, Height float64
	SumColor      pt.Color
}

// BuildQuadTree splits the grid, whose physical extent is size x size, into
// quadrants until every channel of a block's sum is below threshold or the
// block is a single cell. The leaves partition the grid.
func BuildQuadTree(grid [][]pt.Color, size, threshold float64) []NodeInfo {
	q := quadBuilder{sat: NewSummedAreaTable(grid), threshold: threshold}
	if q.sat.rows == 0 || q.sat.cols == 0 {
		return nil
	}
	q.unitX = size / float64(q.sat.cols)
	q.unitY = size / float64(q.sat.rows)
	q.split(0, 0, q.sat.rows, q.sat.cols)
	return q.nodes
}

type quadBuilder struct {
	sat          *SummedAreaTable
	threshold    float64
	unitX, unitY float64
	nodes        []NodeInfo
}

func (q *quadBuilder) split(r0, c0, r1, c1 int) {
	if r0 >= r1 || c0 >= c1 {
		return
	}
	sum := q.sat.Sum(r0, c0, r1, c1)
	dim := sum.R < q.threshold && sum.G < q.threshold && sum.B < q.threshold
	if dim || (r1-r0 == 1 && c1-c0 == 1) {
		q.nodes = append(q.nodes, NodeInfo{
			Row:  r0,
			Col:  c0,
			Rows: r1 - r0,
			Cols: c1 - c0,
			Center: Point2D{
				X: (float64(c0+c1)/2 - float64(q.sat.cols)/2) * q.unitX,
				Y: (float64(r0+r1)/2 - float64(q.sat.rows)/2) * q.unitY,
			},
			Width:    float64(c1-c0) * q.unitX,
			Height:   float64(r1-r0) * q.unitY,
			SumColor: sum,
		})
		return
	}
	rm := (r0 + r1) / 2
	cm := (c0 + c1) / 2
	q.split(r0, c0, rm, cm)
	q.split(r0, cm, rm, c1)
	q.split(rm, c0, r1, cm)
	q.split(rm, cm, r1, c1)
}
